// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// CodePageNeutral is the language-neutral code page.
const CodePageNeutral CodePage = 0

var (
	// ErrInvalidCodePage is the sentinel error wrapped by InvalidCodePageError.
	ErrInvalidCodePage = errors.New("invalid code page")

	// supportedCodePages lists the code pages an installer database may use.
	supportedCodePages = map[CodePage]encoding.Encoding{
		437:   charmap.CodePage437,
		850:   charmap.CodePage850,
		852:   charmap.CodePage852,
		855:   charmap.CodePage855,
		858:   charmap.CodePage858,
		860:   charmap.CodePage860,
		862:   charmap.CodePage862,
		863:   charmap.CodePage863,
		865:   charmap.CodePage865,
		866:   charmap.CodePage866,
		874:   charmap.Windows874,
		932:   japanese.ShiftJIS,
		936:   simplifiedchinese.GBK,
		949:   korean.EUCKR,
		950:   traditionalchinese.Big5,
		1250:  charmap.Windows1250,
		1251:  charmap.Windows1251,
		1252:  charmap.Windows1252,
		1253:  charmap.Windows1253,
		1254:  charmap.Windows1254,
		1255:  charmap.Windows1255,
		1256:  charmap.Windows1256,
		1257:  charmap.Windows1257,
		1258:  charmap.Windows1258,
		10000: charmap.Macintosh,
		20866: charmap.KOI8R,
		21866: charmap.KOI8U,
		28591: charmap.ISO8859_1,
		28592: charmap.ISO8859_2,
		28595: charmap.ISO8859_5,
		28597: charmap.ISO8859_7,
		28605: charmap.ISO8859_15,
		65001: unicode.UTF8,
	}

	// codePagesByName maps canonical IANA names back to code page numbers.
	codePagesByName = func() map[string]CodePage {
		m := make(map[string]CodePage, len(supportedCodePages))
		for cp, enc := range supportedCodePages {
			if name, err := ianaindex.IANA.Name(enc); err == nil {
				m[name] = cp
			}
		}
		return m
	}()
)

type (
	// CodePage is a Windows code page number. Zero is language neutral.
	CodePage int

	// InvalidCodePageError is returned when a value is neither a supported
	// code page number nor the name of a supported encoding.
	InvalidCodePageError struct {
		Value string
	}
)

// ParseCodePage reads a code page given either as a number ("1252") or as
// an encoding name ("windows-1252"). UTF-16 and UTF-32 are rejected because
// an installer database cannot be stored in them.
func ParseCodePage(s string) (CodePage, error) {
	if n, err := strconv.Atoi(s); err == nil {
		cp := CodePage(n)
		if cp == CodePageNeutral {
			return cp, nil
		}
		if _, ok := supportedCodePages[cp]; ok {
			return cp, nil
		}
		return CodePage(IllegalInteger), &InvalidCodePageError{Value: s}
	}

	enc, err := ianaindex.IANA.Encoding(s)
	if err != nil || enc == nil {
		return CodePage(IllegalInteger), &InvalidCodePageError{Value: s}
	}
	name, err := ianaindex.IANA.Name(enc)
	if err != nil {
		return CodePage(IllegalInteger), &InvalidCodePageError{Value: s}
	}
	cp, ok := codePagesByName[name]
	if !ok {
		return CodePage(IllegalInteger), &InvalidCodePageError{Value: s}
	}
	return cp, nil
}

// String returns the decimal string representation of the CodePage.
func (c CodePage) String() string { return strconv.Itoa(int(c)) }

// Error implements the error interface.
func (e *InvalidCodePageError) Error() string {
	return fmt.Sprintf("invalid code page %q: must be a supported code page number or encoding name (UTF-16 and UTF-32 are not supported)", e.Value)
}

// Unwrap returns ErrInvalidCodePage for errors.Is() compatibility.
func (e *InvalidCodePageError) Unwrap() error { return ErrInvalidCodePage }
