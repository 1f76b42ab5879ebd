// SPDX-License-Identifier: MPL-2.0

package build

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoSources is returned when the inputs name no source file.
var ErrNoSources = errors.New("no source files matched")

// SourceNotFoundError reports an explicit input that does not exist.
type SourceNotFoundError struct {
	Input string
}

// Error implements the error interface.
func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source %q not found", e.Input)
}

// Unwrap returns ErrNoSources for errors.Is() compatibility.
func (e *SourceNotFoundError) Unwrap() error { return ErrNoSources }

// ResolveSources expands inputs into a sorted, duplicate-free list of
// files. A directory contributes the files matching patterns beneath it, a
// glob contributes its matches and a plain path must exist. No inputs
// means the working directory.
func ResolveSources(inputs, patterns []string) ([]string, error) {
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}

	for _, in := range inputs {
		info, err := os.Stat(in)
		switch {
		case err == nil && info.IsDir():
			matches, err := globDir(in, patterns)
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				add(m)
			}
		case err == nil:
			add(in)
		case hasMeta(in):
			matches, err := doublestar.FilepathGlob(in, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("expand %q: %w", in, err)
			}
			for _, m := range matches {
				add(m)
			}
		case errors.Is(err, fs.ErrNotExist):
			return nil, &SourceNotFoundError{Input: in}
		default:
			return nil, fmt.Errorf("stat %q: %w", in, err)
		}
	}

	if len(out) == 0 {
		return nil, ErrNoSources
	}
	slices.Sort(out)
	return out, nil
}

func globDir(dir string, patterns []string) ([]string, error) {
	fsys := os.DirFS(dir)
	var out []string
	for _, pat := range patterns {
		matches, err := doublestar.Glob(fsys, pat, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q in %s: %w", pat, dir, err)
		}
		for _, m := range matches {
			out = append(out, filepath.Join(dir, filepath.FromSlash(m)))
		}
	}
	return out, nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
