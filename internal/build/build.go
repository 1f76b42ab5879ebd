// SPDX-License-Identifier: MPL-2.0

package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/apacker1/wix/internal/compiler"
	"github.com/apacker1/wix/internal/diag"
	"github.com/apacker1/wix/internal/extension"
	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/pkg/xmltree"
)

type (
	// Request describes one batch of documents to compile.
	Request struct {
		Sources     []string
		Jobs        int
		Registry    *ir.Registry
		Extensions  *extension.Registry
		Diagnostics diag.Options
		Logger      *log.Logger
		// NewCompilationID stamps each document; defaults to random UUIDs.
		NewCompilationID func() string
	}

	// Unit is the outcome for one source file.
	Unit struct {
		Source        string
		CompilationID string
		// ParseErr is set when the file could not be read or is not
		// well-formed; Result is then empty.
		ParseErr error
		Result   compiler.Result
	}

	// Summary holds the units of a batch in source order.
	Summary struct {
		Units []Unit
	}
)

// Run compiles every source of req. Units come back in the order of
// req.Sources regardless of completion order. Only context cancellation
// produces an error.
func Run(ctx context.Context, req Request) (*Summary, error) {
	if req.Logger == nil {
		req.Logger = log.New(io.Discard)
	}
	if req.Registry == nil {
		req.Registry = ir.DefaultRegistry()
	}
	if req.NewCompilationID == nil {
		req.NewCompilationID = uuid.NewString
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	units := make([]Unit, len(req.Sources))
	for i, src := range req.Sources {
		units[i] = Unit{Source: src, CompilationID: req.NewCompilationID()}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			compileUnit(&units[i], req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compile canceled: %w", err)
	}
	return &Summary{Units: units}, nil
}

func compileUnit(u *Unit, req Request) {
	doc, err := parseFile(u.Source)
	if err != nil {
		u.ParseErr = err
		req.Logger.Debug("parse failed", "source", u.Source, "err", err)
		return
	}
	c := compiler.New(compiler.Options{
		Registry:      req.Registry,
		Extensions:    req.Extensions,
		Diagnostics:   req.Diagnostics,
		CompilationID: u.CompilationID,
		Logger:        req.Logger,
	})
	u.Result = c.Compile(doc)
}

func parseFile(path string) (*xmltree.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return xmltree.Parse(f, path)
}

// Failed reports whether the unit produced no intermediate.
func (u Unit) Failed() bool {
	return u.ParseErr != nil || u.Result.Intermediate == nil
}

// Counts returns the number of error and warning diagnostics across all
// units. Parse failures count as errors.
func (s *Summary) Counts() (errs, warnings int) {
	for _, u := range s.Units {
		if u.ParseErr != nil {
			errs++
			continue
		}
		for _, d := range u.Result.Diagnostics {
			if d.IsError() {
				errs++
			} else {
				warnings++
			}
		}
	}
	return errs, warnings
}

// Failed reports whether any unit failed.
func (s *Summary) Failed() bool {
	for _, u := range s.Units {
		if u.Failed() {
			return true
		}
	}
	return false
}

// Merged concatenates the sections of every successful unit, in source order.
func (s *Summary) Merged() *ir.Intermediate {
	merged := &ir.Intermediate{}
	for _, u := range s.Units {
		if u.Failed() {
			continue
		}
		merged.Sections = append(merged.Sections, u.Result.Intermediate.Sections...)
	}
	return merged
}
