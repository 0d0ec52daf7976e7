package idmlhwpx

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/generate"
	"github.com/tsawler/idmlhwpx/hwpx"
)

// Result is a finished conversion.
type Result struct {
	// Document is the generated HWPX document, ready to be written.
	Document *hwpx.Document
	// AST is the normalized layout the document was generated from.
	AST *ast.Document

	Stats    generate.Stats
	Warnings []Warning
	Duration time.Duration
}

// Pages returns the number of pages written.
func (r *Result) Pages() int { return r.Stats.Pages }

// Frames returns the number of positioned text frames, tables and figures.
func (r *Result) Frames() int { return r.Stats.Frames() }

// Summary returns a one-line description of the conversion.
func (r *Result) Summary() string {
	parts := []string{
		plural(r.Stats.Pages, "page"),
		plural(r.Stats.Frames(), "frame"),
		plural(r.Stats.Images, "image"),
		plural(r.Stats.Equations, "equation"),
		plural(r.Stats.Styles, "style"),
	}
	s := strings.Join(parts, ", ")
	if len(r.Warnings) > 0 {
		s += " (" + plural(len(r.Warnings), "warning") + ")"
	}
	return s
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Write writes the document as an HWPX package to w.
func (r *Result) Write(w io.Writer) error {
	if err := hwpx.Write(w, r.Document); err != nil {
		return wrapError(PhaseTargetGeneration, err, "failed to write package")
	}
	return nil
}

// WriteFile writes the document as an HWPX package to filename.
func (r *Result) WriteFile(filename string) error {
	if err := hwpx.WriteFile(filename, r.Document); err != nil {
		return wrapError(PhaseTargetGeneration, err, "failed to write %s", filename)
	}
	return nil
}

// Bytes returns the HWPX package.
func (r *Result) Bytes() ([]byte, error) {
	data, err := hwpx.Bytes(r.Document)
	if err != nil {
		return nil, wrapError(PhaseTargetGeneration, err, "failed to write package")
	}
	return data, nil
}
