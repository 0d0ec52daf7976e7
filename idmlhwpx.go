// Package idmlhwpx converts InDesign IDML packages into Hancom HWPX
// documents, preserving the page layout: every text frame, table and
// image keeps its page, position and size.
//
// Basic usage:
//
//	res, warnings, err := idmlhwpx.Open("book.idml").Convert()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", idmlhwpx.FormatWarnings(warnings))
//	}
//	err = res.WriteFile("book.hwpx")
//
// With options:
//
//	res, _, err := idmlhwpx.Open("book.idml").
//	    Pages(1, 4).
//	    LinksDirectory("Links").
//	    Equations(false).
//	    Convert()
//
// The pipeline stages live in their own packages: idml reads the source,
// normalize builds the intermediate layout in ast, generate writes the
// hwpx document model.
package idmlhwpx

import (
	"github.com/tsawler/idmlhwpx/idml"
)

// Open returns a Converter for the IDML package at filename. The package
// is read lazily by the first terminal operation.
//
// Example:
//
//	res, warnings, err := idmlhwpx.Open("book.idml").Convert()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  DefaultOptions(),
	}
}

// FromBytes returns a Converter for an IDML package held in memory.
func FromBytes(data []byte) *Converter {
	c := &Converter{data: data, options: DefaultOptions()}
	if data == nil {
		c.err = newError(PhaseLoading, "empty package")
	}
	return c
}

// FromReader creates a Converter from an already-opened idml.Reader.
// This is useful when you need more control over the reader lifecycle.
// Note: The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := idml.Open("book.idml")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	res, warnings, err := idmlhwpx.FromReader(r).Convert()
func FromReader(r *idml.Reader) *Converter {
	c := &Converter{options: DefaultOptions()}
	if r == nil {
		c.err = newError(PhaseLoading, "nil reader")
		return c
	}
	c.reader = r
	c.doc = r.Document()
	c.readerOpened = true
	return c
}

// FromDocument creates a Converter for a document built or parsed
// elsewhere. Linked images are resolved from the file system only.
func FromDocument(doc *idml.Document) *Converter {
	c := &Converter{doc: doc, readerOpened: true, options: DefaultOptions()}
	if doc == nil {
		c.err = newError(PhaseLoading, "nil document")
	}
	return c
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := idmlhwpx.Must(idmlhwpx.Open("book.idml").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustConvert is a helper that wraps a call to Convert and panics if the
// error is non-nil. It discards warnings and returns just the result.
//
// Example:
//
//	res := idmlhwpx.MustConvert(idmlhwpx.Open("book.idml").Convert())
func MustConvert[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
