// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfengine is the toolkit's only entry point into the PDF library.
// Every toolkit component talks to an Engine; the production Engine is backed
// by pdfcpu and opens a fresh library context per call, so no handle outlives
// the operation that opened it.
package pdfengine

import "github.com/pdiddy/pdf-toolkit/pkg/types"

// PageSize is the media box of a page in points.
type PageSize struct {
	Width  float64
	Height float64
}

// TextStamp places text with the lower-left corner of its bounding box at
// (X, Y), measured in points from the bottom-left corner of the page. The
// baseline sits one font descent above Y. FontSize is rounded to whole
// points.
type TextStamp struct {
	Text     string
	X, Y     float64
	FontSize float64
}

// ImageStamp places an image with its lower-left corner at (X, Y), measured
// in points from the bottom-left corner of the page. Scale multiplies the
// image's natural size.
type ImageStamp struct {
	Path  string
	X, Y  float64
	Scale float64
}

// Engine is the set of library operations the toolkit uses. Page arguments
// are 0-based.
type Engine interface {
	// PageCount returns the number of pages in the PDF at path.
	PageCount(path string) (int, error)

	// PageSize returns the size of one page.
	PageSize(path string, page int) (PageSize, error)

	// WritePages writes the pages in iv, in order, to a new file at out.
	WritePages(in, out string, iv types.Interval) error

	// Merge concatenates all pages of ins, in order, into out.
	Merge(ins []string, out string) error

	// Optimize rewrites in to out with unused objects removed and streams compressed.
	Optimize(in, out string) error

	// RemovePages writes in to out without the given pages.
	RemovePages(in, out string, pages []int) error

	// Rotate writes in to out with the given pages rotated clockwise by degrees.
	Rotate(in, out string, pages []int, degrees int) error

	// Collect writes the given pages of in, in the given order, to out.
	Collect(in, out string, pages []int) error

	// StampText draws every stamp on one page of in and writes the result to out.
	StampText(in, out string, page int, stamps []TextStamp) error

	// StampImage draws every stamp on one page of in and writes the result to out.
	StampImage(in, out string, page int, stamps []ImageStamp) error

	// ImportImages writes a new PDF at out with one page per image.
	ImportImages(images []string, out string) error
}
