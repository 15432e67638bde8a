// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package edit deletes, rotates and extracts pages and inserts text into a
// PDF. Page lists are 1-based user input ("1,3,5", "2-5") and are checked
// against the page count before anything is written.
package edit

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/internal/docfile"
	"github.com/pdiddy/pdf-toolkit/internal/pagerange"
	"github.com/pdiddy/pdf-toolkit/internal/pdfengine"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Default output names.
const (
	DeletedName   = "deleted_pages.pdf"
	RotatedName   = "rotated_pages.pdf"
	ExtractedName = "extracted_pages.pdf"
	TextName      = "text_added.pdf"
)

// Outcome describes a completed edit.
type Outcome struct {
	Output string
	Pages  []int // 0-based pages the edit touched
	Total  int   // page count of the input
}

// TextRequest places text on a page. Page is 1-based; Pos is measured in
// points from the top-left corner of the page and marks the lower-left
// corner of the text's bounding box, one font descent below the baseline.
type TextRequest struct {
	Page     int
	Text     string
	Pos      types.Position
	FontSize float64
}

// Editor edits documents through a PDF engine.
type Editor struct {
	engine      pdfengine.Engine
	defaultSize float64
	log         logrus.FieldLogger
}

// New returns an Editor. fontSize is used when a TextRequest has none.
func New(engine pdfengine.Engine, fontSize float64, log logrus.FieldLogger) *Editor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if fontSize <= 0 {
		fontSize = types.DefaultFontSize
	}
	return &Editor{engine: engine, defaultSize: fontSize, log: log}
}

// prepare validates in, parses pageList against its page count and resolves
// the output path.
func (e *Editor) prepare(in, pageList, outDir, name, fallback string) (Outcome, error) {
	if err := docfile.ValidatePDF(in); err != nil {
		return Outcome{}, err
	}
	total, err := e.engine.PageCount(in)
	if err != nil {
		return Outcome{}, err
	}
	pages, err := pagerange.ParseList(pageList, total)
	if err != nil {
		return Outcome{}, err
	}
	out, err := output(in, outDir, name, fallback)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Output: out, Pages: pages, Total: total}, nil
}

// output creates outDir and resolves the output path, refusing one that
// would replace in.
func output(in, outDir, name, fallback string) (string, error) {
	if err := docfile.EnsureDir(outDir); err != nil {
		return "", err
	}
	out := docfile.OutputPath(outDir, name, ".pdf", fallback)
	if docfile.SamePath(out, in) {
		return "", fmt.Errorf("output %s would overwrite the input: %w", out, types.ErrInvalidInput)
	}
	return out, nil
}

// DeletePages writes in without the listed pages. Deleting every page is
// an error.
func (e *Editor) DeletePages(in, pageList, outDir, name string) (Outcome, error) {
	o, err := e.prepare(in, pageList, outDir, name, DeletedName)
	if err != nil {
		return Outcome{}, err
	}
	if len(o.Pages) == o.Total {
		return Outcome{}, fmt.Errorf("cannot delete all %d pages: %w", o.Total, types.ErrInvalidInput)
	}
	e.log.WithFields(logrus.Fields{"in": in, "pages": pagerange.Describe(o.Pages)}).Debug("deleting pages")
	if err := e.engine.RemovePages(in, o.Output, o.Pages); err != nil {
		return Outcome{}, err
	}
	return o, nil
}

// NormalizeRotation maps degrees onto 90, 180 or 270. Anything that is not a
// non-zero multiple of 90 is an error.
func NormalizeRotation(degrees int) (int, error) {
	if degrees%90 != 0 {
		return 0, fmt.Errorf("rotation must be a multiple of 90, got %d: %w", degrees, types.ErrInvalidInput)
	}
	d := ((degrees % 360) + 360) % 360
	if d == 0 {
		return 0, fmt.Errorf("rotation of %d degrees changes nothing: %w", degrees, types.ErrInvalidInput)
	}
	return d, nil
}

// RotatePages writes in with the listed pages rotated clockwise by degrees.
func (e *Editor) RotatePages(in, pageList string, degrees int, outDir, name string) (Outcome, error) {
	d, err := NormalizeRotation(degrees)
	if err != nil {
		return Outcome{}, err
	}
	o, err := e.prepare(in, pageList, outDir, name, RotatedName)
	if err != nil {
		return Outcome{}, err
	}
	e.log.WithFields(logrus.Fields{"in": in, "pages": pagerange.Describe(o.Pages), "degrees": d}).Debug("rotating pages")
	if err := e.engine.Rotate(in, o.Output, o.Pages, d); err != nil {
		return Outcome{}, err
	}
	return o, nil
}

// ExtractPages writes only the listed pages, in ascending order.
func (e *Editor) ExtractPages(in, pageList, outDir, name string) (Outcome, error) {
	o, err := e.prepare(in, pageList, outDir, name, ExtractedName)
	if err != nil {
		return Outcome{}, err
	}
	e.log.WithFields(logrus.Fields{"in": in, "pages": pagerange.Describe(o.Pages)}).Debug("extracting pages")
	if err := e.engine.Collect(in, o.Output, o.Pages); err != nil {
		return Outcome{}, err
	}
	return o, nil
}

// AddText draws req.Text on one page in black Helvetica.
func (e *Editor) AddText(in string, req TextRequest, outDir, name string) (Outcome, error) {
	if strings.TrimSpace(req.Text) == "" {
		return Outcome{}, fmt.Errorf("no text given: %w", types.ErrInvalidInput)
	}
	if err := docfile.ValidatePDF(in); err != nil {
		return Outcome{}, err
	}
	total, err := e.engine.PageCount(in)
	if err != nil {
		return Outcome{}, err
	}
	page, err := pagerange.FromUser(req.Page, total)
	if err != nil {
		return Outcome{}, err
	}
	size, err := e.engine.PageSize(in, page)
	if err != nil {
		return Outcome{}, err
	}
	out, err := output(in, outDir, name, TextName)
	if err != nil {
		return Outcome{}, err
	}

	fontSize := req.FontSize
	if fontSize <= 0 {
		fontSize = e.defaultSize
	}
	stamp := pdfengine.TextStamp{
		Text:     req.Text,
		X:        req.Pos.X,
		Y:        size.Height - req.Pos.Y,
		FontSize: fontSize,
	}
	e.log.WithFields(logrus.Fields{"in": in, "page": req.Page, "x": stamp.X, "y": stamp.Y}).Debug("adding text")
	if err := e.engine.StampText(in, out, page, []pdfengine.TextStamp{stamp}); err != nil {
		return Outcome{}, err
	}
	return Outcome{Output: out, Pages: []int{page}, Total: total}, nil
}
