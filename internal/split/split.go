// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split cuts a PDF into consecutive parts, either of a fixed page
// count or of an ordered list of custom page counts, starting at a chosen
// page. The plan is resolved and validated in full before any file is written.
package split

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/internal/docfile"
	"github.com/pdiddy/pdf-toolkit/internal/pagerange"
	"github.com/pdiddy/pdf-toolkit/internal/pdfengine"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Plan describes how to split a document. Exactly one of Size and Sizes is
// used: Sizes wins when non-empty. Start is the 1-based first page.
type Plan struct {
	Size  int   `json:"size,omitempty" yaml:"size,omitempty"`
	Sizes []int `json:"sizes,omitempty" yaml:"sizes,omitempty"`
	Start int   `json:"start" yaml:"start"`
}

// Part is one output of a split.
type Part struct {
	Path  string         `json:"path" yaml:"path"`
	Pages types.Interval `json:"pages" yaml:"pages"`
}

// ResolveFixed returns consecutive intervals of size pages starting at the
// 1-based page start. The last interval is truncated at total.
func ResolveFixed(total, size, start int) ([]types.Interval, error) {
	if size <= 0 {
		return nil, fmt.Errorf("pages per file must be positive, got %d: %w", size, types.ErrInvalidSplit)
	}
	if err := checkStart(total, start); err != nil {
		return nil, err
	}

	var out []types.Interval
	for lo := start - 1; lo < total; lo += size {
		out = append(out, types.Interval{Start: lo, End: min(lo+size, total)})
	}
	return out, nil
}

// ResolveCustom returns one interval per size, in order, starting at the
// 1-based page start. The sizes may not ask for more pages than remain.
func ResolveCustom(total int, sizes []int, start int) ([]types.Interval, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no custom sizes given: %w", types.ErrInvalidSplit)
	}
	if err := checkStart(total, start); err != nil {
		return nil, err
	}

	sum := 0
	for _, s := range sizes {
		if s <= 0 {
			return nil, fmt.Errorf("custom size must be positive, got %d: %w", s, types.ErrInvalidSplit)
		}
		sum += s
	}
	remaining := total - start + 1
	if sum > remaining {
		return nil, fmt.Errorf("custom sizes total %d pages but only %d remain from page %d: %w",
			sum, remaining, start, types.ErrInvalidSplit)
	}

	out := make([]types.Interval, 0, len(sizes))
	lo := start - 1
	for _, s := range sizes {
		if lo >= total {
			break
		}
		hi := min(lo+s, total)
		out = append(out, types.Interval{Start: lo, End: hi})
		lo = hi
	}
	return out, nil
}

// Resolve dispatches to ResolveCustom or ResolveFixed.
func Resolve(total int, plan Plan) ([]types.Interval, error) {
	if len(plan.Sizes) > 0 {
		return ResolveCustom(total, plan.Sizes, plan.Start)
	}
	return ResolveFixed(total, plan.Size, plan.Start)
}

func checkStart(total, start int) error {
	if total <= 0 {
		return fmt.Errorf("document has no pages: %w", types.ErrInvalidSplit)
	}
	if start < 1 || start > total {
		return fmt.Errorf("start page %d not in 1-%d: %w", start, total, types.ErrInvalidSplit)
	}
	return nil
}

// PartName returns the file name of the n-th (1-based) part of in.
func PartName(in string, n int) string {
	return fmt.Sprintf("%s_part_%d.pdf", docfile.Stem(in), n)
}

// Splitter writes split parts through a PDF engine.
type Splitter struct {
	engine pdfengine.Engine
	log    logrus.FieldLogger
}

// New returns a Splitter. A nil log uses the logrus standard logger.
func New(engine pdfengine.Engine, log logrus.FieldLogger) *Splitter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Splitter{engine: engine, log: log}
}

// Plan validates in and resolves plan against its page count without
// writing anything.
func (s *Splitter) Plan(in, outDir string, plan Plan) ([]Part, error) {
	if err := docfile.ValidatePDF(in); err != nil {
		return nil, err
	}
	total, err := s.engine.PageCount(in)
	if err != nil {
		return nil, err
	}
	intervals, err := Resolve(total, plan)
	if err != nil {
		return nil, err
	}

	parts := make([]Part, len(intervals))
	for i, iv := range intervals {
		parts[i] = Part{Path: filepath.Join(outDir, PartName(in, i+1)), Pages: iv}
	}
	s.log.WithFields(logrus.Fields{"in": in, "pages": total, "parts": len(parts)}).Debug("split plan resolved")
	return parts, nil
}

// Split writes one file per resolved part into outDir, printing a status
// line per part to w. Nothing is written when the plan is invalid.
func (s *Splitter) Split(in, outDir string, plan Plan, w io.Writer) ([]Part, error) {
	parts, err := s.Plan(in, outDir, plan)
	if err != nil {
		return nil, err
	}
	if err := docfile.EnsureDir(outDir); err != nil {
		return nil, err
	}

	for i, p := range parts {
		if err := s.engine.WritePages(in, p.Path, p.Pages); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(p.Path), err)
			return parts[:i], fmt.Errorf("writing part %d: %w", i+1, err)
		}
		fmt.Fprintf(w, "created: %s (pages %s)\n", filepath.Base(p.Path), pagerange.Selection(p.Pages))
	}
	return parts, nil
}
