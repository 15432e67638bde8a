// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge concatenates PDFs in the order given.
package merge

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/internal/docfile"
	"github.com/pdiddy/pdf-toolkit/internal/pdfengine"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// DefaultName is the output file name when none is given.
const DefaultName = "merged_output.pdf"

// Input is one document taking part in a merge.
type Input struct {
	Path  string `json:"path" yaml:"path"`
	Pages int    `json:"pages" yaml:"pages"`
}

// Summary describes a merge, planned or done.
type Summary struct {
	Inputs     []Input `json:"inputs" yaml:"inputs"`
	TotalPages int     `json:"total_pages" yaml:"total_pages"`
	Output     string  `json:"output,omitempty" yaml:"output,omitempty"`
}

// Merger merges documents through a PDF engine.
type Merger struct {
	engine pdfengine.Engine
	log    logrus.FieldLogger
}

// New returns a Merger. A nil log uses the logrus standard logger.
func New(engine pdfengine.Engine, log logrus.FieldLogger) *Merger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Merger{engine: engine, log: log}
}

// Preview validates every input and counts its pages without writing.
func (m *Merger) Preview(ins []string) (Summary, error) {
	if len(ins) < 2 {
		return Summary{}, fmt.Errorf("need at least 2 PDF files to merge, got %d: %w", len(ins), types.ErrInvalidInput)
	}

	var s Summary
	for _, in := range ins {
		if err := docfile.ValidatePDF(in); err != nil {
			return Summary{}, err
		}
		n, err := m.engine.PageCount(in)
		if err != nil {
			return Summary{}, err
		}
		s.Inputs = append(s.Inputs, Input{Path: in, Pages: n})
		s.TotalPages += n
	}
	return s, nil
}

// Merge writes all pages of ins, in order, to outDir/name. An empty name
// uses DefaultName; ".pdf" is appended when missing. An output that names
// one of the inputs is an error.
func (m *Merger) Merge(ins []string, outDir, name string) (Summary, error) {
	s, err := m.Preview(ins)
	if err != nil {
		return Summary{}, err
	}
	if err := docfile.EnsureDir(outDir); err != nil {
		return Summary{}, err
	}

	s.Output = docfile.OutputPath(outDir, name, ".pdf", DefaultName)
	for _, in := range ins {
		if docfile.SamePath(s.Output, in) {
			return Summary{}, fmt.Errorf("output %s would overwrite input %s: %w", s.Output, in, types.ErrInvalidInput)
		}
	}
	m.log.WithFields(logrus.Fields{"inputs": len(ins), "pages": s.TotalPages, "out": s.Output}).Debug("merging")
	if err := m.engine.Merge(ins, s.Output); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// Print writes one line per input followed by the totals.
func (s Summary) Print(w io.Writer) {
	for i, in := range s.Inputs {
		fmt.Fprintf(w, "%d. %s (%d pages)\n", i+1, filepath.Base(in.Path), in.Pages)
	}
	fmt.Fprintf(w, "\n%d files, %d pages total\n", len(s.Inputs), s.TotalPages)
}
