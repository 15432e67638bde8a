// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compress shrinks a PDF by letting the PDF library drop unused
// objects and compress streams.
package compress

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/internal/docfile"
	"github.com/pdiddy/pdf-toolkit/internal/pdfengine"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Report compares input and output sizes in bytes.
type Report struct {
	Input    string `json:"input" yaml:"input"`
	Output   string `json:"output" yaml:"output"`
	BytesIn  int64  `json:"bytes_in" yaml:"bytes_in"`
	BytesOut int64  `json:"bytes_out" yaml:"bytes_out"`
}

// Saving returns the fraction of the input size removed, which is negative
// when the output grew.
func (r Report) Saving() float64 {
	if r.BytesIn == 0 {
		return 0
	}
	return 1 - float64(r.BytesOut)/float64(r.BytesIn)
}

func (r Report) String() string {
	const mb = 1024 * 1024
	return fmt.Sprintf("%.2f MB -> %.2f MB (%.1f%% smaller)",
		float64(r.BytesIn)/mb, float64(r.BytesOut)/mb, r.Saving()*100)
}

// DefaultName returns "compressed_<name>.pdf" for in.
func DefaultName(in string) string {
	return "compressed_" + docfile.Stem(in) + ".pdf"
}

// Compressor rewrites documents through a PDF engine.
type Compressor struct {
	engine pdfengine.Engine
	log    logrus.FieldLogger
}

// New returns a Compressor. A nil log uses the logrus standard logger.
func New(engine pdfengine.Engine, log logrus.FieldLogger) *Compressor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Compressor{engine: engine, log: log}
}

// Compress writes an optimized copy of in to outDir/name, or to
// outDir/DefaultName(in) when name is empty.
func (c *Compressor) Compress(in, outDir, name string) (Report, error) {
	if err := docfile.ValidatePDF(in); err != nil {
		return Report{}, err
	}
	if err := docfile.EnsureDir(outDir); err != nil {
		return Report{}, err
	}

	out := docfile.OutputPath(outDir, name, ".pdf", DefaultName(in))
	if docfile.SamePath(out, in) {
		return Report{}, fmt.Errorf("output %s would overwrite the input: %w", out, types.ErrInvalidInput)
	}
	if err := c.engine.Optimize(in, out); err != nil {
		return Report{}, err
	}

	r := Report{Input: in, Output: out}
	if info, err := os.Stat(in); err == nil {
		r.BytesIn = info.Size()
	}
	if info, err := os.Stat(out); err == nil {
		r.BytesOut = info.Size()
	}
	c.log.WithFields(logrus.Fields{"in": in, "out": out, "bytes_in": r.BytesIn, "bytes_out": r.BytesOut}).Debug("compressed")
	return r, nil
}
