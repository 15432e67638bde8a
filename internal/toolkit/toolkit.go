// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolkit is the call boundary between the command line and the
// document components. Every operation returns a types.Result: failures,
// including panics inside a component, become a Result with OK unset and a
// message, never an error. When a journal is attached each operation is
// recorded there.
package toolkit

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/internal/compress"
	"github.com/pdiddy/pdf-toolkit/internal/convert"
	"github.com/pdiddy/pdf-toolkit/internal/edit"
	"github.com/pdiddy/pdf-toolkit/internal/journal"
	"github.com/pdiddy/pdf-toolkit/internal/merge"
	"github.com/pdiddy/pdf-toolkit/internal/office"
	"github.com/pdiddy/pdf-toolkit/internal/pdfengine"
	"github.com/pdiddy/pdf-toolkit/internal/sign"
	"github.com/pdiddy/pdf-toolkit/internal/split"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Operation names, as recorded in Result.Op and the journal.
const (
	OpSplit    = "split"
	OpMerge    = "merge"
	OpCompress = "compress"
	OpConvert  = "convert"
	OpDelete   = "delete_pages"
	OpRotate   = "rotate_pages"
	OpExtract  = "extract_pages"
	OpAddText  = "add_text"
	OpSign     = "sign"
	OpInfo     = "info"
)

var opTitles = map[string]string{
	OpSplit:    "Split",
	OpMerge:    "Merge",
	OpCompress: "Compression",
	OpConvert:  "Conversion",
	OpDelete:   "Page deletion",
	OpRotate:   "Page rotation",
	OpExtract:  "Page extraction",
	OpAddText:  "Adding text",
	OpSign:     "Signing",
	OpInfo:     "Reading file info",
}

// Options configures a Toolkit. Nil fields get working defaults.
type Options struct {
	Config types.ToolkitConfig

	// Engine is the PDF library handle factory. Nil uses pdfcpu without passwords.
	Engine pdfengine.Engine

	// Office runs LibreOffice conversions. Nil builds the backend named in Config.
	Office office.Converter

	// Journal records each operation when set.
	Journal *journal.Store

	Logger logrus.FieldLogger

	// Status receives per-item progress lines. Nil discards them.
	Status io.Writer
}

// Toolkit runs document operations.
type Toolkit struct {
	cfg     types.ToolkitConfig
	engine  pdfengine.Engine
	journal *journal.Store
	log     logrus.FieldLogger
	status  io.Writer

	splitter   *split.Splitter
	merger     *merge.Merger
	compressor *compress.Compressor
	converter  *convert.Converter
	editor     *edit.Editor
	signer     *sign.Signer
}

// New wires the components together.
func New(opts Options) (*Toolkit, error) {
	cfg := opts.Config.WithDefaults()

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	status := opts.Status
	if status == nil {
		status = io.Discard
	}
	engine := opts.Engine
	if engine == nil {
		engine = pdfengine.New(pdfengine.Options{})
	}
	oc := opts.Office
	if oc == nil {
		var err error
		if oc, err = office.New(cfg.Convert, log); err != nil {
			return nil, err
		}
	}

	return &Toolkit{
		cfg:        cfg,
		engine:     engine,
		journal:    opts.Journal,
		log:        log,
		status:     status,
		splitter:   split.New(engine, log),
		merger:     merge.New(engine, log),
		compressor: compress.New(engine, log),
		converter:  convert.New(engine, oc, log),
		editor:     edit.New(engine, cfg.Edit.FontSize, log),
		signer:     sign.New(engine, cfg.Sign, log),
	}, nil
}

// Config returns the effective configuration.
func (t *Toolkit) Config() types.ToolkitConfig {
	return t.cfg
}

// outDir returns dir, or the configured output directory when dir is empty.
func (t *Toolkit) outDir(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return t.cfg.OutputDir
	}
	return dir
}

// outcome is what an operation body hands back to run.
type outcome struct {
	message string
	outputs []string
}

// try executes fn and converts its outcome, error or panic into a Result.
func (t *Toolkit) try(op string, fn func() (outcome, error)) (res types.Result) {
	defer func() {
		if r := recover(); r != nil {
			t.log.WithFields(logrus.Fields{"op": op, "panic": r}).Error("operation panicked")
			res = types.Result{Op: op, Message: fmt.Sprintf("%s failed: unexpected error: %v", opTitles[op], r)}
		}
	}()

	o, err := fn()
	if err != nil {
		t.log.WithFields(logrus.Fields{"op": op, "category": types.Category(err)}).WithError(err).Debug("operation failed")
		return types.Result{Op: op, Message: fmt.Sprintf("%s failed: %v", opTitles[op], err), Outputs: o.outputs}
	}
	return types.Result{Op: op, OK: true, Message: o.message, Outputs: o.outputs}
}

// run is try followed by a journal record of the Result.
func (t *Toolkit) run(ctx context.Context, op string, inputs []string, fn func() (outcome, error)) types.Result {
	res := t.try(op, fn)
	t.record(ctx, inputs, res)
	return res
}

func (t *Toolkit) record(ctx context.Context, inputs []string, res types.Result) {
	if t.journal == nil {
		return
	}
	entry, err := t.journal.Record(ctx, inputs, res)
	if err != nil {
		t.log.WithError(err).Warn("could not record operation in journal")
		return
	}
	t.log.WithFields(logrus.Fields{"id": entry.ID, "op": entry.Op}).Debug("journaled")
}
