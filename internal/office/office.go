// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package office converts between PDF and Word documents with LibreOffice.
// LibreOffice runs either from a local installation or inside a docker or
// podman image; both backends share the same command line and differ only in
// how the process is started.
package office

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/internal/container"
	"github.com/pdiddy/pdf-toolkit/internal/docfile"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Format is a LibreOffice output format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// MissingMessage is reported when no LibreOffice backend can run.
const MissingMessage = "LibreOffice not found: install LibreOffice (soffice) or set convert.backend=container"

// Converter converts a single document with LibreOffice.
type Converter interface {
	// Name identifies the backend in log lines.
	Name() string

	// Check reports ErrMissingDependency when the backend cannot run.
	Check(ctx context.Context) error

	// Convert writes in, converted to format, at out.
	Convert(ctx context.Context, in, out string, format Format) error
}

// New returns the backend selected by cfg.
func New(cfg types.ConvertConfig, log logrus.FieldLogger) (Converter, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	switch cfg.Backend {
	case types.BackendLocal, "":
		return NewLocal(cfg, container.OSExecutor{}, log), nil
	case types.BackendContainer:
		return NewContainer(cfg, nil, log), nil
	default:
		return nil, fmt.Errorf("unknown convert backend %q (want %s or %s): %w",
			cfg.Backend, types.BackendLocal, types.BackendContainer, types.ErrInvalidInput)
	}
}

// convertArgs is the soffice command line that converts in into outDir.
func convertArgs(in, outDir string, format Format) []string {
	args := []string{"--headless", "--norestore"}
	if format == FormatDOCX && strings.EqualFold(filepath.Ext(in), ".pdf") {
		args = append(args, "--infilter=writer_pdf_import", "--convert-to", "docx:MS Word 2007 XML")
	} else {
		args = append(args, "--convert-to", string(format))
	}
	return append(args, "--outdir", outDir, in)
}

// stage runs fn with a scratch directory next to out, then moves the file
// LibreOffice produced for in to out.
func stage(in, out string, format Format, fn func(scratch string) error) error {
	if err := docfile.EnsureDir(filepath.Dir(out)); err != nil {
		return err
	}
	scratch, err := os.MkdirTemp(filepath.Dir(out), ".soffice-")
	if err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	if err := fn(scratch); err != nil {
		return err
	}

	produced := filepath.Join(scratch, docfile.Stem(in)+"."+string(format))
	if _, err := os.Stat(produced); err != nil {
		return fmt.Errorf("LibreOffice produced no %s output for %s", format, filepath.Base(in))
	}
	if err := os.Rename(produced, out); err != nil {
		return fmt.Errorf("moving converted file to %s: %w", out, err)
	}
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// runError folds captured stderr and a deadline into the returned error.
func runError(ctx context.Context, err error, stderr *bytes.Buffer) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("LibreOffice timed out: %w", ctx.Err())
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("LibreOffice failed: %w: %s", err, msg)
	}
	return fmt.Errorf("LibreOffice failed: %w", err)
}
