// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package office

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/internal/container"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// candidateBins are tried in order when no binary is configured.
var candidateBins = []string{"soffice", "libreoffice"}

// Local runs a LibreOffice binary found on PATH.
type Local struct {
	bins    []string
	timeout time.Duration
	exec    container.Executor
	log     logrus.FieldLogger
}

// NewLocal returns a Local backend. cfg.SofficeBin, when set, is the only
// binary tried.
func NewLocal(cfg types.ConvertConfig, exec container.Executor, log logrus.FieldLogger) *Local {
	bins := candidateBins
	if cfg.SofficeBin != "" {
		bins = []string{cfg.SofficeBin}
	}
	return &Local{bins: bins, timeout: cfg.Timeout, exec: exec, log: log}
}

func (l *Local) Name() string { return "local" }

func (l *Local) resolve() (string, error) {
	for _, b := range l.bins {
		if path, err := l.exec.LookPath(b); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: %w", MissingMessage, types.ErrMissingDependency)
}

func (l *Local) Check(context.Context) error {
	_, err := l.resolve()
	return err
}

func (l *Local) Convert(ctx context.Context, in, out string, format Format) error {
	bin, err := l.resolve()
	if err != nil {
		return err
	}

	return stage(in, out, format, func(scratch string) error {
		ctx, cancel := withTimeout(ctx, l.timeout)
		defer cancel()

		args := convertArgs(in, scratch, format)
		l.log.WithFields(logrus.Fields{"bin": bin, "args": args}).Debug("running LibreOffice")

		var stderr bytes.Buffer
		if err := l.exec.RunOutput(ctx, bin, args, io.Discard, &stderr); err != nil {
			return runError(ctx, err, &stderr)
		}
		return nil
	})
}
