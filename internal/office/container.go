// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package office

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/internal/container"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

const (
	mountIn  = "/work/in"
	mountOut = "/work/out"
)

// Container runs LibreOffice inside a docker or podman image.
type Container struct {
	image   string
	timeout time.Duration
	rt      container.Runtime
	detect  func(ctx context.Context) (container.Runtime, error)
	log     logrus.FieldLogger
}

// NewContainer returns a Container backend. A nil rt is detected on first use.
func NewContainer(cfg types.ConvertConfig, rt container.Runtime, log logrus.FieldLogger) *Container {
	return &Container{
		image:   cfg.Image,
		timeout: cfg.Timeout,
		rt:      rt,
		detect:  container.DetectRuntime,
		log:     log,
	}
}

func (c *Container) Name() string { return "container" }

func (c *Container) runtime(ctx context.Context) (container.Runtime, error) {
	if c.rt != nil {
		return c.rt, nil
	}
	rt, err := c.detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", MissingMessage, err, types.ErrMissingDependency)
	}
	c.rt = rt
	return rt, nil
}

func (c *Container) Check(ctx context.Context) error {
	rt, err := c.runtime(ctx)
	if err != nil {
		return err
	}
	if err := rt.ImageExists(ctx, c.image); err != nil {
		return fmt.Errorf("LibreOffice image not available (pull %s first): %v: %w", c.image, err, types.ErrMissingDependency)
	}
	return nil
}

func (c *Container) Convert(ctx context.Context, in, out string, format Format) error {
	if err := c.Check(ctx); err != nil {
		return err
	}
	inDir, err := filepath.Abs(filepath.Dir(in))
	if err != nil {
		return fmt.Errorf("resolving %s: %w", in, err)
	}

	return stage(in, out, format, func(scratch string) error {
		outDir, err := filepath.Abs(scratch)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", scratch, err)
		}

		ctx, cancel := withTimeout(ctx, c.timeout)
		defer cancel()

		args := append([]string{"-env:UserInstallation=file:///tmp/lo-profile"},
			convertArgs(mountIn+"/"+filepath.Base(in), mountOut, format)...)
		spec := container.RunSpec{
			Image: c.image,
			Mounts: []container.Mount{
				{Host: inDir, Container: mountIn, ReadOnly: true},
				{Host: outDir, Container: mountOut},
			},
			Entrypoint: "soffice",
			Args:       args,
		}
		c.log.WithFields(logrus.Fields{"runtime": c.rt.Name(), "image": c.image, "args": args}).Debug("running LibreOffice container")

		var stderr bytes.Buffer
		spec.Stderr = &stderr
		if err := c.rt.Run(ctx, spec); err != nil {
			return runError(ctx, err, &stderr)
		}
		return nil
	})
}
