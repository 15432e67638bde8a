// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compress

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-toolkit/internal/pdfengine"
	"github.com/pdiddy/pdf-toolkit/internal/pdftest"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

func TestCompressDefaultName(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "scan.pdf", 3)
	outDir := filepath.Join(dir, "out")

	engine := pdfengine.New(pdfengine.Options{})
	r, err := New(engine, nil).Compress(in, outDir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "compressed_scan.pdf"), r.Output)
	assert.Positive(t, r.BytesIn)
	assert.Positive(t, r.BytesOut)

	n, err := engine.PageCount(r.Output)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCompressCustomName(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "scan.pdf", 1)

	r, err := New(pdfengine.New(pdfengine.Options{}), nil).Compress(in, dir, "small")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "small.pdf"), r.Output)
}

func TestCompressRefusesToOverwriteInput(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "scan.pdf", 1)

	_, err := New(pdfengine.New(pdfengine.Options{}), nil).Compress(in, dir, "scan.pdf")
	assert.Error(t, err)
}

func TestCompressMissingInput(t *testing.T) {
	_, err := New(pdfengine.New(pdfengine.Options{}), nil).Compress(filepath.Join(t.TempDir(), "x.pdf"), ".", "")
	assert.ErrorIs(t, err, types.ErrInvalidFile)
}

func TestReport(t *testing.T) {
	r := Report{BytesIn: 2 * 1024 * 1024, BytesOut: 1024 * 1024}
	assert.InDelta(t, 0.5, r.Saving(), 1e-9)
	assert.Equal(t, "2.00 MB -> 1.00 MB (50.0% smaller)", r.String())
	assert.Zero(t, Report{}.Saving())
}
