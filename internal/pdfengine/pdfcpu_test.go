// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfengine

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-toolkit/internal/pdftest"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

func TestPageCountAndSize(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "in.pdf", 4)
	e := New(Options{})

	n, err := e.PageCount(in)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	size, err := e.PageSize(in, 3)
	require.NoError(t, err)
	assert.InDelta(t, pdftest.LetterWidth, size.Width, 0.01)
	assert.InDelta(t, pdftest.LetterHeight, size.Height, 0.01)

	_, err = e.PageSize(in, 4)
	assert.ErrorIs(t, err, types.ErrPageOutOfRange)
}

func TestPageCountRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.pdf")
	require.NoError(t, os.WriteFile(bad, []byte("not a pdf"), 0o644))

	_, err := New(Options{}).PageCount(bad)
	assert.ErrorIs(t, err, types.ErrInvalidFile)
}

func TestWritePagesMergeAndEdits(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "in.pdf", 6)
	e := New(Options{})

	part := filepath.Join(dir, "part.pdf")
	require.NoError(t, e.WritePages(in, part, types.Interval{Start: 2, End: 5}))
	assertPages(t, e, part, 3)

	merged := filepath.Join(dir, "merged.pdf")
	require.NoError(t, e.Merge([]string{in, part}, merged))
	assertPages(t, e, merged, 9)

	removed := filepath.Join(dir, "removed.pdf")
	require.NoError(t, e.RemovePages(in, removed, []int{0, 5}))
	assertPages(t, e, removed, 4)

	collected := filepath.Join(dir, "collected.pdf")
	require.NoError(t, e.Collect(in, collected, []int{1, 3}))
	assertPages(t, e, collected, 2)

	rotated := filepath.Join(dir, "rotated.pdf")
	require.NoError(t, e.Rotate(in, rotated, []int{0}, 90))
	assertPages(t, e, rotated, 6)

	optimized := filepath.Join(dir, "optimized.pdf")
	require.NoError(t, e.Optimize(in, optimized))
	assertPages(t, e, optimized, 6)
}

func TestStampText(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "in.pdf", 2)
	out := filepath.Join(dir, "stamped.pdf")
	e := New(Options{})

	err := e.StampText(in, out, 1, []TextStamp{
		{Text: "Jane Doe", X: 50, Y: 50, FontSize: 14},
		{Text: "Jane Doe", X: 400, Y: 50, FontSize: 14},
		{Text: "fine print", X: 50, Y: 20, FontSize: 10.5},
	})
	require.NoError(t, err)
	assertPages(t, e, out, 2)
}

func TestPoints(t *testing.T) {
	for size, want := range map[float64]string{
		12:   "12",
		14:   "14",
		10.5: "11",
		9.4:  "9",
		0.2:  "1",
	} {
		assert.Equal(t, want, points(size), "size %v", size)
	}
}

func TestImportImages(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "img.png")
	writePNG(t, img, 30, 20)

	out := filepath.Join(dir, "images.pdf")
	e := New(Options{})
	require.NoError(t, e.ImportImages([]string{img}, out))
	assertPages(t, e, out, 1)

	// A second import replaces rather than appends.
	require.NoError(t, e.ImportImages([]string{img}, out))
	assertPages(t, e, out, 1)
}

func assertPages(t *testing.T, e Engine, path string, want int) {
	t.Helper()
	n, err := e.PageCount(path)
	require.NoError(t, err)
	assert.Equal(t, want, n, path)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}
