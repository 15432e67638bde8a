// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolkit

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-toolkit/internal/edit"
	"github.com/pdiddy/pdf-toolkit/internal/journal"
	"github.com/pdiddy/pdf-toolkit/internal/office"
	"github.com/pdiddy/pdf-toolkit/internal/pdfengine"
	"github.com/pdiddy/pdf-toolkit/internal/pdftest"
	"github.com/pdiddy/pdf-toolkit/internal/sign"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

type fakeOffice struct{}

func (fakeOffice) Name() string                { return "fake" }
func (fakeOffice) Check(context.Context) error { return nil }
func (fakeOffice) Convert(_ context.Context, _, out string, _ office.Format) error {
	return os.WriteFile(out, []byte("converted"), 0o644)
}

// panicEngine blows up on the first call, standing in for a library bug.
type panicEngine struct {
	pdfengine.Engine
}

func (panicEngine) PageCount(string) (int, error) {
	panic("corrupt xref")
}

func newToolkit(t *testing.T, opts Options) (*Toolkit, *bytes.Buffer) {
	t.Helper()
	var status bytes.Buffer
	logger, _ := test.NewNullLogger()
	opts.Logger = logger
	opts.Status = &status
	if opts.Office == nil {
		opts.Office = fakeOffice{}
	}
	if opts.Config.OutputDir == "" {
		opts.Config.OutputDir = t.TempDir()
	}
	tk, err := New(opts)
	require.NoError(t, err)
	return tk, &status
}

func TestSplitWritesParts(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "report.pdf", 10)
	tk, status := newToolkit(t, Options{})

	res := tk.Split(context.Background(), SplitRequest{Input: in, Size: 3})
	require.True(t, res.OK, res.Message)
	assert.Equal(t, OpSplit, res.Op)
	assert.Len(t, res.Outputs, 4)
	assert.Contains(t, res.Message, "4 files")
	assert.Contains(t, status.String(), "created: report_part_4.pdf (pages 10)")

	engine := pdfengine.New(pdfengine.Options{})
	var sum int
	for _, out := range res.Outputs {
		n, err := engine.PageCount(out)
		require.NoError(t, err)
		sum += n
	}
	assert.Equal(t, 10, sum)
}

func TestSplitCustomSizes(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "doc.pdf", 10)
	tk, _ := newToolkit(t, Options{})

	res := tk.Split(context.Background(), SplitRequest{Input: in, Sizes: "2,5", Start: 3})
	require.True(t, res.OK, res.Message)
	require.Len(t, res.Outputs, 2)

	engine := pdfengine.New(pdfengine.Options{})
	n, err := engine.PageCount(res.Outputs[1])
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestSplitInvalidPlanReportsFailure(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "doc.pdf", 4)
	outDir := filepath.Join(dir, "out")
	tk, _ := newToolkit(t, Options{})

	tests := []struct {
		name string
		req  SplitRequest
	}{
		{"zero size", SplitRequest{Input: in, OutputDir: outDir}},
		{"bad sizes", SplitRequest{Input: in, OutputDir: outDir, Sizes: "2,x"}},
		{"sizes too large", SplitRequest{Input: in, OutputDir: outDir, Sizes: "3,3"}},
		{"start past end", SplitRequest{Input: in, OutputDir: outDir, Size: 1, Start: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tk.Split(context.Background(), tt.req)
			assert.False(t, res.OK)
			assert.True(t, strings.HasPrefix(res.Message, "Split failed: "), res.Message)
			_, err := os.Stat(outDir)
			assert.True(t, os.IsNotExist(err), "nothing should be written")
		})
	}
}

func TestPlanSplitWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "doc.pdf", 5)
	outDir := filepath.Join(dir, "out")
	tk, _ := newToolkit(t, Options{})

	parts, res := tk.PlanSplit(SplitRequest{Input: in, OutputDir: outDir, Size: 2})
	require.True(t, res.OK, res.Message)
	require.Len(t, parts, 3)
	assert.Equal(t, types.Interval{Start: 4, End: 5}, parts[2].Pages)

	_, err := os.Stat(outDir)
	assert.True(t, os.IsNotExist(err))
}

func TestMergeAndPreview(t *testing.T) {
	dir := t.TempDir()
	a := pdftest.Write(t, dir, "a.pdf", 2)
	b := pdftest.Write(t, dir, "b.pdf", 3)
	tk, _ := newToolkit(t, Options{})

	sum, res := tk.PreviewMerge([]string{a, b})
	require.True(t, res.OK, res.Message)
	assert.Equal(t, 5, sum.TotalPages)

	res = tk.Merge(context.Background(), []string{a, b}, "", "")
	require.True(t, res.OK, res.Message)
	assert.Contains(t, res.Message, "Merged 2 files (5 pages)")
	assert.Equal(t, filepath.Join(tk.Config().OutputDir, "merged_output.pdf"), res.Outputs[0])

	res = tk.Merge(context.Background(), []string{a}, "", "")
	assert.False(t, res.OK)
	assert.True(t, strings.HasPrefix(res.Message, "Merge failed: "))
}

func TestMergeIntoInputFails(t *testing.T) {
	dir := t.TempDir()
	a := pdftest.Write(t, dir, "a.pdf", 2)
	b := pdftest.Write(t, dir, "b.pdf", 3)
	tk, _ := newToolkit(t, Options{})

	res := tk.Merge(context.Background(), []string{a, b}, dir, "a.pdf")
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "would overwrite input")

	info := tk.Info(a)
	require.True(t, info.OK, info.Message)
	assert.Contains(t, info.Message, "a.pdf (2 pages,")
}

func TestCompressReportsSizes(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "big.pdf", 3)
	tk, _ := newToolkit(t, Options{})

	res := tk.Compress(context.Background(), in, "", "")
	require.True(t, res.OK, res.Message)
	assert.Equal(t, "compressed_big.pdf", filepath.Base(res.Outputs[0]))
	assert.Contains(t, res.Message, "MB ->")
}

func TestConvertBatchFailureFailsResult(t *testing.T) {
	dir := t.TempDir()
	docx := filepath.Join(dir, "letter.docx")
	require.NoError(t, os.WriteFile(docx, []byte("word"), 0o644))
	tk, status := newToolkit(t, Options{})

	res := tk.ConvertBatch(context.Background(), []string{docx, filepath.Join(dir, "missing.docx")}, "", false)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "1 of 2 files failed")
	assert.Len(t, res.Outputs, 1)
	assert.Contains(t, status.String(), "converted: letter.docx -> letter_converted.pdf")

	res = tk.Convert(context.Background(), docx, "", "out")
	require.True(t, res.OK, res.Message)
	assert.Equal(t, "out.pdf", filepath.Base(res.Outputs[0]))

	res = tk.Convert(context.Background(), filepath.Join(dir, "notes.txt"), "", "")
	assert.False(t, res.OK)
	assert.True(t, strings.HasPrefix(res.Message, "Conversion failed: "))
}

func TestEditOperations(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "doc.pdf", 5)
	tk, _ := newToolkit(t, Options{})
	ctx := context.Background()

	res := tk.DeletePages(ctx, in, "2,4", "", "")
	require.True(t, res.OK, res.Message)
	assert.Contains(t, res.Message, "Deleted pages 2, 4")

	res = tk.RotatePages(ctx, in, "1-2", 90, "", "")
	require.True(t, res.OK, res.Message)

	res = tk.ExtractPages(ctx, in, "5,1", "", "")
	require.True(t, res.OK, res.Message)
	assert.Contains(t, res.Message, "Extracted 2 pages")

	res = tk.AddText(ctx, in, edit.TextRequest{Page: 1, Text: "Approved", Pos: types.Position{X: 72, Y: 72}}, "", "")
	require.True(t, res.OK, res.Message)

	res = tk.DeletePages(ctx, in, "9", "", "")
	assert.False(t, res.OK)
	assert.True(t, strings.HasPrefix(res.Message, "Page deletion failed: "))
}

func TestSignOperations(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "contract.pdf", 2)
	tk, _ := newToolkit(t, Options{})
	ctx := context.Background()
	pl := sign.Placement{Page: 2, Preset: types.PresetBoth}

	res := tk.SignText(ctx, in, "", "", pl, "J. Doe", 0)
	require.True(t, res.OK, res.Message)
	assert.Contains(t, res.Message, "page 2 at 2 position(s)")
	assert.Equal(t, "signed_contract.pdf", filepath.Base(res.Outputs[0]))

	res = tk.SignRendered(ctx, in, "", "rendered", pl, "J. Doe")
	require.True(t, res.OK, res.Message)

	res = tk.SignImage(ctx, in, "", "", pl, filepath.Join(dir, "nope.png"), 0, 0)
	assert.False(t, res.OK)
	assert.True(t, strings.HasPrefix(res.Message, "Signing failed: "))
}

func TestPanicBecomesResult(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "doc.pdf", 2)
	logger, hook := test.NewNullLogger()
	tk, err := New(Options{Engine: panicEngine{}, Office: fakeOffice{}, Logger: logger})
	require.NoError(t, err)

	var res types.Result
	assert.NotPanics(t, func() {
		res = tk.Split(context.Background(), SplitRequest{Input: in, Size: 1, OutputDir: dir})
	})
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "Split failed: unexpected error: corrupt xref")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	pdf := pdftest.Write(t, dir, "doc.pdf", 3)

	img := filepath.Join(dir, "scan.png")
	f, err := os.Create(img)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 40, 20))))
	require.NoError(t, f.Close())

	docx := filepath.Join(dir, "memo.docx")
	require.NoError(t, os.WriteFile(docx, []byte("memo"), 0o644))

	tk, _ := newToolkit(t, Options{})
	tests := []struct {
		path string
		want string
	}{
		{pdf, "doc.pdf (3 pages, 0.0 MB)"},
		{img, "scan.png (40x20px, 0.0 MB)"},
		{docx, "memo.docx (0.0 MB)"},
	}
	for _, tt := range tests {
		res := tk.Info(tt.path)
		require.True(t, res.OK, res.Message)
		assert.Equal(t, tt.want, res.Message)
	}

	res := tk.Info(filepath.Join(dir, "missing.pdf"))
	assert.False(t, res.OK)
	assert.True(t, strings.HasPrefix(res.Message, "Reading file info failed: "))
}

func TestJournalRecordsOperations(t *testing.T) {
	dir := t.TempDir()
	in := pdftest.Write(t, dir, "doc.pdf", 4)
	store, err := journal.Open(filepath.Join(dir, "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	tk, _ := newToolkit(t, Options{Journal: store})
	ctx := context.Background()

	require.True(t, tk.Split(ctx, SplitRequest{Input: in, Size: 2}).OK)
	assert.False(t, tk.Merge(ctx, []string{in}, "", "").OK)
	tk.Info(in)
	tk.PlanSplit(SplitRequest{Input: in, Size: 2})

	entries, err := store.List(ctx, journal.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, OpMerge, entries[0].Op)
	assert.False(t, entries[0].OK)
	assert.Equal(t, OpSplit, entries[1].Op)
	assert.Equal(t, []string{in}, entries[1].Inputs)
	require.Len(t, entries[1].Outputs, 2)
	assert.NotEmpty(t, entries[1].Outputs[0].Digest)
}
