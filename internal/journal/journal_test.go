// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	store, err := Open(filepath.Join(tmpDir, "state", "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	// Deterministic, strictly increasing timestamps.
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return store, tmpDir
}

func writeOutput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenCreatesDatabase(t *testing.T) {
	_, tmpDir := testStore(t)
	if _, err := os.Stat(filepath.Join(tmpDir, "state", "journal.db")); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
}

func TestDigest(t *testing.T) {
	dir := t.TempDir()
	a := writeOutput(t, dir, "a", "hello")
	b := writeOutput(t, dir, "b", "hello")
	c := writeOutput(t, dir, "c", "world")

	da, size, err := Digest(a)
	if err != nil {
		t.Fatal(err)
	}
	if size != 5 {
		t.Errorf("size = %d, want 5", size)
	}
	if len(da) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(da))
	}
	db, _, _ := Digest(b)
	dc, _, _ := Digest(c)
	if da != db {
		t.Error("same content should hash the same")
	}
	if da == dc {
		t.Error("different content should hash differently")
	}
}

func TestRecordAndList(t *testing.T) {
	store, tmpDir := testStore(t)
	ctx := context.Background()
	out := writeOutput(t, tmpDir, "merged_output.pdf", "%PDF-merged")

	entry, err := store.Record(ctx, []string{"a.pdf", "b.pdf"}, types.Result{
		Op: "merge", OK: true, Message: "merged 2 files", Outputs: []string{out},
	})
	if err != nil {
		t.Fatal(err)
	}
	if entry.ID == "" {
		t.Fatal("entry has no id")
	}
	if _, err := store.Record(ctx, []string{"x.pdf"}, types.Result{Op: "split", OK: false, Message: "invalid split"}); err != nil {
		t.Fatal(err)
	}

	entries, err := store.List(ctx, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Op != "split" {
		t.Errorf("newest first: got %q, want split", entries[0].Op)
	}

	merge := entries[1]
	if merge.ID != entry.ID || !merge.OK || merge.Message != "merged 2 files" {
		t.Errorf("unexpected merge entry: %+v", merge)
	}
	if len(merge.Inputs) != 2 || merge.Inputs[1] != "b.pdf" {
		t.Errorf("inputs = %v", merge.Inputs)
	}
	if len(merge.Outputs) != 1 || merge.Outputs[0].Size != int64(len("%PDF-merged")) || merge.Outputs[0].Digest == "" {
		t.Errorf("outputs = %+v", merge.Outputs)
	}
	if !merge.CreatedAt.Equal(time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC)) {
		t.Errorf("created_at = %v", merge.CreatedAt)
	}
}

func TestListFilters(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	for _, r := range []types.Result{
		{Op: "split", OK: true},
		{Op: "split", OK: false},
		{Op: "merge", OK: true},
		{Op: "compress", OK: false},
	} {
		if _, err := store.Record(ctx, nil, r); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		opts QueryOptions
		want int
	}{
		{"all", QueryOptions{}, 4},
		{"by op", QueryOptions{Op: "split"}, 2},
		{"failed only", QueryOptions{FailedOnly: true}, 2},
		{"failed split", QueryOptions{Op: "split", FailedOnly: true}, 1},
		{"limit", QueryOptions{Limit: 3}, 3},
		{"no match", QueryOptions{Op: "sign"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d entries, want %d", len(got), tt.want)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	store, tmpDir := testStore(t)
	ctx := context.Background()
	keep := writeOutput(t, tmpDir, "part_1.pdf", "one")
	change := writeOutput(t, tmpDir, "part_2.pdf", "two")

	entry, err := store.Record(ctx, nil, types.Result{Op: "split", OK: true, Outputs: []string{keep, change}})
	if err != nil {
		t.Fatal(err)
	}
	writeOutput(t, tmpDir, "part_2.pdf", "tampered")

	got, err := store.Verify(ctx, entry.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got[keep] {
		t.Error("unchanged output should verify")
	}
	if got[change] {
		t.Error("modified output should not verify")
	}

	if _, err := store.Verify(ctx, "no-such-id"); err == nil {
		t.Error("expected error for unknown operation")
	}
}

func TestExportYAML(t *testing.T) {
	store, tmpDir := testStore(t)
	ctx := context.Background()
	out := writeOutput(t, tmpDir, "signed_a.pdf", "signed")
	if _, err := store.Record(ctx, []string{"a.pdf"}, types.Result{Op: "sign", OK: true, Outputs: []string{out}}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := store.ExportYAML(ctx, &buf, QueryOptions{}); err != nil {
		t.Fatal(err)
	}

	var entries []types.JournalEntry
	if err := yaml.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(entries) != 1 || entries[0].Op != "sign" || len(entries[0].Outputs) != 1 {
		t.Errorf("unexpected export: %+v", entries)
	}
}

func TestExportJSONFiltered(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()
	for _, op := range []string{"merge", "split", "merge"} {
		if _, err := store.Record(ctx, nil, types.Result{Op: op, OK: true}); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := store.ExportJSON(ctx, &buf, QueryOptions{Op: "merge", Limit: 1}); err != nil {
		t.Fatal(err)
	}

	var entries []types.JournalEntry
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2 (export ignores limit)", len(entries))
	}
}
