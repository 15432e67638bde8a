// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pdf-toolkit operations:
// document references, page intervals, positions, operation results, and the
// error categories every operation reports through.
package types

import "time"

// DocumentKind classifies a document reference by its extension.
type DocumentKind string

const (
	KindUnknown DocumentKind = ""
	KindPDF     DocumentKind = "pdf"
	KindWord    DocumentKind = "word"
	KindImage   DocumentKind = "image"
)

// Interval is a 0-based, half-open page interval [Start, End).
type Interval struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of pages in the interval.
func (iv Interval) Len() int {
	return iv.End - iv.Start
}

// Position is a point in page space, measured in points from the top-left
// corner of the page.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Preset names a signature anchor.
type Preset string

const (
	PresetBottomLeft  Preset = "bottom_left"
	PresetBottomRight Preset = "bottom_right"
	PresetBoth        Preset = "both"
	PresetCustom      Preset = "custom"
)

// Result is what every toolkit operation hands back to the shell: a success
// flag, a human-readable message, and the files that were written.
type Result struct {
	Op      string   `json:"op" yaml:"op"`
	OK      bool     `json:"ok" yaml:"ok"`
	Message string   `json:"message" yaml:"message"`
	Outputs []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// OutputRecord describes one file written by an operation.
type OutputRecord struct {
	Path   string `json:"path" yaml:"path"`
	Size   int64  `json:"size" yaml:"size"`
	Digest string `json:"digest" yaml:"digest"`
}

// JournalEntry is one recorded operation.
type JournalEntry struct {
	ID        string         `json:"id" yaml:"id"`
	Op        string         `json:"op" yaml:"op"`
	Inputs    []string       `json:"inputs" yaml:"inputs"`
	Outputs   []OutputRecord `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	OK        bool           `json:"ok" yaml:"ok"`
	Message   string         `json:"message" yaml:"message"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
}
