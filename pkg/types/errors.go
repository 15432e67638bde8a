// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Failure categories. Components wrap one of these so callers can classify
// a failure with errors.Is.
var (
	ErrInvalidFile       = errors.New("missing or invalid file")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrPageOutOfRange    = errors.New("page out of range")
	ErrInvalidSplit      = errors.New("malformed split specification")
	ErrMissingDependency = errors.New("missing dependency")
	ErrInvalidInput      = errors.New("invalid input")
)

// Category returns the name of the failure category err belongs to, or
// "error" when it matches none.
func Category(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFile):
		return "invalid-file"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported-format"
	case errors.Is(err, ErrPageOutOfRange):
		return "page-out-of-range"
	case errors.Is(err, ErrInvalidSplit):
		return "invalid-split"
	case errors.Is(err, ErrMissingDependency):
		return "missing-dependency"
	case errors.Is(err, ErrInvalidInput):
		return "invalid-input"
	default:
		return "error"
	}
}
