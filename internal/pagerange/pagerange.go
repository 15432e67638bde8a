// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagerange owns the toolkit's page-index convention. Pages are
// 0-based everywhere inside the toolkit; this package is the only place that
// converts from 1-based user input and to the 1-based page selections the PDF
// library expects.
package pagerange

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// FromUser converts a 1-based page number typed by a user to a 0-based index,
// checking it against total pages.
func FromUser(page, total int) (int, error) {
	if page < 1 || page > total {
		return 0, fmt.Errorf("page %d not in 1-%d: %w", page, total, types.ErrPageOutOfRange)
	}
	return page - 1, nil
}

// ParseList parses a 1-based page list such as "1,3,5" or "2-5,8" and returns
// the sorted, de-duplicated 0-based indices. Every page must lie in 1..total.
func ParseList(input string, total int) ([]int, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("empty page list: %w", types.ErrInvalidInput)
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, err := parseToken(part)
		if err != nil {
			return nil, err
		}
		for p := lo; p <= hi; p++ {
			idx, err := FromUser(p, total)
			if err != nil {
				return nil, err
			}
			seen[idx] = true
		}
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("no pages in %q: %w", input, types.ErrInvalidInput)
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

// parseToken reads "n" or "a-b" (1-based, inclusive).
func parseToken(tok string) (lo, hi int, err error) {
	if a, b, ok := strings.Cut(tok, "-"); ok {
		lo, err = strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid page range %q: %w", tok, types.ErrInvalidInput)
		}
		hi, err = strconv.Atoi(strings.TrimSpace(b))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid page range %q: %w", tok, types.ErrInvalidInput)
		}
		if hi < lo {
			return 0, 0, fmt.Errorf("descending page range %q: %w", tok, types.ErrInvalidInput)
		}
		return lo, hi, nil
	}

	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page number %q: %w", tok, types.ErrInvalidInput)
	}
	return n, n, nil
}

// ParseSizes parses a comma-separated list of chunk sizes ("3,2,4"). Every
// token must be a positive integer.
func ParseSizes(input string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("split size %q must be a positive number: %w", part, types.ErrInvalidSplit)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no split sizes given: %w", types.ErrInvalidSplit)
	}
	return sizes, nil
}

// Selection renders an interval as a 1-based library page selection
// ("3-5", or "3" for a single page).
func Selection(iv types.Interval) string {
	first, last := iv.Start+1, iv.End
	if first == last {
		return strconv.Itoa(first)
	}
	return fmt.Sprintf("%d-%d", first, last)
}

// Selections renders 0-based page indices as 1-based library selections,
// preserving order.
func Selections(pages []int) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = strconv.Itoa(p + 1)
	}
	return out
}

// Describe renders 0-based pages as a 1-based human-readable list ("1, 3, 5").
func Describe(pages []int) string {
	return strings.Join(Selections(pages), ", ")
}
