// Package seatmap derives and validates seat identifiers for an event's
// seat grid.  A seat label combines a row letter and a 1-based column
// number ("C7"), generated client-side from the event's seatRows and
// seatCols and validated server-side against the same bounds.  The
// package is pure: no I/O, no state.
package seatmap

import (
	"fmt"
	"strconv"
	"strings"
)

// rowLetters is the fixed alphabet for row labels.  Row index 0 maps to
// 'A'.  Grids larger than 26 rows are rejected at validation time.
const rowLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// MaxRows is the largest supported row count for a seat grid.
const MaxRows = uint32(len(rowLetters))

// Label builds the seat label for a zero-based row index and a 1-based
// column number.  The caller is responsible for passing in-bounds values.
func Label(rowIdx uint32, col uint32) string {
	return fmt.Sprintf("%c%d", rowLetters[rowIdx], col)
}

// Parse splits a seat label into its zero-based row index and 1-based
// column number.  Labels must be a single upper-case row letter followed
// by digits without leading zeros ("A1", "T20").  Returns ok=false for
// anything else.
func Parse(label string) (rowIdx uint32, col uint32, ok bool) {
	if len(label) < 2 {
		return 0, 0, false
	}
	idx := strings.IndexByte(rowLetters, label[0])
	if idx < 0 {
		return 0, 0, false
	}
	digits := label[1:]
	if digits[0] == '0' {
		return 0, 0, false
	}
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil || n == 0 {
		return 0, 0, false
	}
	return uint32(idx), uint32(n), true
}

// InBounds reports whether label names a seat inside an R x C grid.
func InBounds(label string, rows, cols uint32) bool {
	if rows > MaxRows {
		rows = MaxRows
	}
	rowIdx, col, ok := Parse(label)
	return ok && rowIdx < rows && col >= 1 && col <= cols
}

// Normalize trims and upper-cases labels and drops duplicates and empty
// strings, preserving first-seen order.  It does not check grid bounds.
func Normalize(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Intersect returns the labels of requested that also appear in taken,
// in the order they occur in requested.  It is how the booking
// transaction computes conflicting seats.
func Intersect(requested, taken []string) []string {
	if len(requested) == 0 || len(taken) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(taken))
	for _, l := range taken {
		set[l] = struct{}{}
	}
	var out []string
	for _, l := range requested {
		if _, ok := set[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Grid lists every label of an R x C grid row by row.  Used by the seed
// command and the seat layout endpoint.
func Grid(rows, cols uint32) []string {
	if rows > MaxRows {
		rows = MaxRows
	}
	out := make([]string, 0, rows*cols)
	for r := uint32(0); r < rows; r++ {
		for c := uint32(1); c <= cols; c++ {
			out = append(out, Label(r, c))
		}
	}
	return out
}
