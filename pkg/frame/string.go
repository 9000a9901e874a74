// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import "strings"

const minColWidth = 5

// fixLengthString pads (on the left) or truncates s to exactly
// desiredLen bytes, truncating with a trailing "..." when s is too long.
func fixLengthString(s, pad string, desiredLen int) string {
	if len(s) > desiredLen {
		if desiredLen < 3 {
			return s[:desiredLen]
		}
		return s[:desiredLen-3] + "..."
	}
	padCount := desiredLen - len(s)
	if padCount > 0 {
		return strings.Repeat(pad, padCount) + s
	}
	return s
}

func intMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// String renders a simple fixed-width table: a header row, a rule, then
// one row per frame row, each cell left-padded (right-aligned) to its
// column's width.
func (f *Frame) String() string {
	colWidths := make([]int, len(f.cols))
	header := make([]string, len(f.cols))
	for i, c := range f.cols {
		colWidths[i] = intMax(len(c.Name()), minColWidth)
		header[i] = fixLengthString(c.Name(), " ", colWidths[i])
	}
	lines := make([]string, 0, f.nrows+2)
	lines = append(lines, strings.Join(header, " "))

	rule := make([]string, len(f.cols))
	for i := range f.cols {
		rule[i] = fixLengthString("", "-", colWidths[i])
	}
	lines = append(lines, strings.Join(rule, " "))

	row := make([]string, len(f.cols))
	for i := 0; i < f.nrows; i++ {
		for j, c := range f.cols {
			row[j] = fixLengthString(c.StringAt(i, "null"), " ", colWidths[j])
		}
		lines = append(lines, strings.Join(row, " "))
	}
	return strings.Join(lines, "\n")
}

// Equals reports whether two frames have the same columns (name, kind,
// values, nulls, in order) and the same row count. Row key state is not
// compared.
func (f *Frame) Equals(o *Frame) (bool, string) {
	if f.nrows != o.nrows {
		return false, "row count differs"
	}
	if len(f.cols) != len(o.cols) {
		return false, "column count differs"
	}
	for i, c := range f.cols {
		oc := o.cols[i]
		if !c.Equal(oc) {
			return false, "column " + c.Name() + " differs"
		}
	}
	return true, ""
}
