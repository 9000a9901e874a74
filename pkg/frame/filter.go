// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"strconv"

	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/series"
)

// FilterMask keeps rows where mask[i] != 0. len(mask) must equal nrows.
func (f *Frame) FilterMask(mask []byte) (*Frame, error) {
	if len(mask) != f.nrows {
		return nil, dferr.Invalidf("filter: mask length %d does not match nrows %d", len(mask), f.nrows)
	}
	positions := make([]int, 0, f.nrows)
	for i, m := range mask {
		if m != 0 {
			positions = append(positions, i)
		}
	}
	return f.subsetRows(positions)
}

func (f *Frame) subsetRows(positions []int) (*Frame, error) {
	cols := make([]*series.Series, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.Subset(positions)
	}
	return FromSeries(cols)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Head returns the first k rows (clamped to [0, nrows]).
func (f *Frame) Head(k int) (*Frame, error) {
	k = clamp(k, 0, f.nrows)
	positions := make([]int, k)
	for i := range positions {
		positions[i] = i
	}
	return f.subsetRows(positions)
}

// Tail returns the last k rows (clamped to [0, nrows]).
func (f *Frame) Tail(k int) (*Frame, error) {
	k = clamp(k, 0, f.nrows)
	positions := make([]int, k)
	for i := range positions {
		positions[i] = f.nrows - k + i
	}
	return f.subsetRows(positions)
}

// ILoc selects by position: rows and cols are 0-based indices, all of
// which must be in range.
func (f *Frame) ILoc(rows, cols []int) (*Frame, error) {
	for _, r := range rows {
		if r < 0 || r >= f.nrows {
			return nil, dferr.Invalidf("iloc: row %d out of range [0,%d)", r, f.nrows)
		}
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		if c < 0 || c >= len(f.cols) {
			return nil, dferr.Invalidf("iloc: col %d out of range [0,%d)", c, len(f.cols))
		}
		names[i] = f.cols[c].Name()
	}
	selected, err := f.SelectCols(names)
	if err != nil {
		return nil, err
	}
	return selected.subsetRows(rows)
}

// Loc selects rows by position (or, if a row index is set, by row key)
// and columns by name.
func (f *Frame) Loc(rowKeys []string, cols []string) (*Frame, error) {
	selected, err := f.SelectCols(cols)
	if err != nil {
		return nil, err
	}
	if f.rowKey == nil {
		rows := make([]int, len(rowKeys))
		for i, rk := range rowKeys {
			pos, err := strconv.Atoi(rk)
			if err != nil || pos < 0 || pos >= f.nrows {
				return nil, dferr.Invalidf("loc: invalid row position %q", rk)
			}
			rows[i] = pos
		}
		return selected.subsetRows(rows)
	}
	rows := make([]int, len(rowKeys))
	for i, rk := range rowKeys {
		pos, ok := f.rowKey.byText[rk]
		if !ok {
			return nil, dferr.Invalidf("loc: unknown row key %q", rk)
		}
		rows[i] = pos
	}
	return selected.subsetRows(rows)
}

// SetIndex promotes an Int64 or Text column to the frame's row key and
// removes it from the data columns.
func (f *Frame) SetIndex(name string) (*Frame, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind() != series.Int64 && c.Kind() != series.Text {
		return nil, dferr.Invalidf("set_index: column %q must be Int64 or Text", name)
	}
	rk := &rowIndex{kind: c.Kind(), byText: make(map[string]int, c.Len())}
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			continue
		}
		key := keyText(c, i)
		if _, exists := rk.byText[key]; !exists {
			rk.byText[key] = i
		}
	}
	dropped, err := f.DropCols([]string{name})
	if err != nil {
		return nil, err
	}
	dropped.rowKey = rk
	return dropped, nil
}

// ResetIndex clears the frame's row key, leaving data columns as-is.
func (f *Frame) ResetIndex() *Frame {
	cp := f.Copy()
	cp.rowKey = nil
	return cp
}

func keyText(c *series.Series, i int) string {
	if c.Kind() == series.Int64 {
		v, _, _ := c.GetInt64(i)
		return strconv.FormatInt(v, 10)
	}
	v, _, _ := c.GetText(i)
	return v
}

func (f *Frame) resolveKey(key string) (int, error) {
	if f.rowKey == nil {
		return 0, dferr.Invalidf("at: frame has no row index (call SetIndex first)")
	}
	pos, ok := f.rowKey.byText[key]
	if !ok {
		return 0, dferr.Invalidf("at: unknown key %q", key)
	}
	return pos, nil
}

// AtInt64 looks up (key, col) and returns the Int64 value and null flag.
func (f *Frame) AtInt64(key, col string) (int64, bool, error) {
	pos, err := f.resolveKey(key)
	if err != nil {
		return 0, false, err
	}
	c, err := f.Column(col)
	if err != nil {
		return 0, false, err
	}
	return c.GetInt64(pos)
}

// AtFloat64 looks up (key, col) and returns the Float64 value and null flag.
func (f *Frame) AtFloat64(key, col string) (float64, bool, error) {
	pos, err := f.resolveKey(key)
	if err != nil {
		return 0, false, err
	}
	c, err := f.Column(col)
	if err != nil {
		return 0, false, err
	}
	return c.GetFloat64(pos)
}

// AtString looks up (key, col) and returns the Text value and null flag.
func (f *Frame) AtString(key, col string) (string, bool, error) {
	pos, err := f.resolveKey(key)
	if err != nil {
		return "", false, err
	}
	c, err := f.Column(col)
	if err != nil {
		return "", false, err
	}
	return c.GetText(pos)
}
