// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package frame implements the Frame type: an ordered collection of
// uniquely named, equal-length Series, plus the relational algebra
// kernel (sort, join, group-by, pivot), predicate masks, the query
// compiler, statistics and row-oriented helpers built on top of it.
package frame

import (
	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/series"
)

// Frame is an ordered sequence of columns with unique names and a
// common row count. A Frame exclusively owns its Series; every
// operation that returns a new Frame produces independently owned
// columns.
type Frame struct {
	cols   []*series.Series
	byName map[string]int
	nrows  int
	rowKey *rowIndex
}

// rowIndex backs set_index/at_*: a promoted Int64 or Text column
// removed from the data columns and used for O(1) lookup.
type rowIndex struct {
	kind   series.Kind
	byText map[string]int // first-occurrence position per key
}

// New builds an empty frame with the given column names and kinds.
// Duplicate or empty names are INVALID.
func New(names []string, kinds []series.Kind, capacity int) (*Frame, error) {
	if len(names) != len(kinds) {
		return nil, dferr.Invalidf("names and kinds length mismatch: %d vs %d", len(names), len(kinds))
	}
	byName := make(map[string]int, len(names))
	cols := make([]*series.Series, len(names))
	for i, name := range names {
		if name == "" {
			return nil, dferr.Invalidf("column name at position %d is empty", i)
		}
		if _, dup := byName[name]; dup {
			return nil, dferr.Invalidf("duplicate column name %q", name)
		}
		byName[name] = i
		cols[i] = series.New(name, kinds[i], capacity)
	}
	return &Frame{cols: cols, byName: byName, nrows: 0}, nil
}

// FromSeries builds a frame directly from already-populated series, all
// of which must share the same length and have unique names.
func FromSeries(cols []*series.Series) (*Frame, error) {
	byName := make(map[string]int, len(cols))
	nrows := 0
	for i, c := range cols {
		if c.Name() == "" {
			return nil, dferr.Invalidf("column at position %d has empty name", i)
		}
		if _, dup := byName[c.Name()]; dup {
			return nil, dferr.Invalidf("duplicate column name %q", c.Name())
		}
		byName[c.Name()] = i
		if i == 0 {
			nrows = c.Len()
		} else if c.Len() != nrows {
			return nil, dferr.Invalidf("column %q has length %d, expected %d", c.Name(), c.Len(), nrows)
		}
	}
	return &Frame{cols: cols, byName: byName, nrows: nrows}, nil
}

// NRows returns the row count.
func (f *Frame) NRows() int { return f.nrows }

// NCols returns the number of columns.
func (f *Frame) NCols() int { return len(f.cols) }

// Shape returns (nrows, ncols).
func (f *Frame) Shape() (int, int) { return f.nrows, len(f.cols) }

// Size returns nrows*ncols.
func (f *Frame) Size() int { return f.nrows * len(f.cols) }

// Ndim is always 2 for a Frame.
func (f *Frame) Ndim() int { return 2 }

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Name()
	}
	return out
}

// Dtypes returns the column kinds in order.
func (f *Frame) Dtypes() []series.Kind {
	out := make([]series.Kind, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Kind()
	}
	return out
}

// Column returns the series backing a column by name, or INVALID if it
// does not exist. The returned reference is borrowed: it is valid until
// the frame is mutated or freed.
func (f *Frame) Column(name string) (*series.Series, error) {
	i, ok := f.byName[name]
	if !ok {
		return nil, dferr.Invalidf("unknown column %q", name)
	}
	return f.cols[i], nil
}

// HasColumn reports whether name exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.byName[name]
	return ok
}

func (f *Frame) colIndex(name string) (int, error) {
	i, ok := f.byName[name]
	if !ok {
		return 0, dferr.Invalidf("unknown column %q", name)
	}
	return i, nil
}

// Copy returns a deep, independently owned clone.
func (f *Frame) Copy() *Frame {
	cols := make([]*series.Series, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.Copy()
	}
	byName := make(map[string]int, len(f.byName))
	for k, v := range f.byName {
		byName[k] = v
	}
	cp := &Frame{cols: cols, byName: byName, nrows: f.nrows}
	if f.rowKey != nil {
		rk := &rowIndex{kind: f.rowKey.kind, byText: make(map[string]int, len(f.rowKey.byText))}
		for k, v := range f.rowKey.byText {
			rk.byText[k] = v
		}
		cp.rowKey = rk
	}
	return cp
}

// AppendRow parses row (one text cell per column, in column order)
// through each column's parser and appends it. The append is atomic:
// if any cell fails to parse, every column is rolled back to its
// pre-call length and the frame is left unchanged.
func (f *Frame) AppendRow(row []string) error {
	if len(row) != len(f.cols) {
		return dferr.Invalidf("row has %d cells, frame has %d columns", len(row), len(f.cols))
	}
	start := f.nrows
	for i, cell := range row {
		if err := f.cols[i].AppendParsed(cell); err != nil {
			for j := 0; j < i; j++ {
				f.cols[j].Truncate(start)
			}
			if de, ok := err.(*dferr.Error); ok {
				de.Col = i
				de.Row = start
				de.HasCoords = true
				return de
			}
			return err
		}
	}
	f.nrows++
	return nil
}

// CSVField is one decoded CSV cell: its text plus whether it was
// quoted in the source (needed to distinguish an empty quoted text
// field from an empty unquoted one).
type CSVField struct {
	Text   string
	Quoted bool
}

// AppendRowFields is AppendRow's CSV-aware counterpart: it threads the
// quoted-empty distinction through to each column's parser and performs
// the same atomic rollback on a per-cell failure.
func (f *Frame) AppendRowFields(row []CSVField) error {
	if len(row) != len(f.cols) {
		return dferr.Invalidf("row has %d cells, frame has %d columns", len(row), len(f.cols))
	}
	start := f.nrows
	for i, cell := range row {
		if err := f.cols[i].AppendCSVField(cell.Text, cell.Quoted); err != nil {
			for j := 0; j < i; j++ {
				f.cols[j].Truncate(start)
			}
			if de, ok := err.(*dferr.Error); ok {
				de.Col = i
				de.Row = start
				de.HasCoords = true
				return de
			}
			return err
		}
	}
	f.nrows++
	return nil
}

// RenameCols renames columns by old->new mapping. Requires unique old
// names present in the frame and that the resulting name set stays
// unique.
func (f *Frame) RenameCols(oldNames, newNames []string) (*Frame, error) {
	if len(oldNames) != len(newNames) {
		return nil, dferr.Invalidf("rename: old/new name count mismatch")
	}
	seen := make(map[string]bool, len(oldNames))
	for _, n := range oldNames {
		if seen[n] {
			return nil, dferr.Invalidf("rename: duplicate old name %q", n)
		}
		seen[n] = true
		if !f.HasColumn(n) {
			return nil, dferr.Invalidf("rename: unknown column %q", n)
		}
	}
	cp := f.Copy()
	renamed := make(map[string]string, len(oldNames))
	for i, n := range oldNames {
		renamed[n] = newNames[i]
	}
	finalNames := make(map[string]bool, len(cp.cols))
	for _, c := range cp.cols {
		name := c.Name()
		if nn, ok := renamed[name]; ok {
			name = nn
		}
		if finalNames[name] {
			return nil, dferr.Invalidf("rename: resulting name %q is not unique", name)
		}
		finalNames[name] = true
	}
	newByName := make(map[string]int, len(cp.cols))
	for i, c := range cp.cols {
		if nn, ok := renamed[c.Name()]; ok {
			c.Rename(nn)
		}
		newByName[c.Name()] = i
	}
	cp.byName = newByName
	return cp, nil
}

// DropCols removes the named columns. Fails if that would remove every
// column.
func (f *Frame) DropCols(names []string) (*Frame, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if !f.HasColumn(n) {
			return nil, dferr.Invalidf("drop: unknown column %q", n)
		}
		drop[n] = true
	}
	if len(drop) >= len(f.cols) {
		return nil, dferr.Invalidf("drop: cannot remove all columns")
	}
	kept := make([]*series.Series, 0, len(f.cols)-len(drop))
	for _, c := range f.cols {
		if !drop[c.Name()] {
			kept = append(kept, c.Copy())
		}
	}
	return FromSeries(kept)
}

// SelectCols returns a new frame containing only the named columns, in
// the given order. Fails if any name is missing or duplicated.
func (f *Frame) SelectCols(names []string) (*Frame, error) {
	seen := make(map[string]bool, len(names))
	cols := make([]*series.Series, 0, len(names))
	for _, n := range names {
		if seen[n] {
			return nil, dferr.Invalidf("select: duplicate column %q", n)
		}
		seen[n] = true
		c, err := f.Column(n)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c.Copy())
	}
	return FromSeries(cols)
}

// FillNA returns a new frame with nulls replaced per-column by parsing
// values[i] under that column's kind.
func (f *Frame) FillNA(values []string) (*Frame, error) {
	if len(values) != len(f.cols) {
		return nil, dferr.Invalidf("fillna: need %d values, got %d", len(f.cols), len(values))
	}
	cp := f.Copy()
	for i, c := range cp.cols {
		repl := series.New("_", c.Kind(), 1)
		if err := repl.AppendParsed(values[i]); err != nil {
			return nil, err
		}
		fillVal := repl.At(0)
		if fillVal.Null {
			return nil, dferr.Invalidf("fillna: replacement for column %q is itself null", c.Name())
		}
		for row := 0; row < cp.nrows; row++ {
			if c.IsNull(row) {
				_ = c.SetScalar(row, fillVal)
			}
		}
	}
	return cp, nil
}
