// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/series"
)

// RowFunc is invoked once per row with that row's cells in column
// order. It returns the computed scalar plus a success flag; returning
// false aborts the whole operation with INVALID.
type RowFunc func(row []series.Scalar) (series.Scalar, bool)

// CellFunc is invoked once per cell of a single column, used by
// Transform.
type CellFunc func(cell series.Scalar) (series.Scalar, bool)

// Apply invokes fn once per row over every column and collects the
// results into a single-column frame named outName with kind outKind.
func (f *Frame) Apply(outName string, outKind series.Kind, fn RowFunc) (*Frame, error) {
	out := series.New(outName, outKind, f.nrows)
	row := make([]series.Scalar, len(f.cols))
	for i := 0; i < f.nrows; i++ {
		for ci, c := range f.cols {
			row[ci] = c.At(i)
		}
		v, ok := fn(row)
		if !ok {
			return nil, dferr.Invalidf("apply: callback failed at row %d", i)
		}
		if err := out.AppendScalar(v); err != nil {
			return nil, err
		}
	}
	return FromSeries([]*series.Series{out})
}

// Transform replaces column name in a cloned frame by invoking fn once
// per cell.
func (f *Frame) Transform(name string, fn CellFunc) (*Frame, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	cp := f.Copy()
	replaced := series.New(name, c.Kind(), c.Len())
	for i := 0; i < c.Len(); i++ {
		v, ok := fn(c.At(i))
		if !ok {
			return nil, dferr.Invalidf("transform: callback failed at row %d of column %q", i, name)
		}
		if err := replaced.AppendScalar(v); err != nil {
			return nil, err
		}
	}
	idx, _ := cp.colIndex(name)
	*cp.cols[idx] = *replaced
	return cp, nil
}

// IterRows invokes fn once per row, in row order, passing the row
// index and its cells. A false return aborts iteration with INVALID.
func (f *Frame) IterRows(fn func(rowIdx int, row []series.Scalar) bool) error {
	row := make([]series.Scalar, len(f.cols))
	for i := 0; i < f.nrows; i++ {
		for ci, c := range f.cols {
			row[ci] = c.At(i)
		}
		if !fn(i, row) {
			return dferr.Invalidf("iterrows: callback failed at row %d", i)
		}
	}
	return nil
}

// IterItems invokes fn once per column, in column order, passing the
// column index, name and the backing series. A false return aborts
// iteration with INVALID.
func (f *Frame) IterItems(fn func(colIdx int, name string, col *series.Series) bool) error {
	for i, c := range f.cols {
		if !fn(i, c.Name(), c) {
			return dferr.Invalidf("iteritems: callback failed at column %q", c.Name())
		}
	}
	return nil
}
