// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"math"
	"sort"

	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/series"
)

// SortValues stably sorts by a single column. Nulls sort to the end
// regardless of direction.
func (f *Frame) SortValues(name string, ascending bool) (*Frame, error) {
	return f.SortValuesMulti([]string{name}, []bool{ascending})
}

// SortValuesMulti stably sorts by multiple keys in priority order. Ties
// on every key preserve original row order (stability).
func (f *Frame) SortValuesMulti(names []string, ascendings []bool) (*Frame, error) {
	if len(names) == 0 {
		return nil, dferr.Invalidf("sort: empty key list")
	}
	if len(names) != len(ascendings) {
		return nil, dferr.Invalidf("sort: names/ascending length mismatch")
	}
	cols := make([]*series.Series, len(names))
	for i, n := range names {
		c, err := f.Column(n)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	perm := make([]int, f.nrows)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		i, j := perm[a], perm[b]
		for k, col := range cols {
			c := compareCell(col, i, j, ascendings[k])
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	return f.subsetRows(perm)
}

// compareCell returns -1/0/1 comparing rows i and j of col, honoring
// the null/NaN ordering rules: nulls always sort last; NaN sorts
// greater than any finite value but less than null.
func compareCell(col *series.Series, i, j int, ascending bool) int {
	ni, nj := col.IsNull(i), col.IsNull(j)
	if ni && nj {
		return 0
	}
	if ni {
		return 1
	}
	if nj {
		return -1
	}
	cmp := compareNonNull(col, i, j)
	if !ascending {
		cmp = -cmp
	}
	return cmp
}

func compareNonNull(col *series.Series, i, j int) int {
	switch col.Kind() {
	case series.Int64:
		a, _, _ := col.GetInt64(i)
		b, _, _ := col.GetInt64(j)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	case series.Float64:
		a, _, _ := col.GetFloat64(i)
		b, _, _ := col.GetFloat64(j)
		aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
		switch {
		case aNaN && bNaN:
			return 0
		case aNaN:
			return 1
		case bNaN:
			return -1
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	default:
		a, _, _ := col.GetText(i)
		b, _, _ := col.GetText(j)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
}
