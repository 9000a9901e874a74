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

// PivotTable reshapes frame by grouping (indexCol, columnsCol) and
// aggregating valuesCol with op: distinct index values become rows
// (first-appearance order), distinct columns values become columns
// (first-appearance order); a cell is the aggregate for that pair, or
// null if no rows fall in it. Rows where indexCol or columnsCol is
// null are skipped.
func PivotTable(f *Frame, indexCol, columnsCol, valuesCol string, op AggOp) (*Frame, error) {
	idx, err := f.Column(indexCol)
	if err != nil {
		return nil, err
	}
	cols, err := f.Column(columnsCol)
	if err != nil {
		return nil, err
	}
	vals, err := f.Column(valuesCol)
	if err != nil {
		return nil, err
	}
	if err := validateAggKind(vals.Kind(), op); err != nil {
		return nil, err
	}

	rowOrder := make([]string, 0)
	rowFirst := make(map[string]int)
	colOrder := make([]string, 0)
	colSeen := make(map[string]bool)
	// cellRows[rowKey][colKey] = row indices falling in that cell
	cellRows := make(map[string]map[string][]int)

	for i := 0; i < f.NRows(); i++ {
		if idx.IsNull(i) || cols.IsNull(i) {
			continue
		}
		rk := groupKeyText(idx, i)
		ck := groupKeyText(cols, i)
		if _, seen := rowFirst[rk]; !seen {
			rowFirst[rk] = i
			rowOrder = append(rowOrder, rk)
		}
		if !colSeen[ck] {
			colSeen[ck] = true
			colOrder = append(colOrder, ck)
		}
		if cellRows[rk] == nil {
			cellRows[rk] = make(map[string][]int)
		}
		cellRows[rk][ck] = append(cellRows[rk][ck], i)
	}

	outKind := aggOutputKind(vals.Kind(), op)
	outNames := append([]string{indexCol}, make([]string, len(colOrder))...)
	outKinds := append([]series.Kind{idx.Kind()}, make([]series.Kind, len(colOrder))...)
	for i, ck := range colOrder {
		outNames[i+1] = pivotColumnName(cols, ck, colFirstRow(cellRows, rowOrder, ck))
		outKinds[i+1] = outKind
	}
	if err := checkUniqueNames(outNames); err != nil {
		return nil, err
	}

	out, err := New(outNames, outKinds, len(rowOrder))
	if err != nil {
		return nil, err
	}
	for _, rk := range rowOrder {
		_ = out.cols[0].AppendScalar(idx.At(rowFirst[rk]))
		for ci, ck := range colOrder {
			rows := cellRows[rk][ck]
			var scalar series.Scalar
			if len(rows) == 0 {
				scalar = series.NullScalar(outKind)
			} else {
				scalar, err = aggregate(vals, rows, op, outKind)
				if err != nil {
					return nil, err
				}
			}
			_ = out.cols[ci+1].AppendScalar(scalar)
		}
		out.nrows++
	}
	return out, nil
}

func colFirstRow(cellRows map[string]map[string][]int, rowOrder []string, ck string) int {
	for _, rk := range rowOrder {
		if rows, ok := cellRows[rk][ck]; ok && len(rows) > 0 {
			return rows[0]
		}
	}
	return 0
}

func pivotColumnName(colsSeries *series.Series, ck string, sampleRow int) string {
	return colsSeries.StringAt(sampleRow, ck)
}

func checkUniqueNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return dferr.Invalidf("pivot_table: resulting column name %q is not unique", n)
		}
		seen[n] = true
	}
	return nil
}
