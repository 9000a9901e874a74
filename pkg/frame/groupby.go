// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/series"
)

func formatIntKey(v int64) string     { return strconv.FormatInt(v, 10) }
func formatFloatKey(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// AggOp is a per-column group-by/pivot aggregator.
type AggOp int

const (
	Sum AggOp = iota
	Mean
	Min
	Max
	Count
)

func (op AggOp) String() string {
	switch op {
	case Sum:
		return "sum"
	case Mean:
		return "mean"
	case Min:
		return "min"
	case Max:
		return "max"
	default:
		return "count"
	}
}

// GroupbyAgg computes aggregations per distinct (non-null) key, in
// first-appearance order. Output columns are the key column followed
// by one column per (valueCol, op) named "<value_col>_<op>".
func (f *Frame) GroupbyAgg(keyCol string, valueCols []string, ops []AggOp) (*Frame, error) {
	if len(valueCols) != len(ops) {
		return nil, dferr.Invalidf("groupby: value_cols/ops length mismatch")
	}
	key, err := f.Column(keyCol)
	if err != nil {
		return nil, err
	}
	valCols := make([]*series.Series, len(valueCols))
	for i, n := range valueCols {
		c, err := f.Column(n)
		if err != nil {
			return nil, err
		}
		if err := validateAggKind(c.Kind(), ops[i]); err != nil {
			return nil, err
		}
		valCols[i] = c
	}

	order, groups := groupRowsByKey(key)

	outNames := append([]string{keyCol}, make([]string, len(valueCols))...)
	outKinds := append([]series.Kind{key.Kind()}, make([]series.Kind, len(valueCols))...)
	for i := range valueCols {
		outNames[i+1] = valueCols[i] + "_" + ops[i].String()
		outKinds[i+1] = aggOutputKind(valCols[i].Kind(), ops[i])
	}

	out, err := New(outNames, outKinds, len(order))
	if err != nil {
		return nil, err
	}
	for _, k := range order {
		rows := groups[k]
		_ = out.cols[0].AppendScalar(key.At(rows[0]))
		for vi, vc := range valCols {
			scalar, err := aggregate(vc, rows, ops[vi], outKinds[vi+1])
			if err != nil {
				return nil, err
			}
			_ = out.cols[vi+1].AppendScalar(scalar)
		}
		out.nrows++
	}
	return out, nil
}

// groupRowsByKey partitions row indices by the key column's non-null
// value, preserving first-appearance group order. Unlike join matching,
// a stored NaN is a valid (self-equal) group key here, not an excluded
// value — only null rows are excluded.
func groupRowsByKey(key *series.Series) ([]string, map[string][]int) {
	order := make([]string, 0)
	groups := make(map[string][]int)
	for i := 0; i < key.Len(); i++ {
		if key.IsNull(i) {
			continue
		}
		k := groupKeyText(key, i)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}
	return order, groups
}

func groupKeyText(col *series.Series, row int) string {
	switch col.Kind() {
	case series.Int64:
		v, _, _ := col.GetInt64(row)
		return "i:" + formatIntKey(v)
	case series.Float64:
		v, _, _ := col.GetFloat64(row)
		if math.IsNaN(v) {
			return "f:nan"
		}
		return "f:" + formatFloatKey(v)
	default:
		v, _, _ := col.GetText(row)
		return "s:" + v
	}
}

func validateAggKind(kind series.Kind, op AggOp) error {
	if kind == series.Text && (op == Sum || op == Mean) {
		return dferr.Invalidf("%s is not defined for text columns", op)
	}
	return nil
}

func aggOutputKind(in series.Kind, op AggOp) series.Kind {
	switch op {
	case Sum:
		if in == series.Int64 {
			return series.Int64
		}
		return series.Float64
	case Mean:
		return series.Float64
	case Min, Max:
		return in
	default: // Count
		return series.Int64
	}
}

func aggregate(col *series.Series, rows []int, op AggOp, outKind series.Kind) (series.Scalar, error) {
	switch op {
	case Count:
		n := 0
		for _, r := range rows {
			if !col.IsNull(r) {
				n++
			}
		}
		return series.Int64Scalar(int64(n)), nil
	case Sum:
		return aggSum(col, rows, outKind)
	case Mean:
		return aggMean(col, rows)
	case Min:
		return aggExtreme(col, rows, true)
	default:
		return aggExtreme(col, rows, false)
	}
}

func aggSum(col *series.Series, rows []int, outKind series.Kind) (series.Scalar, error) {
	if outKind == series.Int64 {
		var total int64
		any := false
		for _, r := range rows {
			if col.IsNull(r) {
				continue
			}
			v, _, _ := col.GetInt64(r)
			total += v
			any = true
		}
		if !any {
			return series.NullScalar(series.Int64), nil
		}
		return series.Int64Scalar(total), nil
	}
	var total float64
	any := false
	for _, r := range rows {
		if col.IsNull(r) {
			continue
		}
		v, _, _ := col.GetFloat64(r)
		total += v
		any = true
	}
	if !any {
		return series.NullScalar(series.Float64), nil
	}
	return series.Float64Scalar(total), nil
}

func aggMean(col *series.Series, rows []int) (series.Scalar, error) {
	vals := make([]float64, 0, len(rows))
	for _, r := range rows {
		if col.IsNull(r) {
			continue
		}
		switch col.Kind() {
		case series.Int64:
			v, _, _ := col.GetInt64(r)
			vals = append(vals, float64(v))
		case series.Float64:
			v, _, _ := col.GetFloat64(r)
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return series.NullScalar(series.Float64), nil
	}
	return series.Float64Scalar(stat.Mean(vals, nil)), nil
}

func aggExtreme(col *series.Series, rows []int, wantMin bool) (series.Scalar, error) {
	switch col.Kind() {
	case series.Int64:
		best := int64(0)
		set := false
		for _, r := range rows {
			if col.IsNull(r) {
				continue
			}
			v, _, _ := col.GetInt64(r)
			if !set || (wantMin && v < best) || (!wantMin && v > best) {
				best, set = v, true
			}
		}
		if !set {
			return series.NullScalar(series.Int64), nil
		}
		return series.Int64Scalar(best), nil
	case series.Float64:
		best := 0.0
		set := false
		for _, r := range rows {
			if col.IsNull(r) {
				continue
			}
			v, _, _ := col.GetFloat64(r)
			if math.IsNaN(v) {
				continue
			}
			if !set || (wantMin && v < best) || (!wantMin && v > best) {
				best, set = v, true
			}
		}
		if !set {
			return series.NullScalar(series.Float64), nil
		}
		return series.Float64Scalar(best), nil
	default:
		best := ""
		set := false
		for _, r := range rows {
			if col.IsNull(r) {
				continue
			}
			v, _, _ := col.GetText(r)
			if !set || (wantMin && v < best) || (!wantMin && v > best) {
				best, set = v, true
			}
		}
		if !set {
			return series.NullScalar(series.Text), nil
		}
		return series.TextScalar(best), nil
	}
}
