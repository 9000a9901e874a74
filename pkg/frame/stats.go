// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/bitjungle/goframe/internal/prng"
	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/series"
)

func (f *Frame) numericColumns() []string {
	var out []string
	for _, name := range f.Columns() {
		c, _ := f.Column(name)
		if c.Kind() == series.Int64 || c.Kind() == series.Float64 {
			out = append(out, name)
		}
	}
	return out
}

func colAsFloat(c *series.Series, i int) (float64, bool) {
	if c.IsNull(i) {
		return 0, false
	}
	switch c.Kind() {
	case series.Int64:
		v, _, _ := c.GetInt64(i)
		return float64(v), true
	default:
		v, _, _ := c.GetFloat64(i)
		return v, true
	}
}

// pairwiseVectors returns the (x, y) values for rows where neither
// column is null, for use by corr/cov.
func pairwiseVectors(a, b *series.Series) ([]float64, []float64) {
	var xs, ys []float64
	n := a.Len()
	for i := 0; i < n; i++ {
		x, okx := colAsFloat(a, i)
		y, oky := colAsFloat(b, i)
		if !okx || !oky {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}

// Corr returns the pairwise sample correlation matrix over all numeric
// columns, as a frame whose first column "column" holds row labels.
func (f *Frame) Corr() (*Frame, error) {
	return f.pairwiseMatrix(func(xs, ys []float64) float64 {
		return stat.Correlation(xs, ys, nil)
	})
}

// Cov returns the pairwise sample covariance matrix over all numeric
// columns, as a frame whose first column "column" holds row labels.
func (f *Frame) Cov() (*Frame, error) {
	return f.pairwiseMatrix(func(xs, ys []float64) float64 {
		return stat.Covariance(xs, ys, nil)
	})
}

// pairwiseMatrix assembles the (symmetric) pairwise statistic over every
// numeric column pair into a gonum mat.SymDense, the same matrix type the
// teacher builds its 2x2 covariance matrix into before eigendecomposing
// it, then reads the matrix back out into a labeled Frame.
func (f *Frame) pairwiseMatrix(fn func(xs, ys []float64) float64) (*Frame, error) {
	names := f.numericColumns()
	if len(names) == 0 {
		return nil, dferr.Invalidf("no numeric columns")
	}
	cols := make([]*series.Series, len(names))
	for i, n := range names {
		cols[i], _ = f.Column(n)
	}

	n := len(names)
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			xs, ys := pairwiseVectors(cols[i], cols[j])
			v := math.NaN()
			if len(xs) >= 2 {
				v = fn(xs, ys)
			}
			m.SetSym(i, j, v)
		}
	}

	outNames := append([]string{"column"}, names...)
	outKinds := append([]series.Kind{series.Text}, repeatKind(series.Float64, n)...)
	out, err := New(outNames, outKinds, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		_ = out.cols[0].AppendScalar(series.TextScalar(names[i]))
		for j := 0; j < n; j++ {
			_ = out.cols[j+1].AppendScalar(series.Float64Scalar(m.At(i, j)))
		}
		out.nrows++
	}
	return out, nil
}

func repeatKind(k series.Kind, n int) []series.Kind {
	out := make([]series.Kind, n)
	for i := range out {
		out[i] = k
	}
	return out
}

// Rank returns a new Float64 series of 1-based average ranks; nulls
// stay null and are excluded from the ranking.
func (f *Frame) Rank(name string) (*series.Series, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	type entry struct {
		pos int
		val float64
	}
	var entries []entry
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			continue
		}
		v, ok := colAsFloat(c, i)
		if !ok {
			continue
		}
		entries = append(entries, entry{i, v})
	}
	sort.SliceStable(entries, func(a, b int) bool { return entries[a].val < entries[b].val })

	ranks := make([]float64, c.Len())
	nulls := make([]bool, c.Len())
	for i := 0; i < c.Len(); i++ {
		nulls[i] = true
	}
	i := 0
	for i < len(entries) {
		j := i
		for j < len(entries) && entries[j].val == entries[i].val {
			j++
		}
		avgRank := float64(i+1+j) / 2.0
		for k := i; k < j; k++ {
			ranks[entries[k].pos] = avgRank
			nulls[entries[k].pos] = false
		}
		i = j
	}
	return series.NewFloat64(name+"_rank", ranks, nulls), nil
}

// Diff returns the first-difference series: row 0 is null; any position
// whose current or previous cell is null produces null.
func (f *Frame) Diff(name string) (*series.Series, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind() == series.Text {
		return nil, dferr.Invalidf("diff: column %q is not numeric", name)
	}
	n := c.Len()
	vals := make([]float64, n)
	nulls := make([]bool, n)
	nulls[0] = true
	for i := 1; i < n; i++ {
		cur, okCur := colAsFloat(c, i)
		prev, okPrev := colAsFloat(c, i-1)
		if !okCur || !okPrev {
			nulls[i] = true
			continue
		}
		vals[i] = cur - prev
	}
	return series.NewFloat64(name+"_diff", vals, nulls), nil
}

// NLargest returns the k rows with the largest non-null values of name,
// ties broken by original order, sorted descending.
func (f *Frame) NLargest(name string, k int) (*Frame, error) {
	return f.nExtreme(name, k, false)
}

// NSmallest returns the k rows with the smallest non-null values of
// name, ties broken by original order, sorted ascending.
func (f *Frame) NSmallest(name string, k int) (*Frame, error) {
	return f.nExtreme(name, k, true)
}

func (f *Frame) nExtreme(name string, k int, smallest bool) (*Frame, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind() == series.Text {
		return nil, dferr.Invalidf("nlargest/nsmallest: column %q is not numeric", name)
	}
	type entry struct {
		pos int
		val float64
	}
	var entries []entry
	for i := 0; i < c.Len(); i++ {
		v, ok := colAsFloat(c, i)
		if !ok {
			continue
		}
		entries = append(entries, entry{i, v})
	}
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].val == entries[b].val {
			return entries[a].pos < entries[b].pos
		}
		if smallest {
			return entries[a].val < entries[b].val
		}
		return entries[a].val > entries[b].val
	})
	if k > len(entries) {
		k = len(entries)
	}
	positions := make([]int, k)
	for i := 0; i < k; i++ {
		positions[i] = entries[i].pos
	}
	return f.subsetRows(positions)
}

// Sample draws k rows using a deterministic seeded PRNG.
func (f *Frame) Sample(k int, withReplacement bool, seed uint64) (*Frame, error) {
	if !withReplacement && k > f.nrows {
		return nil, dferr.Invalidf("sample: k=%d exceeds nrows=%d without replacement", k, f.nrows)
	}
	rng := prng.NewSplitMix64(seed)
	positions := make([]int, k)
	if withReplacement {
		for i := 0; i < k; i++ {
			positions[i] = int(rng.Next() % uint64(f.nrows))
		}
	} else {
		pool := make([]int, f.nrows)
		for i := range pool {
			pool[i] = i
		}
		for i := 0; i < k; i++ {
			j := i + int(rng.Next()%uint64(len(pool)-i))
			pool[i], pool[j] = pool[j], pool[i]
			positions[i] = pool[i]
		}
	}
	return f.subsetRows(positions)
}

// Unique returns the distinct values of name in first-appearance order
// (as a same-kind series); nulls form a single bucket, represented once.
func (f *Frame) Unique(name string) (*series.Series, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	out := series.New(name, c.Kind(), 0)
	seen := make(map[string]bool)
	sawNull := false
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			if !sawNull {
				_ = out.AppendScalar(series.NullScalar(c.Kind()))
				sawNull = true
			}
			continue
		}
		k := groupKeyText(c, i)
		if seen[k] {
			continue
		}
		seen[k] = true
		_ = out.AppendScalar(c.At(i))
	}
	return out, nil
}

// NUnique returns the number of distinct values (nulls counted once if present).
func (f *Frame) NUnique(name string) (int, error) {
	u, err := f.Unique(name)
	if err != nil {
		return 0, err
	}
	return u.Len(), nil
}

// ValueCounts returns a two-column frame ("value","count") in
// first-appearance order of distinct values of name.
func (f *Frame) ValueCounts(name string) (*Frame, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	const nullKey = "\x00null"
	order := make([]string, 0)
	counts := make(map[string]int64)
	firstRow := make(map[string]int)
	nullCount := int64(0)
	sawNull := false
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			if !sawNull {
				order = append(order, nullKey)
				sawNull = true
			}
			nullCount++
			continue
		}
		k := groupKeyText(c, i)
		if _, seen := firstRow[k]; !seen {
			firstRow[k] = i
			order = append(order, k)
		}
		counts[k]++
	}
	out, err := New([]string{"value", "count"}, []series.Kind{c.Kind(), series.Int64}, len(order))
	if err != nil {
		return nil, err
	}
	for _, k := range order {
		if k == nullKey {
			_ = out.cols[0].AppendScalar(series.NullScalar(c.Kind()))
			_ = out.cols[1].AppendScalar(series.Int64Scalar(nullCount))
		} else {
			_ = out.cols[0].AppendScalar(c.At(firstRow[k]))
			_ = out.cols[1].AppendScalar(series.Int64Scalar(counts[k]))
		}
		out.nrows++
	}
	return out, nil
}

// KeepMode selects which occurrence(s) survive in Duplicated.
type KeepMode int

const (
	KeepFirst KeepMode = iota
	KeepLast
	KeepNone
)

// Duplicated returns a mask marking duplicate rows of column name
// according to keep.
func (f *Frame) Duplicated(name string, keep KeepMode) ([]byte, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	positions := make(map[string][]int)
	order := make([]string, 0)
	for i := 0; i < c.Len(); i++ {
		var k string
		if c.IsNull(i) {
			k = "\x00null"
		} else {
			k = groupKeyText(c, i)
		}
		if _, seen := positions[k]; !seen {
			order = append(order, k)
		}
		positions[k] = append(positions[k], i)
	}
	mask := make([]byte, c.Len())
	for _, k := range order {
		rows := positions[k]
		switch keep {
		case KeepFirst:
			for _, r := range rows[1:] {
				mask[r] = 1
			}
		case KeepLast:
			for _, r := range rows[:len(rows)-1] {
				mask[r] = 1
			}
		default: // KeepNone
			if len(rows) > 1 {
				for _, r := range rows {
					mask[r] = 1
				}
			}
		}
	}
	return mask, nil
}
