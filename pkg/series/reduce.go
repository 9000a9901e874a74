// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package series

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/bitjungle/goframe/pkg/dferr"
)

// nonNullFloats collects the non-null cells as float64, treating Int64
// cells as exact integers. NaN cells in a Float64 column count as
// non-null (NaN is a value, not an absence).
func (s *Series) nonNullFloats() []float64 {
	out := make([]float64, 0, s.Len())
	switch s.kind {
	case Int64:
		for i, v := range s.i64 {
			if !s.nulls[i] {
				out = append(out, float64(v))
			}
		}
	case Float64:
		for i, v := range s.f64 {
			if !s.nulls[i] {
				out = append(out, v)
			}
		}
	}
	return out
}

// Count returns the number of non-null cells.
func (s *Series) Count() int {
	n := 0
	for _, isNull := range s.nulls {
		if !isNull {
			n++
		}
	}
	return n
}

// Sum sums the non-null cells. Int64 columns sum as int64; Float64
// columns sum as float64, with NaN propagating arithmetically.
func (s *Series) Sum() (Scalar, error) {
	if s.kind == Text {
		return Scalar{}, dferr.Invalidf("sum is not defined for text column %q", s.name)
	}
	if s.Count() == 0 {
		return Scalar{}, dferr.Invalidf("no non-null values in column %q", s.name)
	}
	switch s.kind {
	case Int64:
		var total int64
		for i, v := range s.i64 {
			if !s.nulls[i] {
				total += v
			}
		}
		return Int64Scalar(total), nil
	default:
		var total float64
		for i, v := range s.f64 {
			if !s.nulls[i] {
				total += v
			}
		}
		return Float64Scalar(total), nil
	}
}

// Mean returns the arithmetic mean of non-null cells as a Float64 scalar.
func (s *Series) Mean() (float64, error) {
	if s.kind == Text {
		return 0, dferr.Invalidf("mean is not defined for text column %q", s.name)
	}
	vals := s.nonNullFloats()
	if len(vals) == 0 {
		return 0, dferr.Invalidf("no non-null values in column %q", s.name)
	}
	return stat.Mean(vals, nil), nil
}

// Min returns the minimum non-null value. For Text, lexicographic min.
func (s *Series) Min() (Scalar, error) {
	return s.extreme(true)
}

// Max returns the maximum non-null value. For Text, lexicographic max.
func (s *Series) Max() (Scalar, error) {
	return s.extreme(false)
}

func (s *Series) extreme(wantMin bool) (Scalar, error) {
	if s.Count() == 0 {
		return Scalar{}, dferr.Invalidf("no non-null values in column %q", s.name)
	}
	switch s.kind {
	case Int64:
		best := int64(0)
		set := false
		for i, v := range s.i64 {
			if s.nulls[i] {
				continue
			}
			if !set || (wantMin && v < best) || (!wantMin && v > best) {
				best, set = v, true
			}
		}
		return Int64Scalar(best), nil
	case Float64:
		best := 0.0
		set := false
		for i, v := range s.f64 {
			if s.nulls[i] {
				continue
			}
			if !set || (wantMin && v < best) || (!wantMin && v > best) {
				best, set = v, true
			}
		}
		return Float64Scalar(best), nil
	default:
		best := ""
		set := false
		for i, v := range s.str {
			if s.nulls[i] {
				continue
			}
			if !set || (wantMin && v < best) || (!wantMin && v > best) {
				best, set = v, true
			}
		}
		return TextScalar(best), nil
	}
}

// Median sorts non-null values and averages the two middle ones on an
// even count.
func (s *Series) Median() (float64, error) {
	vals := s.nonNullFloats()
	if s.kind == Text || len(vals) == 0 {
		return 0, dferr.Invalidf("no non-null values in column %q", s.name)
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}

// Std returns the sample standard deviation (divisor count-1).
func (s *Series) Std() (float64, error) {
	vals := s.nonNullFloats()
	if s.kind == Text {
		return 0, dferr.Invalidf("std is not defined for text column %q", s.name)
	}
	if len(vals) < 2 {
		return 0, dferr.Invalidf("std requires at least 2 non-null values in column %q", s.name)
	}
	return stat.StdDev(vals, nil), nil
}
