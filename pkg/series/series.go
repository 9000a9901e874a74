// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package series

import (
	"github.com/bitjungle/goframe/pkg/dferr"
)

// Series is a single named, typed column with a null bitmap. A Series
// owns its value storage and string bytes exclusively; callers never
// share backing arrays between two live Series.
type Series struct {
	name  string
	kind  Kind
	i64   []int64
	f64   []float64
	str   []string
	nulls []bool
}

// New creates an empty series of the given kind with a name and initial
// capacity hint.
func New(name string, kind Kind, capacity int) *Series {
	s := &Series{name: name, kind: kind}
	switch kind {
	case Int64:
		s.i64 = make([]int64, 0, capacity)
	case Float64:
		s.f64 = make([]float64, 0, capacity)
	case Text:
		s.str = make([]string, 0, capacity)
	}
	s.nulls = make([]bool, 0, capacity)
	return s
}

// NewInt64 builds a Series from raw int64 values and a parallel null mask.
// nulls may be nil, meaning no values are null.
func NewInt64(name string, vals []int64, nulls []bool) *Series {
	s := &Series{name: name, kind: Int64, i64: append([]int64(nil), vals...)}
	s.nulls = normalizeNulls(nulls, len(vals))
	return s
}

// NewFloat64 builds a Series from raw float64 values and a parallel null mask.
func NewFloat64(name string, vals []float64, nulls []bool) *Series {
	s := &Series{name: name, kind: Float64, f64: append([]float64(nil), vals...)}
	s.nulls = normalizeNulls(nulls, len(vals))
	return s
}

// NewText builds a Series from raw string values and a parallel null mask.
func NewText(name string, vals []string, nulls []bool) *Series {
	s := &Series{name: name, kind: Text, str: append([]string(nil), vals...)}
	s.nulls = normalizeNulls(nulls, len(vals))
	return s
}

func normalizeNulls(nulls []bool, n int) []bool {
	out := make([]bool, n)
	copy(out, nulls)
	return out
}

// Name returns the column name.
func (s *Series) Name() string { return s.name }

// Kind returns the column's element kind.
func (s *Series) Kind() Kind { return s.kind }

// Len returns the number of rows (n in the spec's invariant).
func (s *Series) Len() int { return len(s.nulls) }

// Rename changes the column's display name in place.
func (s *Series) Rename(name string) { s.name = name }

// IsNull reports whether row i is null.
func (s *Series) IsNull(i int) bool { return s.nulls[i] }

// Copy returns a deep, independently owned clone.
func (s *Series) Copy() *Series {
	cp := &Series{name: s.name, kind: s.kind}
	cp.nulls = append([]bool(nil), s.nulls...)
	switch s.kind {
	case Int64:
		cp.i64 = append([]int64(nil), s.i64...)
	case Float64:
		cp.f64 = append([]float64(nil), s.f64...)
	case Text:
		cp.str = append([]string(nil), s.str...)
	}
	return cp
}

// GetInt64 returns the row's value and null flag. INVALID if the series
// is not Int64.
func (s *Series) GetInt64(i int) (int64, bool, error) {
	if s.kind != Int64 {
		return 0, false, dferr.Invalidf("column %q is not int64", s.name)
	}
	return s.i64[i], s.nulls[i], nil
}

// GetFloat64 returns the row's value and null flag. INVALID if the
// series is not Float64.
func (s *Series) GetFloat64(i int) (float64, bool, error) {
	if s.kind != Float64 {
		return 0, false, dferr.Invalidf("column %q is not float64", s.name)
	}
	return s.f64[i], s.nulls[i], nil
}

// GetText returns the row's value and null flag. INVALID if the series
// is not Text. A null cell's string is never dereferenced beyond "".
func (s *Series) GetText(i int) (string, bool, error) {
	if s.kind != Text {
		return "", false, dferr.Invalidf("column %q is not text", s.name)
	}
	return s.str[i], s.nulls[i], nil
}

// At returns row i as a Scalar, regardless of kind.
func (s *Series) At(i int) Scalar {
	if s.nulls[i] {
		return NullScalar(s.kind)
	}
	switch s.kind {
	case Int64:
		return Int64Scalar(s.i64[i])
	case Float64:
		return Float64Scalar(s.f64[i])
	default:
		return TextScalar(s.str[i])
	}
}

// AppendParsed parses text under the column's kind and appends the
// result (value + null flag). It is the single per-cell step that
// Frame.AppendRow composes into an atomic, whole-row operation.
func (s *Series) AppendParsed(text string) error {
	switch s.kind {
	case Int64:
		v, isNull, err := parseInt64(text)
		if err != nil {
			return dferr.Wrap(dferr.Parse, err, "cannot parse %q as int64", text)
		}
		s.i64 = append(s.i64, v)
		s.nulls = append(s.nulls, isNull)
	case Float64:
		v, isNull, err := parseFloat64(text)
		if err != nil {
			return dferr.Wrap(dferr.Parse, err, "cannot parse %q as float64", text)
		}
		s.f64 = append(s.f64, v)
		s.nulls = append(s.nulls, isNull)
	case Text:
		v, isNull := parseText(text)
		s.str = append(s.str, v)
		s.nulls = append(s.nulls, isNull)
	}
	return nil
}

// AppendCSVField appends a CSV-decoded field, honoring the reader's
// quoted-empty distinction: a quoted empty field ("") on a Text column
// is a non-null empty string, while an unquoted empty field is null on
// every kind (as is a quoted empty field on a numeric column, where the
// distinction is moot).
func (s *Series) AppendCSVField(text string, quoted bool) error {
	if s.kind == Text && quoted && text == "" {
		s.str = append(s.str, "")
		s.nulls = append(s.nulls, false)
		return nil
	}
	return s.AppendParsed(text)
}

// AppendScalar appends an already-typed scalar (used by astype,
// to_datetime, and other internal producers that build columns value-by-value
// instead of from CSV text).
func (s *Series) AppendScalar(v Scalar) error {
	if v.Kind != s.kind {
		return dferr.Invalidf("scalar kind %v does not match column %q kind %v", v.Kind, s.name, s.kind)
	}
	switch s.kind {
	case Int64:
		s.i64 = append(s.i64, v.I64)
	case Float64:
		s.f64 = append(s.f64, v.F64)
	case Text:
		s.str = append(s.str, v.Str)
	}
	s.nulls = append(s.nulls, v.Null)
	return nil
}

// SetScalar overwrites row i in place with v. INVALID if v's kind does
// not match the column's.
func (s *Series) SetScalar(i int, v Scalar) error {
	if v.Kind != s.kind {
		return dferr.Invalidf("scalar kind %v does not match column %q kind %v", v.Kind, s.name, s.kind)
	}
	switch s.kind {
	case Int64:
		s.i64[i] = v.I64
	case Float64:
		s.f64[i] = v.F64
	case Text:
		s.str[i] = v.Str
	}
	s.nulls[i] = v.Null
	return nil
}

// Truncate shrinks the series back to n rows, used to roll back a
// partially appended row on parse failure.
func (s *Series) Truncate(n int) {
	switch s.kind {
	case Int64:
		s.i64 = s.i64[:n]
	case Float64:
		s.f64 = s.f64[:n]
	case Text:
		s.str = s.str[:n]
	}
	s.nulls = s.nulls[:n]
}

// StringAt renders row i as text, using nullText for null cells. Used by
// the CSV writer and Frame.String.
func (s *Series) StringAt(i int, nullText string) string {
	if s.nulls[i] {
		return nullText
	}
	switch s.kind {
	case Int64:
		return Int64Scalar(s.i64[i]).String()
	case Float64:
		return formatFloat(s.f64[i])
	default:
		return s.str[i]
	}
}

// Subset returns a new Series containing only the rows at the given
// positions, in order (duplicates and arbitrary order allowed).
func (s *Series) Subset(positions []int) *Series {
	cp := &Series{name: s.name, kind: s.kind}
	cp.nulls = make([]bool, len(positions))
	switch s.kind {
	case Int64:
		cp.i64 = make([]int64, len(positions))
		for i, p := range positions {
			cp.i64[i] = s.i64[p]
			cp.nulls[i] = s.nulls[p]
		}
	case Float64:
		cp.f64 = make([]float64, len(positions))
		for i, p := range positions {
			cp.f64[i] = s.f64[p]
			cp.nulls[i] = s.nulls[p]
		}
	case Text:
		cp.str = make([]string, len(positions))
		for i, p := range positions {
			cp.str[i] = s.str[p]
			cp.nulls[i] = s.nulls[p]
		}
	}
	return cp
}

// Equal reports deep equality: same kind, length, values and null bits.
// Float NaN compares equal to NaN here (bit-for-bit data comparison,
// not the query language's `==` predicate).
func (s *Series) Equal(o *Series) bool {
	if s.kind != o.kind || s.Len() != o.Len() || s.name != o.name {
		return false
	}
	for i := range s.nulls {
		if s.nulls[i] != o.nulls[i] {
			return false
		}
		if s.nulls[i] {
			continue
		}
		switch s.kind {
		case Int64:
			if s.i64[i] != o.i64[i] {
				return false
			}
		case Float64:
			a, b := s.f64[i], o.f64[i]
			if a != b && !(isNaN(a) && isNaN(b)) {
				return false
			}
		case Text:
			if s.str[i] != o.str[i] {
				return false
			}
		}
	}
	return true
}

func isNaN(f float64) bool { return f != f }
