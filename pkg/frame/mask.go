// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"math"

	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/series"
)

// CompareOp is a typed comparison operator for mask builders and the
// query compiler.
type CompareOp int

const (
	EQ CompareOp = iota
	NE
	LT
	LE
	GT
	GE
)

// MaskInt64 fills out[i] with 1 where column name compares true against
// operand, 0 otherwise. INVALID on kind mismatch or short buffer.
func (f *Frame) MaskInt64(name string, op CompareOp, operand int64, out []byte) error {
	c, err := f.Column(name)
	if err != nil {
		return err
	}
	if c.Kind() != series.Int64 {
		return dferr.Invalidf("mask_int64: column %q is not int64", name)
	}
	if len(out) < f.nrows {
		return dferr.Invalidf("mask_int64: out buffer too short")
	}
	for i := 0; i < f.nrows; i++ {
		match, err := compareMatch(c.At(i), op, series.Int64Scalar(operand))
		if err != nil {
			return err
		}
		out[i] = boolByte(match)
	}
	return nil
}

// MaskFloat64 fills out[i] with 1 where column name compares true
// against operand, 0 otherwise. NaN cells never match except via the
// query language's explicit `== nan` predicate.
func (f *Frame) MaskFloat64(name string, op CompareOp, operand float64, out []byte) error {
	c, err := f.Column(name)
	if err != nil {
		return err
	}
	if c.Kind() != series.Float64 {
		return dferr.Invalidf("mask_float64: column %q is not float64", name)
	}
	if len(out) < f.nrows {
		return dferr.Invalidf("mask_float64: out buffer too short")
	}
	for i := 0; i < f.nrows; i++ {
		match, err := compareMatch(c.At(i), op, series.Float64Scalar(operand))
		if err != nil {
			return err
		}
		out[i] = boolByte(match)
	}
	return nil
}

// MaskString fills out[i] with 1 where column name compares true
// against operand, 0 otherwise. INVALID on kind mismatch or short
// buffer.
func (f *Frame) MaskString(name string, op CompareOp, operand string, out []byte) error {
	c, err := f.Column(name)
	if err != nil {
		return err
	}
	if c.Kind() != series.Text {
		return dferr.Invalidf("mask_string: column %q is not text", name)
	}
	if len(out) < f.nrows {
		return dferr.Invalidf("mask_string: out buffer too short")
	}
	for i := 0; i < f.nrows; i++ {
		match, err := compareMatch(c.At(i), op, series.TextScalar(operand))
		if err != nil {
			return err
		}
		out[i] = boolByte(match)
	}
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// compareMatch evaluates a single typed comparison. A null cell never
// satisfies any comparison (callers handle the explicit `== null`
// predicate separately, before reaching here). A null operand is a
// caller error (strings in particular have no implicit null operand
// through this path).
func compareMatch(cell series.Scalar, op CompareOp, operand series.Scalar) (bool, error) {
	if operand.Null {
		return false, dferr.Invalidf("compare: operand must not be null")
	}
	if cell.Kind != operand.Kind {
		return false, dferr.Invalidf("compare: kind mismatch")
	}
	if cell.Null {
		return false, nil
	}
	switch cell.Kind {
	case series.Int64:
		return applyOp(op, cmpInt64(cell.I64, operand.I64)), nil
	case series.Float64:
		if math.IsNaN(cell.F64) || math.IsNaN(operand.F64) {
			return false, nil
		}
		return applyOp(op, cmpFloat64(cell.F64, operand.F64)), nil
	default:
		return applyOp(op, cmpString(cell.Str, operand.Str)), nil
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func applyOp(op CompareOp, cmp int) bool {
	switch op {
	case EQ:
		return cmp == 0
	case NE:
		return cmp != 0
	case LT:
		return cmp < 0
	case LE:
		return cmp <= 0
	case GT:
		return cmp > 0
	case GE:
		return cmp >= 0
	default:
		return false
	}
}

// maskIsNull returns a mask that is 1 where column name is null.
func (f *Frame) maskIsNull(name string) ([]byte, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]byte, f.nrows)
	for i := 0; i < f.nrows; i++ {
		out[i] = boolByte(c.IsNull(i))
	}
	return out, nil
}

// maskIsNaN returns a mask that is 1 where a float64 column holds a
// stored NaN (not null).
func (f *Frame) maskIsNaN(name string) ([]byte, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind() != series.Float64 {
		return nil, dferr.Invalidf("column %q is not float64, cannot compare to nan", name)
	}
	out := make([]byte, f.nrows)
	for i := 0; i < f.nrows; i++ {
		if c.IsNull(i) {
			continue
		}
		v, _, _ := c.GetFloat64(i)
		out[i] = boolByte(math.IsNaN(v))
	}
	return out, nil
}
