// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"math"

	"github.com/bitjungle/goframe/internal/queryparse"
	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/series"
)

// Query filters rows using the mini boolean expression language:
//
//	expr    := or
//	or      := and ("or"  and)*
//	and     := unary ("and" unary)*
//	unary   := "not" unary | primary
//	primary := "(" expr ")" | atom
//	atom    := column OP literal
//	literal := number | "quoted string" | null | nan
//
// Operators are ==, !=, <, <=, >, >= and keywords are case-insensitive.
// An integer literal compared against a Float64 column widens to float64.
// `col == null` matches null cells; `col == nan` matches stored NaN
// float64 cells (NaN is never null and never matches via ==).
func (f *Frame) Query(expr string) (*Frame, error) {
	ast, err := queryparse.Parse(expr)
	if err != nil {
		return nil, dferr.Invalidf("query: %v", err)
	}
	mask := make([]byte, f.nrows)
	for i := 0; i < f.nrows; i++ {
		ok, err := f.evalNode(ast, i)
		if err != nil {
			return nil, err
		}
		mask[i] = boolByte(ok)
	}
	return f.FilterMask(mask)
}

func (f *Frame) evalNode(n queryparse.Node, row int) (bool, error) {
	switch t := n.(type) {
	case *queryparse.Or:
		for _, part := range t.Parts {
			ok, err := f.evalNode(part, row)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case *queryparse.And:
		for _, part := range t.Parts {
			ok, err := f.evalNode(part, row)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case *queryparse.Not:
		ok, err := f.evalNode(t.Inner, row)
		if err != nil {
			return false, err
		}
		return !ok, nil
	case *queryparse.Compare:
		return f.evalCompare(t, row)
	default:
		return false, dferr.Invalidf("query: unknown node type")
	}
}

func (f *Frame) evalCompare(c *queryparse.Compare, row int) (bool, error) {
	col, err := f.Column(c.Column)
	if err != nil {
		return false, dferr.Invalidf("query: unknown column %q", c.Column)
	}

	if c.Literal.Kind == queryparse.LitNull {
		if c.Op != queryparse.EQ && c.Op != queryparse.NE {
			return false, dferr.Invalidf("query: null only supports == and !=")
		}
		isNull := col.IsNull(row)
		if c.Op == queryparse.NE {
			return !isNull, nil
		}
		return isNull, nil
	}

	if c.Literal.Kind == queryparse.LitNaN {
		if col.Kind() != series.Float64 {
			return false, dferr.Invalidf("query: nan comparison requires a float64 column, got %q", c.Column)
		}
		if c.Op != queryparse.EQ && c.Op != queryparse.NE {
			return false, dferr.Invalidf("query: nan only supports == and !=")
		}
		isNaN := false
		if !col.IsNull(row) {
			v, _, _ := col.GetFloat64(row)
			isNaN = math.IsNaN(v)
		}
		if c.Op == queryparse.NE {
			return !isNaN, nil
		}
		return isNaN, nil
	}

	op := toCompareOp(c.Op)
	cell := col.At(row)

	switch col.Kind() {
	case series.Int64:
		if c.Literal.Kind != queryparse.LitNumber {
			return false, dferr.Invalidf("query: column %q is int64, literal is not numeric", c.Column)
		}
		var operand int64
		if c.Literal.IsInt {
			operand = c.Literal.IntVal
		} else {
			return false, dferr.Invalidf("query: column %q is int64, literal %v is not an integer", c.Column, c.Literal.FloatVal)
		}
		return compareMatch(cell, op, series.Int64Scalar(operand))
	case series.Float64:
		if c.Literal.Kind != queryparse.LitNumber {
			return false, dferr.Invalidf("query: column %q is float64, literal is not numeric", c.Column)
		}
		operand := c.Literal.FloatVal
		if c.Literal.IsInt {
			operand = float64(c.Literal.IntVal)
		}
		return compareMatch(cell, op, series.Float64Scalar(operand))
	default:
		if c.Literal.Kind != queryparse.LitString {
			return false, dferr.Invalidf("query: column %q is text, literal is not a string", c.Column)
		}
		return compareMatch(cell, op, series.TextScalar(c.Literal.Str))
	}
}

func toCompareOp(op queryparse.Op) CompareOp {
	switch op {
	case queryparse.EQ:
		return EQ
	case queryparse.NE:
		return NE
	case queryparse.LT:
		return LT
	case queryparse.LE:
		return LE
	case queryparse.GT:
		return GT
	default:
		return GE
	}
}
