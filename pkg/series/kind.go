// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package series implements the Series (column) type: a named, typed,
// null-tracking vector of one of three primitive kinds.
package series

import "fmt"

// Kind is the element type of a column.
type Kind int

const (
	// Int64 is a signed 64-bit integer column.
	Int64 Kind = iota
	// Float64 is a 64-bit floating point column.
	Float64
	// Text is a variable-length string column.
	Text
)

// String renders the kind the way dtypes/describe output expects it.
func (k Kind) String() string {
	switch k {
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Scalar is a tagged union over the three column kinds plus a null flag,
// used by Series.At, Frame.Apply/Transform and the comparison masks.
type Scalar struct {
	Kind Kind
	I64  int64
	F64  float64
	Str  string
	Null bool
}

// NullScalar builds a null scalar of the given kind.
func NullScalar(k Kind) Scalar {
	return Scalar{Kind: k, Null: true}
}

// Int64Scalar builds a non-null Int64 scalar.
func Int64Scalar(v int64) Scalar {
	return Scalar{Kind: Int64, I64: v}
}

// Float64Scalar builds a non-null Float64 scalar.
func Float64Scalar(v float64) Scalar {
	return Scalar{Kind: Float64, F64: v}
}

// TextScalar builds a non-null Text scalar.
func TextScalar(v string) Scalar {
	return Scalar{Kind: Text, Str: v}
}

// String renders the scalar for debugging and CSV/text output.
func (s Scalar) String() string {
	if s.Null {
		return ""
	}
	switch s.Kind {
	case Int64:
		return fmt.Sprintf("%d", s.I64)
	case Float64:
		return formatFloat(s.F64)
	case Text:
		return s.Str
	default:
		return ""
	}
}
