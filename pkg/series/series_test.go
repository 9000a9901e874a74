// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendParsedInt64(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantNull bool
		wantVal  int64
		wantErr  bool
	}{
		{name: "plain", input: "42", wantVal: 42},
		{name: "signed", input: "-7", wantVal: -7},
		{name: "whitespace trimmed", input: "  9 ", wantVal: 9},
		{name: "empty is null", input: "", wantNull: true},
		{name: "whitespace only is null", input: "   ", wantNull: true},
		{name: "non-numeric errors", input: "abc", wantErr: true},
		{name: "float literal errors", input: "1.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("n", Int64, 1)
			err := s.AppendParsed(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			v, isNull, err := s.GetInt64(0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNull, isNull)
			if !tt.wantNull {
				assert.Equal(t, tt.wantVal, v)
			}
		})
	}
}

func TestAppendParsedFloat64(t *testing.T) {
	s := New("f", Float64, 4)
	require.NoError(t, s.AppendParsed("1.5"))
	require.NoError(t, s.AppendParsed(""))
	require.NoError(t, s.AppendParsed("nan"))
	require.NoError(t, s.AppendParsed("NaN"))

	v, isNull, err := s.GetFloat64(0)
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Equal(t, 1.5, v)

	_, isNull, err = s.GetFloat64(1)
	require.NoError(t, err)
	assert.True(t, isNull)

	v, isNull, err = s.GetFloat64(2)
	require.NoError(t, err)
	assert.False(t, isNull, "nan literal is a stored value, not null")
	assert.True(t, math.IsNaN(v))

	v, isNull, err = s.GetFloat64(3)
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.True(t, math.IsNaN(v))
}

func TestAppendParsedText(t *testing.T) {
	s := New("t", Text, 2)
	require.NoError(t, s.AppendParsed("hello world"))
	require.NoError(t, s.AppendParsed(""))

	v, isNull, err := s.GetText(0)
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Equal(t, "hello world", v)

	_, isNull, err = s.GetText(1)
	require.NoError(t, err)
	assert.True(t, isNull, "empty string is the only null trigger for text")
}

func TestAppendCSVFieldQuotedEmptyDistinction(t *testing.T) {
	s := New("t", Text, 2)
	require.NoError(t, s.AppendCSVField("", false))
	require.NoError(t, s.AppendCSVField("", true))

	_, isNull, _ := s.GetText(0)
	assert.True(t, isNull, "unquoted empty field is null")

	v, isNull, _ := s.GetText(1)
	assert.False(t, isNull, "quoted empty field is an empty string, not null")
	assert.Equal(t, "", v)
}

func TestReductionsOnSpecExample(t *testing.T) {
	// [1, 2, null, -5]
	s := NewInt64("x", []int64{1, 2, 0, -5}, []bool{false, false, true, false})

	assert.Equal(t, 3, s.Count())

	sum, err := s.Sum()
	require.NoError(t, err)
	assert.Equal(t, int64(-2), sum.I64)

	mean, err := s.Mean()
	require.NoError(t, err)
	assert.InDelta(t, -2.0/3.0, mean, 1e-9)

	min, err := s.Min()
	require.NoError(t, err)
	assert.Equal(t, int64(-5), min.I64)

	max, err := s.Max()
	require.NoError(t, err)
	assert.Equal(t, int64(2), max.I64)
}

func TestReductionsFailOnAllNull(t *testing.T) {
	s := NewFloat64("x", []float64{0, 0}, []bool{true, true})
	_, err := s.Sum()
	assert.Error(t, err)
	_, err = s.Mean()
	assert.Error(t, err)
	_, err = s.Min()
	assert.Error(t, err)
}

func TestStdRequiresTwoValues(t *testing.T) {
	s := NewFloat64("x", []float64{5}, nil)
	_, err := s.Std()
	assert.Error(t, err)

	s2 := NewFloat64("x", []float64{1, 2, 3, 4}, nil)
	std, err := s2.Std()
	require.NoError(t, err)
	assert.InDelta(t, 1.2909944487358056, std, 1e-9)
}

func TestMedianEvenOdd(t *testing.T) {
	odd := NewFloat64("x", []float64{3, 1, 2}, nil)
	m, err := odd.Median()
	require.NoError(t, err)
	assert.Equal(t, 2.0, m)

	even := NewFloat64("x", []float64{1, 2, 3, 4}, nil)
	m, err = even.Median()
	require.NoError(t, err)
	assert.Equal(t, 2.5, m)
}

func TestCopyIsIndependent(t *testing.T) {
	s := NewText("t", []string{"a", "b"}, nil)
	cp := s.Copy()
	_ = s.AppendParsed("c")
	assert.Equal(t, 2, cp.Len())
	assert.Equal(t, 3, s.Len())
}

func TestTruncateRollsBackPartialAppend(t *testing.T) {
	s := New("n", Int64, 2)
	require.NoError(t, s.AppendParsed("1"))
	require.NoError(t, s.AppendParsed("2"))
	s.Truncate(1)
	assert.Equal(t, 1, s.Len())
	v, _, _ := s.GetInt64(0)
	assert.Equal(t, int64(1), v)
}

func TestEqualComparesNaNAsEqual(t *testing.T) {
	a := NewFloat64("x", []float64{math.NaN(), 1}, nil)
	b := NewFloat64("x", []float64{math.NaN(), 1}, nil)
	assert.True(t, a.Equal(b))
}

func TestSetScalarOverwritesInPlace(t *testing.T) {
	s := NewInt64("x", []int64{1, 2, 3}, []bool{false, true, false})
	require.NoError(t, s.SetScalar(1, Int64Scalar(99)))
	v, isNull, err := s.GetInt64(1)
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Equal(t, int64(99), v)
}
