// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"math"
	"testing"

	"github.com/bitjungle/goframe/pkg/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNumericParsesTextColumn(t *testing.T) {
	x := series.NewText("x", []string{"1.5", "", "nan"}, nil)
	f, err := FromSeries([]*series.Series{x})
	require.NoError(t, err)

	out, err := f.ToNumeric("x")
	require.NoError(t, err)
	col, _ := out.Column("x")
	assert.Equal(t, series.Float64, col.Kind())

	v0, _, _ := col.GetFloat64(0)
	assert.Equal(t, 1.5, v0)
	_, isNull1, _ := col.GetFloat64(1)
	assert.True(t, isNull1)
	v2, isNull2, _ := col.GetFloat64(2)
	assert.False(t, isNull2)
	assert.True(t, math.IsNaN(v2))
}

func TestToNumericRejectsNonTextColumn(t *testing.T) {
	x := series.NewInt64("x", []int64{1}, nil)
	f, err := FromSeries([]*series.Series{x})
	require.NoError(t, err)
	_, err = f.ToNumeric("x")
	assert.Error(t, err)
}

func TestToDatetimeFailsOnUnparsableRow(t *testing.T) {
	x := series.NewText("x", []string{"2024-01-15", "2024-01-15 10:30:00", "not-a-date"}, nil)
	f, err := FromSeries([]*series.Series{x})
	require.NoError(t, err)

	_, err = f.ToDatetime("x")
	assert.Error(t, err, "one unparsable row fails the whole column")
}

func TestToDatetimeValidLayoutsSucceed(t *testing.T) {
	x := series.NewText("x", []string{"2024-01-15", "2024-01-15 10:30:00"}, nil)
	f, err := FromSeries([]*series.Series{x})
	require.NoError(t, err)

	out, err := f.ToDatetime("x")
	require.NoError(t, err)
	col, _ := out.Column("x")
	assert.Equal(t, series.Int64, col.Kind())
	v0, _, _ := col.GetInt64(0)
	v1, _, _ := col.GetInt64(1)
	assert.Less(t, v0, v1)
}

func TestAstypeFloatToIntRejectsFractional(t *testing.T) {
	x := series.NewFloat64("x", []float64{2.5}, nil)
	f, err := FromSeries([]*series.Series{x})
	require.NoError(t, err)
	_, err = f.Astype("x", series.Int64)
	assert.Error(t, err)
}

func TestAstypeFloatToIntAcceptsWholeValues(t *testing.T) {
	x := series.NewFloat64("x", []float64{2.0}, nil)
	f, err := FromSeries([]*series.Series{x})
	require.NoError(t, err)
	out, err := f.Astype("x", series.Int64)
	require.NoError(t, err)
	col, _ := out.Column("x")
	v, _, _ := col.GetInt64(0)
	assert.Equal(t, int64(2), v)
}

func TestAstypeIntToText(t *testing.T) {
	x := series.NewInt64("x", []int64{42}, nil)
	f, err := FromSeries([]*series.Series{x})
	require.NoError(t, err)
	out, err := f.Astype("x", series.Text)
	require.NoError(t, err)
	col, _ := out.Column("x")
	v, _, _ := col.GetText(0)
	assert.Equal(t, "42", v)
}

func TestAstypeSameKindIsNoop(t *testing.T) {
	x := series.NewInt64("x", []int64{1}, nil)
	f, err := FromSeries([]*series.Series{x})
	require.NoError(t, err)
	out, err := f.Astype("x", series.Int64)
	require.NoError(t, err)
	assert.Equal(t, 1, out.NRows())
}
