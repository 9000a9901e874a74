// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"testing"

	"github.com/bitjungle/goframe/pkg/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupbyFixture(t *testing.T) *Frame {
	t.Helper()
	dept := series.NewText("dept", []string{"eng", "sales", "eng", "sales", "eng"}, nil)
	salary := series.NewInt64("salary", []int64{100, 50, 200, 0, 300}, []bool{false, false, false, true, false})
	f, err := FromSeries([]*series.Series{dept, salary})
	require.NoError(t, err)
	return f
}

func TestGroupbyAggFirstAppearanceOrder(t *testing.T) {
	f := groupbyFixture(t)
	out, err := f.GroupbyAgg("dept", []string{"salary"}, []AggOp{Sum})
	require.NoError(t, err)

	deptCol, _ := out.Column("dept")
	v0, _, _ := deptCol.GetText(0)
	v1, _, _ := deptCol.GetText(1)
	assert.Equal(t, "eng", v0, "first-appearance order: eng appears before sales")
	assert.Equal(t, "sales", v1)

	assert.Equal(t, []string{"dept", "salary_sum"}, out.Columns())
}

func TestGroupbyAggSumIgnoresNull(t *testing.T) {
	f := groupbyFixture(t)
	out, err := f.GroupbyAgg("dept", []string{"salary"}, []AggOp{Sum})
	require.NoError(t, err)

	sumCol, _ := out.Column("salary_sum")
	eng, _, _ := sumCol.GetInt64(0)
	sales, _, _ := sumCol.GetInt64(1)
	assert.Equal(t, int64(600), eng, "100+200+300")
	assert.Equal(t, int64(50), sales, "null row excluded from sum")
}

func TestGroupbyAggMeanProducesFloatOutput(t *testing.T) {
	f := groupbyFixture(t)
	out, err := f.GroupbyAgg("dept", []string{"salary"}, []AggOp{Mean})
	require.NoError(t, err)
	meanCol, _ := out.Column("salary_mean")
	assert.Equal(t, series.Float64, meanCol.Kind())
	v, _, _ := meanCol.GetFloat64(0)
	assert.Equal(t, 200.0, v, "(100+200+300)/3")
}

func TestGroupbyAggCountExcludesNullRows(t *testing.T) {
	f := groupbyFixture(t)
	out, err := f.GroupbyAgg("dept", []string{"salary"}, []AggOp{Count})
	require.NoError(t, err)
	countCol, _ := out.Column("salary_count")
	sales, _, _ := countCol.GetInt64(1)
	assert.Equal(t, int64(1), sales, "count counts non-null values only")
}

func TestGroupbyAggRejectsLengthMismatch(t *testing.T) {
	f := groupbyFixture(t)
	_, err := f.GroupbyAgg("dept", []string{"salary", "salary"}, []AggOp{Sum})
	assert.Error(t, err)
}

func TestGroupbyAggNullKeyRowsExcludedFromGroups(t *testing.T) {
	dept := series.NewText("dept", []string{"eng", "", "eng"}, []bool{false, true, false})
	salary := series.NewInt64("salary", []int64{1, 99, 2}, nil)
	f, err := FromSeries([]*series.Series{dept, salary})
	require.NoError(t, err)

	out, err := f.GroupbyAgg("dept", []string{"salary"}, []AggOp{Sum})
	require.NoError(t, err)
	assert.Equal(t, 1, out.NRows(), "only the non-null dept key forms a group")
}
