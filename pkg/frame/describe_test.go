// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"bytes"
	"testing"

	"github.com/bitjungle/goframe/pkg/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoWritesRowColumnAndNonNullCounts(t *testing.T) {
	x := series.NewInt64("x", []int64{1, 0, 3}, []bool{false, true, false})
	f, err := FromSeries([]*series.Series{x})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Info(&buf))
	out := buf.String()
	assert.Contains(t, out, "Rows: 3")
	assert.Contains(t, out, "Columns: 1")
	assert.Contains(t, out, "non-null: 2")
}

func TestDescribeReturnsFourStatRows(t *testing.T) {
	x := series.NewFloat64("x", []float64{1, 2, 3}, nil)
	f, err := FromSeries([]*series.Series{x})
	require.NoError(t, err)

	d, err := f.Describe()
	require.NoError(t, err)
	assert.Equal(t, 4, d.NRows())

	statCol, _ := d.Column("stat")
	labels := make([]string, 4)
	for i := 0; i < 4; i++ {
		v, _, _ := statCol.GetText(i)
		labels[i] = v
	}
	assert.Equal(t, []string{"count", "mean", "min", "max"}, labels)

	xCol, _ := d.Column("x")
	mean, _, _ := xCol.GetFloat64(1)
	assert.Equal(t, 2.0, mean)
}
