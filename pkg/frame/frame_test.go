// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"testing"

	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsDuplicateAndEmptyNames(t *testing.T) {
	_, err := New([]string{"a", "a"}, []series.Kind{series.Int64, series.Int64}, 0)
	assert.Error(t, err)

	_, err = New([]string{"a", ""}, []series.Kind{series.Int64, series.Int64}, 0)
	assert.Error(t, err)

	_, err = New([]string{"a"}, []series.Kind{series.Int64, series.Int64}, 0)
	assert.Error(t, err, "names/kinds length mismatch")
}

func TestFromSeriesRejectsLengthMismatch(t *testing.T) {
	a := series.NewInt64("a", []int64{1, 2}, nil)
	b := series.NewInt64("b", []int64{1, 2, 3}, nil)
	_, err := FromSeries([]*series.Series{a, b})
	assert.Error(t, err)
}

func TestFromSeriesRejectsDuplicateNames(t *testing.T) {
	a := series.NewInt64("a", []int64{1}, nil)
	b := series.NewInt64("a", []int64{2}, nil)
	_, err := FromSeries([]*series.Series{a, b})
	assert.Error(t, err)
}

func newTestFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := New([]string{"id", "score"}, []series.Kind{series.Int64, series.Float64}, 0)
	require.NoError(t, err)
	return f
}

func TestAppendRowAtomicRollbackOnParseFailure(t *testing.T) {
	f := newTestFrame(t)
	require.NoError(t, f.AppendRow([]string{"1", "2.5"}))

	err := f.AppendRow([]string{"not-an-int", "3.5"})
	require.Error(t, err)

	assert.Equal(t, 1, f.NRows(), "failed row must not partially commit")
	idCol, _ := f.Column("id")
	assert.Equal(t, 1, idCol.Len())
	scoreCol, _ := f.Column("score")
	assert.Equal(t, 1, scoreCol.Len())
}

func TestAppendRowRollsBackLaterColumnFailureAcrossEarlierColumns(t *testing.T) {
	f := newTestFrame(t)
	require.NoError(t, f.AppendRow([]string{"1", "2.5"}))

	// first cell parses fine, second cell fails -> first column must roll back too
	err := f.AppendRow([]string{"2", "bogus"})
	require.Error(t, err)

	idCol, _ := f.Column("id")
	assert.Equal(t, 1, idCol.Len())
}

func TestAppendRowRejectsWrongCellCount(t *testing.T) {
	f := newTestFrame(t)
	err := f.AppendRow([]string{"1"})
	assert.Error(t, err)
}

func TestAppendRowErrorCarriesRowColCoordinates(t *testing.T) {
	f := newTestFrame(t)
	require.NoError(t, f.AppendRow([]string{"1", "2.5"}))
	err := f.AppendRow([]string{"2", "not-a-float"})
	require.Error(t, err)
	de, ok := err.(*dferr.Error)
	require.True(t, ok)
	assert.True(t, de.HasCoords)
	assert.Equal(t, 1, de.Row)
	assert.Equal(t, 1, de.Col)
}

func TestRenameColsRejectsUnknownAndCollision(t *testing.T) {
	f := newTestFrame(t)
	require.NoError(t, f.AppendRow([]string{"1", "2.5"}))

	_, err := f.RenameCols([]string{"nope"}, []string{"x"})
	assert.Error(t, err)

	_, err = f.RenameCols([]string{"id"}, []string{"score"})
	assert.Error(t, err, "renaming id to an already-used name collides")

	renamed, err := f.RenameCols([]string{"id"}, []string{"identifier"})
	require.NoError(t, err)
	assert.Equal(t, []string{"identifier", "score"}, renamed.Columns())
	// original frame is untouched
	assert.Equal(t, []string{"id", "score"}, f.Columns())
}

func TestDropColsCannotRemoveAllColumns(t *testing.T) {
	f := newTestFrame(t)
	_, err := f.DropCols([]string{"id", "score"})
	assert.Error(t, err)
}

func TestDropColsRemovesNamedColumn(t *testing.T) {
	f := newTestFrame(t)
	require.NoError(t, f.AppendRow([]string{"1", "2.5"}))
	dropped, err := f.DropCols([]string{"score"})
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, dropped.Columns())
}

func TestSelectColsRejectsDuplicateAndMissing(t *testing.T) {
	f := newTestFrame(t)
	_, err := f.SelectCols([]string{"id", "id"})
	assert.Error(t, err)

	_, err = f.SelectCols([]string{"nope"})
	assert.Error(t, err)

	sel, err := f.SelectCols([]string{"score", "id"})
	require.NoError(t, err)
	assert.Equal(t, []string{"score", "id"}, sel.Columns())
}

func TestFillNAReplacesNullsPerColumn(t *testing.T) {
	f := newTestFrame(t)
	require.NoError(t, f.AppendRow([]string{"1", ""}))
	require.NoError(t, f.AppendRow([]string{"", "3.5"}))

	filled, err := f.FillNA([]string{"-1", "0"})
	require.NoError(t, err)

	idCol, _ := filled.Column("id")
	v, isNull, _ := idCol.GetInt64(1)
	assert.False(t, isNull)
	assert.Equal(t, int64(-1), v)

	scoreCol, _ := filled.Column("score")
	v2, isNull, _ := scoreCol.GetFloat64(0)
	assert.False(t, isNull)
	assert.Equal(t, 0.0, v2)

	// original frame is unaffected
	origScore, _ := f.Column("score")
	_, stillNull, _ := origScore.GetFloat64(0)
	assert.True(t, stillNull)
}

func TestFillNARejectsNullReplacement(t *testing.T) {
	f := newTestFrame(t)
	require.NoError(t, f.AppendRow([]string{"1", ""}))
	_, err := f.FillNA([]string{"1", ""})
	assert.Error(t, err)
}

func TestCopyIsIndependent(t *testing.T) {
	f := newTestFrame(t)
	require.NoError(t, f.AppendRow([]string{"1", "2.5"}))
	cp := f.Copy()
	require.NoError(t, f.AppendRow([]string{"2", "3.5"}))
	assert.Equal(t, 1, cp.NRows())
	assert.Equal(t, 2, f.NRows())
}
