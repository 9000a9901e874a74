// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"math"
	"testing"

	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryFixture(t *testing.T) *Frame {
	t.Helper()
	age := series.NewInt64("age", []int64{10, 20, 30, 0}, []bool{false, false, false, true})
	score := series.NewFloat64("score", []float64{1.5, math.NaN(), 3.5, 4.5}, nil)
	name := series.NewText("name", []string{"alice", "bob", "carol", "dave"}, nil)
	f, err := FromSeries([]*series.Series{age, score, name})
	require.NoError(t, err)
	return f
}

// spec §8 scenario 4 style test: operator precedence and parentheses.
func TestQueryOperatorPrecedence(t *testing.T) {
	f := queryFixture(t)
	// "and" binds tighter than "or": age > 15 or age < 5 and name == "dave"
	// should read as (age > 15) or (age < 5 and name == "dave")
	out, err := f.Query(`age > 15 or age < 5 and name == "dave"`)
	require.NoError(t, err)
	assert.Equal(t, 2, out.NRows(), "rows with age 20 and 30")
}

func TestQueryParenthesesOverridePrecedence(t *testing.T) {
	f := queryFixture(t)
	out, err := f.Query(`(age > 15 or age < 5) and name == "dave"`)
	require.NoError(t, err)
	assert.Equal(t, 0, out.NRows(), "dave has age null, not >15 or <5")
}

func TestQueryNotNegatesInnerExpression(t *testing.T) {
	f := queryFixture(t)
	out, err := f.Query(`not age == 20`)
	require.NoError(t, err)
	for i := 0; i < out.NRows(); i++ {
		col, _ := out.Column("age")
		v, isNull, _ := col.GetInt64(i)
		assert.True(t, isNull || v != 20)
	}
}

func TestQueryNullPredicate(t *testing.T) {
	f := queryFixture(t)
	out, err := f.Query(`age == null`)
	require.NoError(t, err)
	assert.Equal(t, 1, out.NRows())

	out2, err := f.Query(`age != null`)
	require.NoError(t, err)
	assert.Equal(t, 3, out2.NRows())
}

func TestQueryNaNPredicateMatchesStoredNaN(t *testing.T) {
	f := queryFixture(t)
	out, err := f.Query(`score == nan`)
	require.NoError(t, err)
	assert.Equal(t, 1, out.NRows())
}

func TestQueryStringEquality(t *testing.T) {
	f := queryFixture(t)
	out, err := f.Query(`name == "bob"`)
	require.NoError(t, err)
	assert.Equal(t, 1, out.NRows())
}

func TestQueryUnknownColumnErrors(t *testing.T) {
	f := queryFixture(t)
	_, err := f.Query(`nope == 1`)
	assert.Error(t, err)
}

func TestQuerySyntaxErrorIsInvalid(t *testing.T) {
	f := queryFixture(t)
	_, err := f.Query(`age >`)
	assert.Error(t, err)
	assert.True(t, dferr.Is(err, dferr.Invalid))
}

func TestQueryIntLiteralWidensAgainstFloatColumn(t *testing.T) {
	f := queryFixture(t)
	out, err := f.Query(`score > 3`)
	require.NoError(t, err)
	assert.Equal(t, 2, out.NRows(), "3.5 and 4.5 exceed 3; NaN row excluded")
}
