// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package queryparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleComparison(t *testing.T) {
	n, err := Parse(`age >= 18`)
	require.NoError(t, err)
	cmp, ok := n.(*Compare)
	require.True(t, ok)
	assert.Equal(t, "age", cmp.Column)
	assert.Equal(t, GE, cmp.Op)
	assert.Equal(t, LitNumber, cmp.Literal.Kind)
	assert.True(t, cmp.Literal.IsInt)
	assert.Equal(t, int64(18), cmp.Literal.IntVal)
}

func TestParseAndBindsTighterThanOr(t *testing.T) {
	n, err := Parse(`a == 1 or b == 2 and c == 3`)
	require.NoError(t, err)
	or, ok := n.(*Or)
	require.True(t, ok)
	require.Len(t, or.Parts, 2)
	_, isCompare := or.Parts[0].(*Compare)
	assert.True(t, isCompare)
	and, ok := or.Parts[1].(*And)
	assert.True(t, ok)
	assert.Len(t, and.Parts, 2)
}

func TestParseParenthesesOverrideGrouping(t *testing.T) {
	n, err := Parse(`(a == 1 or b == 2) and c == 3`)
	require.NoError(t, err)
	and, ok := n.(*And)
	require.True(t, ok)
	require.Len(t, and.Parts, 2)
	_, isOr := and.Parts[0].(*Or)
	assert.True(t, isOr)
}

func TestParseNot(t *testing.T) {
	n, err := Parse(`not a == 1`)
	require.NoError(t, err)
	not, ok := n.(*Not)
	require.True(t, ok)
	_, isCompare := not.Inner.(*Compare)
	assert.True(t, isCompare)
}

func TestParseStringLiteralWithEscapedQuote(t *testing.T) {
	n, err := Parse(`name == "say \"hi\""`)
	require.NoError(t, err)
	cmp := n.(*Compare)
	assert.Equal(t, `say "hi"`, cmp.Literal.Str)
}

func TestParseNullAndNaNLiterals(t *testing.T) {
	n, err := Parse(`x == null`)
	require.NoError(t, err)
	assert.Equal(t, LitNull, n.(*Compare).Literal.Kind)

	n2, err := Parse(`x == NaN`)
	require.NoError(t, err)
	assert.Equal(t, LitNaN, n2.(*Compare).Literal.Kind)
}

func TestParseKeywordsAreCaseInsensitive(t *testing.T) {
	n, err := Parse(`a == 1 AND b == 2`)
	require.NoError(t, err)
	_, ok := n.(*And)
	assert.True(t, ok)
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	_, err := Parse(`a == 1 )`)
	assert.Error(t, err)
}

func TestParseRejectsUnterminatedString(t *testing.T) {
	_, err := Parse(`a == "unterminated`)
	assert.Error(t, err)
}

func TestParseRejectsEmptyExpression(t *testing.T) {
	_, err := Parse(``)
	assert.Error(t, err)
}

func TestParseNegativeNumberLiteral(t *testing.T) {
	n, err := Parse(`balance < -5`)
	require.NoError(t, err)
	cmp := n.(*Compare)
	assert.True(t, cmp.Literal.IsInt)
	assert.Equal(t, int64(-5), cmp.Literal.IntVal)
}
