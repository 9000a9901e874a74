// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"sort"
	"strconv"

	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/series"
)

// JoinHow selects the relational join mode.
type JoinHow int

const (
	Inner JoinHow = iota
	Left
	Right
	Outer
)

// JoinStrategy selects the matching algorithm. All strategies are
// required to agree on output rows and order; AUTO merely picks one
// based on input size.
type JoinStrategy int

const (
	Auto JoinStrategy = iota
	Nested
	Hash
	Sorted
)

// autoHashThreshold is the row count per side at or above which AUTO
// switches from NESTED to HASH.
const autoHashThreshold = 128

// JoinOptions controls naming of colliding non-key columns.
type JoinOptions struct {
	// LeftSuffix/RightSuffix name colliding non-key columns. If both are
	// empty, LeftSuffix defaults to "" (left wins unsuffixed) and
	// RightSuffix defaults to "_right".
	LeftSuffix  string
	RightSuffix string
}

func defaultJoinOptions() JoinOptions {
	return JoinOptions{LeftSuffix: "", RightSuffix: "_right"}
}

// Join joins left and right on a single key column pair.
func Join(left, right *Frame, leftKey, rightKey string, how JoinHow, strategy JoinStrategy) (*Frame, error) {
	return JoinMulti(left, right, []string{leftKey}, []string{rightKey}, how, strategy, defaultJoinOptions())
}

// JoinMulti joins on a composite key made of parallel key-name arrays,
// with explicit suffixing options for colliding non-key column names.
func JoinMulti(left, right *Frame, leftKeys, rightKeys []string, how JoinHow, strategy JoinStrategy, opts JoinOptions) (*Frame, error) {
	if len(leftKeys) == 0 || len(leftKeys) != len(rightKeys) {
		return nil, dferr.Invalidf("join: left/right key count mismatch")
	}
	if opts.LeftSuffix == "" && opts.RightSuffix == "" {
		opts = defaultJoinOptions()
	}
	leftCols := make([]*series.Series, len(leftKeys))
	rightCols := make([]*series.Series, len(rightKeys))
	for i := range leftKeys {
		lc, err := left.Column(leftKeys[i])
		if err != nil {
			return nil, err
		}
		rc, err := right.Column(rightKeys[i])
		if err != nil {
			return nil, err
		}
		if lc.Kind() != rc.Kind() {
			return nil, dferr.Invalidf("join: key %q/%q kind mismatch", leftKeys[i], rightKeys[i])
		}
		leftCols[i] = lc
		rightCols[i] = rc
	}

	eff := strategy
	if eff == Auto {
		if left.NRows() >= autoHashThreshold && right.NRows() >= autoHashThreshold {
			eff = Hash
		} else {
			eff = Nested
		}
	}

	var pairs []matchPair
	var err error
	switch eff {
	case Nested:
		pairs = nestedMatch(leftCols, rightCols)
	case Hash:
		pairs = hashMatch(leftCols, rightCols)
	case Sorted:
		pairs, err = sortedMatch(leftCols, rightCols)
		if err != nil {
			return nil, err
		}
	default:
		return nil, dferr.Invalidf("join: unknown strategy")
	}

	return assembleJoin(left, right, leftKeys, rightKeys, pairs, how, opts)
}

type matchPair struct {
	left, right int
}

func keyMatches(leftCols, rightCols []*series.Series, i, j int) bool {
	for k := range leftCols {
		a := leftCols[k].At(i)
		b := rightCols[k].At(j)
		if a.Null || b.Null {
			return false
		}
		if a.Kind != b.Kind {
			return false
		}
		switch a.Kind {
		case series.Int64:
			if a.I64 != b.I64 {
				return false
			}
		case series.Float64:
			if isNaNFloat(a.F64) || isNaNFloat(b.F64) || a.F64 != b.F64 {
				return false
			}
		default:
			if a.Str != b.Str {
				return false
			}
		}
	}
	return true
}

func isNaNFloat(f float64) bool { return f != f }

// nestedMatch scans O(L*R), emitting pairs in left-then-right order.
func nestedMatch(leftCols, rightCols []*series.Series) []matchPair {
	n := leftCols[0].Len()
	m := rightCols[0].Len()
	var pairs []matchPair
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if keyMatches(leftCols, rightCols, i, j) {
				pairs = append(pairs, matchPair{i, j})
			}
		}
	}
	return pairs
}

// compositeKey builds a delimited string key for hashing/sorting;
// returns ok=false if any component is null or NaN (never matches).
func compositeKey(cols []*series.Series, row int) (string, bool) {
	var key string
	for k, c := range cols {
		v := c.At(row)
		if v.Null {
			return "", false
		}
		var part string
		switch v.Kind {
		case series.Int64:
			part = "i:" + strconv.FormatInt(v.I64, 10)
		case series.Float64:
			if isNaNFloat(v.F64) {
				return "", false
			}
			part = "f:" + strconv.FormatFloat(v.F64, 'g', -1, 64)
		default:
			part = "s:" + v.Str
		}
		if k > 0 {
			key += "\x1f"
		}
		key += part
	}
	return key, true
}

// hashMatch builds a bucket list (insertion-order preserving) keyed by
// composite key over the right side, then probes with the left side in
// left-row order, emitting matches in right-row (insertion) order per
// left row — identical output to nestedMatch by construction.
func hashMatch(leftCols, rightCols []*series.Series) []matchPair {
	m := rightCols[0].Len()
	buckets := make(map[string][]int, m)
	for j := 0; j < m; j++ {
		key, ok := compositeKey(rightCols, j)
		if !ok {
			continue
		}
		buckets[key] = append(buckets[key], j)
	}
	n := leftCols[0].Len()
	var pairs []matchPair
	for i := 0; i < n; i++ {
		key, ok := compositeKey(leftCols, i)
		if !ok {
			continue
		}
		for _, j := range buckets[key] {
			pairs = append(pairs, matchPair{i, j})
		}
	}
	return pairs
}

// sortedMatch sorts both sides by key (stably, preserving original
// position as tiebreak) and merge-joins; equal-key runs are
// cross-joined in original sub-order, so the resulting pair set
// (though discovered by merge) is re-sorted back to
// left-row-major/right-row-minor order to match the other strategies.
func sortedMatch(leftCols, rightCols []*series.Series) ([]matchPair, error) {
	n := leftCols[0].Len()
	m := rightCols[0].Len()

	type keyed struct {
		pos int
		key string
		ok  bool
	}
	lk := make([]keyed, n)
	for i := 0; i < n; i++ {
		k, ok := compositeKey(leftCols, i)
		lk[i] = keyed{pos: i, key: k, ok: ok}
	}
	rk := make([]keyed, m)
	for j := 0; j < m; j++ {
		k, ok := compositeKey(rightCols, j)
		rk[j] = keyed{pos: j, key: k, ok: ok}
	}
	sort.SliceStable(lk, func(a, b int) bool { return lk[a].key < lk[b].key })
	sort.SliceStable(rk, func(a, b int) bool { return rk[a].key < rk[b].key })

	var pairs []matchPair
	i, j := 0, 0
	for i < n && !lk[i].ok {
		i++
	}
	for j < m && !rk[j].ok {
		j++
	}
	for i < n && j < m {
		if lk[i].key < rk[j].key {
			i++
			continue
		}
		if lk[i].key > rk[j].key {
			j++
			continue
		}
		// equal-key run [i,iEnd) x [j,jEnd)
		iEnd := i
		for iEnd < n && lk[iEnd].ok && lk[iEnd].key == lk[i].key {
			iEnd++
		}
		jEnd := j
		for jEnd < m && rk[jEnd].ok && rk[jEnd].key == rk[j].key {
			jEnd++
		}
		for a := i; a < iEnd; a++ {
			for b := j; b < jEnd; b++ {
				pairs = append(pairs, matchPair{lk[a].pos, rk[b].pos})
			}
		}
		i, j = iEnd, jEnd
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		if pairs[a].left != pairs[b].left {
			return pairs[a].left < pairs[b].left
		}
		return pairs[a].right < pairs[b].right
	})
	return pairs, nil
}

// assembleJoin builds the output frame from a canonical set of matched
// pairs: left columns first, then right columns excluding right-side
// join keys (suffixed on name collision), honoring how's unmatched-row
// rules and the spec's row-order requirements.
func assembleJoin(left, right *Frame, leftKeys, rightKeys []string, pairs []matchPair, how JoinHow, opts JoinOptions) (*Frame, error) {
	n := left.NRows()
	m := right.NRows()

	byLeft := make(map[int][]int, n) // left row -> matching right rows, in right-row order
	matchedLeft := make(map[int]bool, n)
	matchedRight := make(map[int]bool, m)
	for _, p := range pairs {
		byLeft[p.left] = append(byLeft[p.left], p.right)
		matchedLeft[p.left] = true
		matchedRight[p.right] = true
	}
	for _, rows := range byLeft {
		sort.Ints(rows)
	}

	rightKeySet := make(map[string]bool, len(rightKeys))
	for _, k := range rightKeys {
		rightKeySet[k] = true
	}

	type outRow struct {
		leftRow  int // -1 if unmatched-right synthetic row
		rightRow int // -1 if unmatched-left
	}
	var rows []outRow

	switch how {
	case Inner:
		for i := 0; i < n; i++ {
			for _, j := range byLeft[i] {
				rows = append(rows, outRow{i, j})
			}
		}
	case Left:
		for i := 0; i < n; i++ {
			if js, ok := byLeft[i]; ok {
				for _, j := range js {
					rows = append(rows, outRow{i, j})
				}
			} else {
				rows = append(rows, outRow{i, -1})
			}
		}
	case Right:
		// right-row order: for each right row, find its matches (left rows)
		byRight := make(map[int][]int, m)
		for _, p := range pairs {
			byRight[p.right] = append(byRight[p.right], p.left)
		}
		for j := 0; j < m; j++ {
			if ls, ok := byRight[j]; ok {
				sort.Ints(ls)
				for _, i := range ls {
					rows = append(rows, outRow{i, j})
				}
			} else {
				rows = append(rows, outRow{-1, j})
			}
		}
	case Outer:
		for i := 0; i < n; i++ {
			if js, ok := byLeft[i]; ok {
				for _, j := range js {
					rows = append(rows, outRow{i, j})
				}
			} else {
				rows = append(rows, outRow{i, -1})
			}
		}
		for j := 0; j < m; j++ {
			if !matchedRight[j] {
				rows = append(rows, outRow{-1, j})
			}
		}
	default:
		return nil, dferr.Invalidf("join: unknown how")
	}

	rightNonKeyCols := make([]*series.Series, 0, right.NCols())
	for _, name := range right.Columns() {
		if !rightKeySet[name] {
			c, _ := right.Column(name)
			rightNonKeyCols = append(rightNonKeyCols, c)
		}
	}

	leftNames := left.Columns()
	leftNameSet := make(map[string]bool, len(leftNames))
	for _, n := range leftNames {
		leftNameSet[n] = true
	}

	outNames := make([]string, 0, len(leftNames)+len(rightNonKeyCols))
	outNames = append(outNames, leftNames...)
	for _, c := range rightNonKeyCols {
		name := c.Name()
		if leftNameSet[name] {
			if opts.LeftSuffix != "" {
				// rename the already-added left column on collision
				for i, on := range outNames {
					if on == name {
						outNames[i] = name + opts.LeftSuffix
					}
				}
			}
			name = name + opts.RightSuffix
		}
		outNames = append(outNames, name)
	}

	outCols := make([]*series.Series, len(outNames))
	leftCols := make([]*series.Series, len(leftNames))
	for i, name := range leftNames {
		leftCols[i], _ = left.Column(name)
	}
	for ci, lc := range leftCols {
		outCols[ci] = series.New(outNames[ci], lc.Kind(), len(rows))
	}
	base := len(leftCols)
	for ci, rc := range rightNonKeyCols {
		outCols[base+ci] = series.New(outNames[base+ci], rc.Kind(), len(rows))
	}

	leftKeyIdx := make([]int, len(leftKeys))
	for i, k := range leftKeys {
		for ci, name := range leftNames {
			if name == k {
				leftKeyIdx[i] = ci
			}
		}
	}

	for _, r := range rows {
		for ci, lc := range leftCols {
			var v series.Scalar
			if r.leftRow >= 0 {
				v = lc.At(r.leftRow)
			} else {
				v = series.NullScalar(lc.Kind())
				for ki, kidx := range leftKeyIdx {
					if kidx == ci && r.rightRow >= 0 {
						rk, _ := right.Column(rightKeys[ki])
						v = rk.At(r.rightRow)
					}
				}
			}
			_ = outCols[ci].AppendScalar(v)
		}
		for ci, rc := range rightNonKeyCols {
			var v series.Scalar
			if r.rightRow >= 0 {
				v = rc.At(r.rightRow)
			} else {
				v = series.NullScalar(rc.Kind())
			}
			_ = outCols[base+ci].AppendScalar(v)
		}
	}

	return FromSeries(outCols)
}
