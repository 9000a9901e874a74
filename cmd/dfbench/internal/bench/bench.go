// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package bench builds synthetic left/right frames, runs the join
// kernel under each requested strategy, times each run, and verifies
// that every strategy produced the same output frame.
package bench

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bitjungle/goframe/internal/prng"
	"github.com/bitjungle/goframe/pkg/frame"
	"github.com/bitjungle/goframe/pkg/series"
)

// ParseRows validates the positional row-count argument.
func ParseRows(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("rows must be a positive integer, got %q", s)
	}
	return n, nil
}

// ParseHow maps a --join flag value to frame.JoinHow.
func ParseHow(s string) (frame.JoinHow, error) {
	switch s {
	case "inner":
		return frame.Inner, nil
	case "left":
		return frame.Left, nil
	case "right":
		return frame.Right, nil
	case "outer":
		return frame.Outer, nil
	default:
		return 0, fmt.Errorf("unknown join mode %q (want inner, left, right, or outer)", s)
	}
}

// ParseStrategies maps a --strategy flag value to the set of
// strategies to exercise.
func ParseStrategies(s string) ([]frame.JoinStrategy, error) {
	switch s {
	case "auto":
		return []frame.JoinStrategy{frame.Auto}, nil
	case "nested":
		return []frame.JoinStrategy{frame.Nested}, nil
	case "hash":
		return []frame.JoinStrategy{frame.Hash}, nil
	case "sorted":
		return []frame.JoinStrategy{frame.Sorted}, nil
	case "all":
		return []frame.JoinStrategy{frame.Nested, frame.Hash, frame.Sorted}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want auto, nested, hash, sorted, or all)", s)
	}
}

// Result holds one strategy's timing and row count.
type Result struct {
	Strategy string
	Elapsed  time.Duration
	Rows     int
}

// Report is the full run's output.
type Report struct {
	Rows      int
	MatchRate float64
	Results   []Result
	Agree     bool
}

// Write renders the report as plain text.
func (r Report) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "rows=%d match_rate=%.2f\n", r.Rows, r.MatchRate); err != nil {
		return err
	}
	for _, res := range r.Results {
		if _, err := fmt.Fprintf(w, "  %-8s rows_out=%-8d elapsed=%s\n", res.Strategy, res.Rows, res.Elapsed); err != nil {
			return err
		}
	}
	agreement := "agree"
	if !r.Agree {
		agreement = "DISAGREE"
	}
	_, err := fmt.Fprintf(w, "strategies %s\n", agreement)
	return err
}

func strategyName(s frame.JoinStrategy) string {
	switch s {
	case frame.Auto:
		return "auto"
	case frame.Nested:
		return "nested"
	case frame.Hash:
		return "hash"
	default:
		return "sorted"
	}
}

// Run builds synthetic left/right frames of the given size, with
// approximately matchRate of left keys finding a right-side match, and
// joins them under every requested strategy, verifying agreement.
func Run(rows int, matchRate float64, how frame.JoinHow, strategies []frame.JoinStrategy) (Report, error) {
	left, right := synthesize(rows, matchRate)

	report := Report{Rows: rows, MatchRate: matchRate, Agree: true}
	var first *frame.Frame
	for _, strat := range strategies {
		start := time.Now()
		out, err := frame.Join(left, right, "id", "id", how, strat)
		elapsed := time.Since(start)
		if err != nil {
			return Report{}, err
		}
		report.Results = append(report.Results, Result{Strategy: strategyName(strat), Elapsed: elapsed, Rows: out.NRows()})
		if first == nil {
			first = out
		} else if ok, _ := first.Equals(out); !ok {
			report.Agree = false
		}
	}
	return report, nil
}

// synthesize builds two frames of n rows each: left has ids
// 0..n-1 and a float64 "value" column; right has ids drawn so that
// approximately matchRate of left's ids find a partner, plus a text
// "label" column. Deterministic given n and matchRate (seeded PRNG).
func synthesize(n int, matchRate float64) (*frame.Frame, *frame.Frame) {
	rng := prng.NewSplitMix64(uint64(n)*1000003 + uint64(matchRate*1e6))

	leftIDs := make([]int64, n)
	leftVals := make([]float64, n)
	for i := 0; i < n; i++ {
		leftIDs[i] = int64(i)
		leftVals[i] = float64(rng.Next()%1000) / 10.0
	}
	leftFrame, _ := frame.FromSeries([]*series.Series{
		series.NewInt64("id", leftIDs, nil),
		series.NewFloat64("value", leftVals, nil),
	})

	rightIDs := make([]int64, n)
	rightLabels := make([]string, n)
	threshold := uint64(matchRate * float64(^uint64(0)>>1))
	for i := 0; i < n; i++ {
		if uint64(rng.Next()>>1) < threshold {
			rightIDs[i] = int64(i)
		} else {
			rightIDs[i] = int64(n + i)
		}
		rightLabels[i] = "r" + strconv.Itoa(i)
	}
	rightFrame, _ := frame.FromSeries([]*series.Series{
		series.NewInt64("id", rightIDs, nil),
		series.NewText("label", rightLabels, nil),
	})

	return leftFrame, rightFrame
}
