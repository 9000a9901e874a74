// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"fmt"
	"io"

	"github.com/bitjungle/goframe/pkg/series"
)

// Info writes a human-readable summary of the frame to sink: row/column
// counts followed by one line per column naming its position, name,
// kind, and non-null count.
func (f *Frame) Info(sink io.Writer) error {
	if _, err := fmt.Fprintf(sink, "Rows: %d\n", f.nrows); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(sink, "Columns: %d\n", len(f.cols)); err != nil {
		return err
	}
	for i, c := range f.cols {
		if _, err := fmt.Fprintf(sink, "[%d] %s (%s) non-null: %d\n", i, c.Name(), c.Kind(), c.Count()); err != nil {
			return err
		}
	}
	return nil
}

// Describe returns a 4-row frame over numeric columns with stat labels
// count, mean, min, max (in that order) as the first column.
func (f *Frame) Describe() (*Frame, error) {
	names := f.numericColumns()
	outNames := append([]string{"stat"}, names...)
	outKinds := append([]series.Kind{series.Text}, repeatKind(series.Float64, len(names))...)
	out, err := New(outNames, outKinds, 4)
	if err != nil {
		return nil, err
	}
	labels := []string{"count", "mean", "min", "max"}
	for _, label := range labels {
		_ = out.cols[0].AppendScalar(series.TextScalar(label))
		for ci, name := range names {
			c, _ := f.Column(name)
			v, err := describeStat(c, label)
			if err != nil {
				return nil, err
			}
			_ = out.cols[ci+1].AppendScalar(v)
		}
		out.nrows++
	}
	return out, nil
}

func describeStat(c *series.Series, label string) (series.Scalar, error) {
	switch label {
	case "count":
		return series.Float64Scalar(float64(c.Count())), nil
	case "mean":
		m, err := c.Mean()
		if err != nil {
			return series.NullScalar(series.Float64), nil
		}
		return series.Float64Scalar(m), nil
	case "min":
		s, err := c.Min()
		if err != nil {
			return series.NullScalar(series.Float64), nil
		}
		return series.Float64Scalar(toFloat(s)), nil
	default:
		s, err := c.Max()
		if err != nil {
			return series.NullScalar(series.Float64), nil
		}
		return series.Float64Scalar(toFloat(s)), nil
	}
}

func toFloat(s series.Scalar) float64 {
	if s.Kind == series.Int64 {
		return float64(s.I64)
	}
	return s.F64
}
