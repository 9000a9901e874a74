// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package frame

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/series"
)

// ToNumeric returns a new frame with column name coerced from Text to
// Float64 using the standard float parser (empty -> null, "nan" ->
// stored NaN).
func (f *Frame) ToNumeric(name string) (*Frame, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind() != series.Text {
		return nil, dferr.Invalidf("to_numeric: column %q is not text", name)
	}
	cp := f.Copy()
	replaced := series.New(name, series.Float64, c.Len())
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			if err := replaced.AppendParsed(""); err != nil {
				return nil, err
			}
			continue
		}
		v, _, err := c.GetText(i)
		if err != nil {
			return nil, err
		}
		if err := replaced.AppendParsed(v); err != nil {
			return nil, dferr.NewAt(dferr.Parse, i, 0, "to_numeric: cannot parse %q in column %q", v, name)
		}
	}
	idx, _ := cp.colIndex(name)
	*cp.cols[idx] = *replaced
	return cp, nil
}

// datetime layouts accepted by ToDatetime, in the spec's listed order.
var datetimeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02T15:04:05Z",
	"2006-01-02 15:04:05-07:00",
}

// ToDatetime parses a Text column into Int64 seconds-since-epoch (UTC),
// trying each of the four supported layouts in turn. Out-of-range or
// unparsable values fail PARSE.
func (f *Frame) ToDatetime(name string) (*Frame, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind() != series.Text {
		return nil, dferr.Invalidf("to_datetime: column %q is not text", name)
	}
	cp := f.Copy()
	replaced := series.New(name, series.Int64, c.Len())
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			_ = replaced.AppendScalar(series.NullScalar(series.Int64))
			continue
		}
		v, _, _ := c.GetText(i)
		t, ok := parseDatetime(v)
		if !ok {
			return nil, dferr.Parsef(i, 0, "to_datetime: cannot parse %q in column %q", v, name)
		}
		_ = replaced.AppendScalar(series.Int64Scalar(t.Unix()))
	}
	idx, _ := cp.colIndex(name)
	*cp.cols[idx] = *replaced
	return cp, nil
}

func parseDatetime(s string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Astype converts column name to the given kind. Float->Int fails
// INVALID when any value has a nonzero fractional part. Int/Float->Text
// produce canonical text forms.
func (f *Frame) Astype(name string, to series.Kind) (*Frame, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind() == to {
		return f.Copy(), nil
	}
	cp := f.Copy()
	replaced := series.New(name, to, c.Len())
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			_ = replaced.AppendScalar(series.NullScalar(to))
			continue
		}
		v, err := astypeCell(c, i, to)
		if err != nil {
			return nil, err
		}
		_ = replaced.AppendScalar(v)
	}
	idx, _ := cp.colIndex(name)
	*cp.cols[idx] = *replaced
	return cp, nil
}

func astypeCell(c *series.Series, i int, to series.Kind) (series.Scalar, error) {
	switch {
	case c.Kind() == series.Float64 && to == series.Int64:
		v, _, _ := c.GetFloat64(i)
		if math.IsNaN(v) || v != math.Trunc(v) {
			return series.Scalar{}, dferr.Invalidf("astype: value %v has nonzero fractional part", v)
		}
		return series.Int64Scalar(int64(v)), nil
	case c.Kind() == series.Int64 && to == series.Float64:
		v, _, _ := c.GetInt64(i)
		return series.Float64Scalar(float64(v)), nil
	case c.Kind() == series.Int64 && to == series.Text:
		v, _, _ := c.GetInt64(i)
		return series.TextScalar(strconv.FormatInt(v, 10)), nil
	case c.Kind() == series.Float64 && to == series.Text:
		v, _, _ := c.GetFloat64(i)
		s := "nan"
		if !math.IsNaN(v) {
			s = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return series.TextScalar(s), nil
	case c.Kind() == series.Text && to == series.Int64:
		v, _, _ := c.GetText(i)
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return series.Scalar{}, dferr.Wrap(dferr.Parse, err, "astype: cannot parse %q as int64", v)
		}
		return series.Int64Scalar(n), nil
	case c.Kind() == series.Text && to == series.Float64:
		v, _, _ := c.GetText(i)
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return series.Scalar{}, dferr.Wrap(dferr.Parse, err, "astype: cannot parse %q as float64", v)
		}
		return series.Float64Scalar(x), nil
	default:
		return series.Scalar{}, dferr.Invalidf("astype: unsupported conversion")
	}
}
