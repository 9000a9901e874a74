// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package csv

import (
	"bufio"
	"io"
	"strings"

	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/frame"
	"github.com/bitjungle/goframe/pkg/series"
)

// WriteFrame writes f to w: the configured delimiter, LF line endings,
// a header line iff opts.HasHeader, nulls as empty fields, and minimal
// quoting (only when a field contains the delimiter, a newline, or a
// quote, with embedded quotes doubled).
func WriteFrame(w io.Writer, f *frame.Frame, opts Options) error {
	bw := bufio.NewWriter(w)
	delim := string(opts.Delimiter)

	// writeRecord joins already-quoted/escaped fields with delim and LF.
	writeRecord := func(fields []string) error {
		for i, fl := range fields {
			if i > 0 {
				if _, err := bw.WriteString(delim); err != nil {
					return dferr.Wrap(dferr.IO, err, "csv: write error")
				}
			}
			if _, err := bw.WriteString(fl); err != nil {
				return dferr.Wrap(dferr.IO, err, "csv: write error")
			}
		}
		_, err := bw.WriteString("\n")
		if err != nil {
			return dferr.Wrap(dferr.IO, err, "csv: write error")
		}
		return nil
	}

	if opts.HasHeader {
		names := f.Columns()
		header := make([]string, len(names))
		for i, n := range names {
			header[i] = quoteField(n, opts.Delimiter)
		}
		if err := writeRecord(header); err != nil {
			return err
		}
	}

	nrows := f.NRows()
	names := f.Columns()
	cols := make([]cellReader, len(names))
	for i, n := range names {
		c, err := f.Column(n)
		if err != nil {
			return err
		}
		cols[i] = c
	}
	row := make([]string, len(names))
	for r := 0; r < nrows; r++ {
		for i, c := range cols {
			text := c.StringAt(r, "")
			if c.Kind() == series.Text && text == "" && !c.IsNull(r) {
				// a non-null empty string must round-trip distinctly from
				// a null cell, which also writes as an empty field
				row[i] = `""`
				continue
			}
			row[i] = quoteField(text, opts.Delimiter)
		}
		if err := writeRecord(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// cellReader is the minimal surface WriteFrame needs from a column.
type cellReader interface {
	StringAt(i int, nullText string) string
	Kind() series.Kind
	IsNull(i int) bool
}

func quoteField(s string, delim byte) string {
	needsQuote := strings.ContainsRune(s, '"') ||
		strings.IndexByte(s, delim) >= 0 ||
		strings.ContainsAny(s, "\n\r")
	if !needsQuote {
		return s
	}
	escaped := strings.ReplaceAll(s, `"`, `""`)
	return `"` + escaped + `"`
}
