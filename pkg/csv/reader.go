// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package csv

import (
	"bufio"
	"io"
	"strconv"

	"github.com/bitjungle/goframe/pkg/dferr"
	"github.com/bitjungle/goframe/pkg/frame"
	"github.com/bitjungle/goframe/pkg/series"
)

// field is one decoded cell plus whether it was ever inside quotes.
type field struct {
	text   string
	quoted bool
}

// scanner tokenizes an io.Reader into CSV records, tracking quote state
// by hand rather than through encoding/csv so that an open quote can
// span physical newlines and the empty-unquoted-vs-empty-quoted
// distinction survives to the caller.
type scanner struct {
	br  *bufio.Reader
	opt Options
	row int
}

func newScanner(r io.Reader, opt Options) *scanner {
	return &scanner{br: bufio.NewReader(r), opt: opt}
}

// readRecord reads the next logical CSV record (a quoted field may
// embed raw newlines). Returns io.EOF when no more input remains and
// no partial record was read.
func (sc *scanner) readRecord() ([]field, error) {
	var fields []field
	var cur []byte
	quoted := false
	inQuotes := false
	sawAny := false

	flush := func() {
		fields = append(fields, field{text: string(cur), quoted: quoted})
		cur = cur[:0]
		quoted = false
	}

	for {
		b, err := sc.br.ReadByte()
		if err != nil {
			if err == io.EOF {
				if inQuotes {
					return nil, dferr.NewAt(dferr.Parse, sc.row, len(fields), "unterminated quoted field")
				}
				if sawAny {
					flush()
					return fields, nil
				}
				return nil, io.EOF
			}
			return nil, dferr.Wrap(dferr.IO, err, "csv: read error")
		}
		sawAny = true

		if inQuotes {
			if b == '"' {
				next, peekErr := sc.br.ReadByte()
				if peekErr == nil && next == '"' {
					cur = append(cur, '"')
					continue
				}
				if peekErr == nil {
					_ = sc.br.UnreadByte()
				}
				inQuotes = false
				continue
			}
			cur = append(cur, b)
			continue
		}

		switch {
		case b == '"' && len(cur) == 0:
			inQuotes = true
			quoted = true
		case b == sc.opt.Delimiter:
			flush()
		case b == '\r':
			// ignore; a following \n (or standalone \r at EOF-of-line) ends the line
		case b == '\n':
			flush()
			return fields, nil
		default:
			cur = append(cur, b)
		}
	}
}

// ReadFrame reads a full CSV document into a new frame with the given
// column kinds. If opts.HasHeader, the first record supplies names;
// otherwise columns are named col0, col1, .... A record whose field
// count differs from the declared column count fails PARSE with row
// coordinates.
func ReadFrame(r io.Reader, opts Options, kinds []series.Kind) (*frame.Frame, error) {
	sc := newScanner(r, opts)

	first, err := sc.readRecord()
	if err == io.EOF {
		return nil, dferr.Invalidf("csv: empty input")
	}
	if err != nil {
		return nil, err
	}
	sc.row++

	var names []string
	var firstDataRow []field
	if opts.HasHeader {
		names = make([]string, len(first))
		for i, f := range first {
			names[i] = f.text
		}
	} else {
		names = make([]string, len(first))
		for i := range names {
			names[i] = "col" + strconv.Itoa(i)
		}
		firstDataRow = first
	}

	if len(kinds) != len(names) {
		return nil, dferr.Invalidf("csv: %d kinds given for %d columns", len(kinds), len(names))
	}

	f, err := frame.New(names, kinds, 0)
	if err != nil {
		return nil, err
	}

	appendRecord := func(rec []field) error {
		if len(rec) != len(names) {
			return dferr.NewAt(dferr.Parse, sc.row, len(rec), "csv: row has %d fields, expected %d", len(rec), len(names))
		}
		cells := make([]frame.CSVField, len(rec))
		for i, fl := range rec {
			cells[i] = frame.CSVField{Text: fl.text, Quoted: fl.quoted}
		}
		if err := f.AppendRowFields(cells); err != nil {
			if de, ok := err.(*dferr.Error); ok {
				de.Row = sc.row
				return de
			}
			return err
		}
		return nil
	}

	if firstDataRow != nil {
		if err := appendRecord(firstDataRow); err != nil {
			return nil, err
		}
		sc.row++
	}

	for {
		rec, err := sc.readRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := appendRecord(rec); err != nil {
			return nil, err
		}
		sc.row++
	}

	return f, nil
}
