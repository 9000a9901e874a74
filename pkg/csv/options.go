// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package csv implements a streaming RFC-4180-style reader and writer
// for the frame engine. It is a hand-rolled codec rather than a wrapper
// over encoding/csv: the reader must track per-field quote state across
// physical lines, distinguish an empty unquoted field (null) from an
// empty quoted field (empty string), and attach row/column coordinates
// to a PARSE error — none of which encoding/csv's record-at-a-time API
// exposes.
package csv

// Options controls reader/writer behavior.
type Options struct {
	// Delimiter is the single-byte field separator. Defaults to ','.
	Delimiter byte
	// HasHeader: when reading, the first record supplies column names;
	// when writing, a header line is emitted.
	HasHeader bool
}

// DefaultOptions returns comma-delimited, header-bearing options.
func DefaultOptions() Options {
	return Options{Delimiter: ',', HasHeader: true}
}
