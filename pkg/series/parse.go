// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package series

import (
	"math"
	"strconv"
	"strings"
)

// parseInt64 parses a cell of an Int64 column. Leading sign and decimal
// digits only; surrounding whitespace is trimmed; empty-after-trim is
// null, not an error.
func parseInt64(text string) (v int64, isNull bool, err error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0, true, nil
	}
	v, convErr := strconv.ParseInt(t, 10, 64)
	if convErr != nil {
		return 0, false, convErr
	}
	return v, false, nil
}

// parseFloat64 parses a cell of a Float64 column. Accepts decimal point
// and scientific notation. The literal "nan" (case-insensitive) yields a
// stored NaN, which is a value, not a null.
func parseFloat64(text string) (v float64, isNull bool, err error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0, true, nil
	}
	if strings.EqualFold(t, "nan") {
		return math.NaN(), false, nil
	}
	v, convErr := strconv.ParseFloat(t, 64)
	if convErr != nil {
		return 0, false, convErr
	}
	return v, false, nil
}

// parseText "parses" a cell of a Text column: bytes preserved exactly,
// including internal whitespace; only an empty string is null.
func parseText(text string) (v string, isNull bool) {
	if text == "" {
		return "", true
	}
	return text, false
}

// formatFloat formats a float64 with the shortest round-trippable
// representation, printing NaN as "nan" per the spec's CSV/text contract.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
