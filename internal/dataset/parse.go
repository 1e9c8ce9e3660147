// Package dataset loads the static life-expectancy and holiday tables.
package dataset

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Record is one parsed table row keyed by header name. Numeric fields hold
// float64, other fields hold a trimmed string, and empty or missing fields
// hold nil.
type Record map[string]any

// ParseTable parses header-first, comma-separated text. There is no quoting
// support. Blank lines inside the body are kept and produce a record whose
// fields are all nil, so the row count always matches the line count.
func ParseTable(text string) []Record {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return []Record{}
	}

	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		rec := make(Record, len(headers))
		for i, header := range headers {
			if i >= len(values) {
				rec[header] = nil
				continue
			}
			rec[header] = coerce(strings.TrimSpace(values[i]))
		}
		records = append(records, rec)
	}
	return records
}

func coerce(value string) any {
	if value == "" {
		return nil
	}
	if f, ok := parseNumber(value); ok {
		return f
	}
	return value
}

// parseNumber accepts decimal literals with an optional sign and exponent,
// unsigned 0x/0o/0b integers, and a signed "Infinity". Go-only forms such as
// "inf", "nan", hex floats and digit underscores are text.
func parseNumber(s string) (float64, bool) {
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			digits := s[2:]
			if digits[0] == '+' || digits[0] == '-' || strings.Contains(digits, "_") {
				return 0, false
			}
			n, ok := new(big.Int).SetString(digits, base)
			if !ok {
				return 0, false
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f, true
		}
	}

	if strings.IndexFunc(s, func(r rune) bool { return !strings.ContainsRune("0123456789.eE+-", r) }) >= 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// Float returns a numeric field.
func (r Record) Float(key string) (float64, bool) {
	f, ok := r[key].(float64)
	return f, ok
}

// Int returns a numeric field that holds a whole number.
func (r Record) Int(key string) (int, bool) {
	f, ok := r.Float(key)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// String returns a text field. Numeric fields are not converted.
func (r Record) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// IsBlank reports whether every field is nil, as produced by an empty line.
func (r Record) IsBlank() bool {
	for _, v := range r {
		if v != nil {
			return false
		}
	}
	return true
}
