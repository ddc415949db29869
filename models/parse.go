package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrMissingName is returned by ParsePlayer for rows without a player name.
var ErrMissingName = errors.New("player name is required")

// CellError describes a stat cell that could not be read as a number. The
// field is left null and the rest of the row is kept.
type CellError struct {
	Column string
	Value  string
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("column %s: invalid number %q", e.Column, e.Value)
}

func (e *CellError) Unwrap() error { return e.Err }

// Text returns the value of a text column, or nil when it is null or the
// column is not a text attribute.
func (p *Player) Text(col string) *string {
	if col == ColName {
		return &p.Name
	}
	if ref := p.textRef(col); ref != nil {
		return *ref
	}
	return nil
}

// NormalizeColumn maps a spreadsheet style header ("Shooting accuracy %",
// "tackle_success_%") onto a column name ("shooting_accuracy_percent").
func NormalizeColumn(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "%", " percent ")

	var b strings.Builder
	sep := false
	for _, r := range h {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	return b.String()
}

// ParsePlayer builds a Player from already normalized column names and their
// cell values. A nil or blank cell is null, as is NaN or an infinity. Unknown
// columns are ignored. A stat that does not parse is left null and reported in
// bad; only a row without a name or with the wrong number of cells is an error.
func ParsePlayer(cols []string, vals []*string) (p Player, bad []*CellError, err error) {
	if len(cols) != len(vals) {
		return p, nil, fmt.Errorf("row has %d values for %d columns", len(vals), len(cols))
	}

	for i, col := range cols {
		raw := vals[i]
		if raw == nil {
			continue
		}
		v := strings.TrimSpace(*raw)
		if v == "" {
			continue
		}

		switch {
		case col == ColName:
			p.Name = v
		case col == ColID:
			// Non-integer keys (uuid tables) are not carried.
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				p.ID = &id
			}
		case p.textRef(col) != nil:
			*p.textRef(col) = &v
		case p.statRef(col) != nil:
			f, err := parseNumber(v)
			if err != nil {
				bad = append(bad, &CellError{Column: col, Value: v, Err: err})
				continue
			}
			if finite(f) {
				*p.statRef(col) = &f
			}
		}
	}

	if p.Name == "" {
		return p, bad, ErrMissingName
	}
	return p, bad, nil
}

// ClearNonFinite nulls every stat holding NaN or an infinity. Such values
// mean "missing" upstream and cannot be encoded as JSON.
func (p *Player) ClearNonFinite() {
	for _, col := range StatColumns {
		if ref := p.statRef(col); *ref != nil && !finite(**ref) {
			*ref = nil
		}
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// parseNumber accepts plain numbers plus the "45%" and "1,204" forms found in
// exported stat sheets.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
