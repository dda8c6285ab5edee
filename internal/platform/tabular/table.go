// Package tabular decodes uploaded CSV/XLSX bytes into a canonical in-memory
// table: column names lower-cased and snake-cased, cells kept as raw strings
// with explicit null-on-failure coercion helpers for dates and numbers.
package tabular

import (
	"strconv"
	"strings"
	"time"
)

// Table is one normalized tabular dataset. Rows hold raw cell strings; typed
// interpretation happens at read time via the coercion helpers so that a bad
// cell never rejects its row.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

func newTable(header []string, rows [][]string) *Table {
	t := &Table{
		Columns: make([]string, len(header)),
		Rows:    rows,
		index:   make(map[string]int, len(header)),
	}
	for i, h := range header {
		name := CleanName(h)
		t.Columns[i] = name
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}
	return t
}

// HasColumn reports whether the table carries the given canonical column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Get returns the trimmed cell for the given row and canonical column name,
// or "" when the column is absent or the row is short.
func (t *Table) Get(row []string, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// CleanName canonicalizes a column header: trimmed, lower-cased, runs of
// whitespace and punctuation folded to a single underscore.
func CleanName(h string) string {
	h = strings.TrimPrefix(h, "\uFEFF")
	h = strings.ToLower(strings.TrimSpace(h))

	var b strings.Builder
	b.Grow(len(h))
	pendingSep := false
	for _, r := range h {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == '_':
			pendingSep = true
		default:
			pendingSep = true
		}
	}
	return b.String()
}

// dateLayouts covers the formats seen in CPIMS exports. Tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
	"2006/01/02",
	"02-Jan-2006",
}

// ParseDate coerces a cell to a calendar date. Empty or unparseable values
// return nil; coercion never raises, missing dates propagate as nulls.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			d := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// ParseNumber coerces a cell to a float. Thousands separators are tolerated;
// empty or unparseable values return nil.
func ParseNumber(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
