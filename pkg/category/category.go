// Package category defines the fixed, ordered set of gallery categories and
// resolves loosely encoded category values onto it.
package category

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Policy decides what happens to a record whose category cannot be resolved.
type Policy string

const (
	// DropUnresolved excludes the record from every projection.
	DropUnresolved Policy = "drop"
	// FirstCategory places the record into category 0.
	FirstCategory Policy = "first"
)

// ParsePolicy converts a config value to a Policy. An empty value selects
// DropUnresolved.
func ParsePolicy(raw string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case "":
		return DropUnresolved, nil
	case DropUnresolved, FirstCategory:
		return p, nil
	default:
		return "", fmt.Errorf("category: unknown policy %q", raw)
	}
}

// ErrUnknown is returned by Lookup when a value names no category.
var ErrUnknown = errors.New("category: unknown category")

// Model is an immutable ordered list of category names.
type Model struct {
	names    []string
	calendar bool
}

var months = []string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// Months returns the twelve calendar months model.
func Months() Model {
	return Model{names: months, calendar: true}
}

// New builds a non-calendar model from the given names.
func New(names ...string) Model {
	cp := make([]string, len(names))
	copy(cp, names)
	return Model{names: cp}
}

// Len reports the number of categories.
func (m Model) Len() int {
	return len(m.names)
}

// Name returns the display name of category i, or "" when out of range.
func (m Model) Name(i int) string {
	if i < 0 || i >= len(m.names) {
		return ""
	}
	return m.names[i]
}

// Names returns a copy of the display names in order.
func (m Model) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Calendar reports whether categories are calendar months.
func (m Model) Calendar() bool {
	return m.calendar
}

// Resolve maps a raw value onto a category index. Numbers are accepted
// 0-based first and 1-based second, strings are parsed as numbers or matched
// against names case-insensitively, and for calendar models a non-zero
// createdAt supplies the month as a last resort.
func (m Model) Resolve(raw any, createdAt time.Time) (int, bool) {
	if n, ok := numeric(raw); ok {
		if idx, ok := m.fromNumber(n); ok {
			return idx, true
		}
	}
	if s, ok := raw.(string); ok {
		if idx, ok := m.fromString(s); ok {
			return idx, true
		}
	}
	if m.calendar && !createdAt.IsZero() && len(m.names) == 12 {
		return int(createdAt.Month()) - 1, true
	}
	return 0, false
}

// ResolveWith applies Resolve and then the policy for unresolved values.
func (m Model) ResolveWith(p Policy, raw any, createdAt time.Time) (int, bool) {
	if idx, ok := m.Resolve(raw, createdAt); ok {
		return idx, true
	}
	if p == FirstCategory && len(m.names) > 0 {
		return 0, true
	}
	return 0, false
}

// Lookup resolves a user supplied value without any date fallback.
func (m Model) Lookup(raw string) (int, error) {
	if idx, ok := m.fromString(raw); ok {
		return idx, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, raw)
}

func (m Model) fromNumber(n int64) (int, bool) {
	count := int64(len(m.names))
	switch {
	case n >= 0 && n <= count-1:
		return int(n), true
	case n >= 1 && n <= count:
		return int(n - 1), true
	}
	return 0, false
}

func (m Model) fromString(s string) (int, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false
	}
	if n, ok := leadingInt(trimmed); ok {
		if idx, ok := m.fromNumber(n); ok {
			return idx, true
		}
	}
	for i, name := range m.names {
		if strings.EqualFold(name, trimmed) {
			return i, true
		}
	}
	return 0, false
}

// leadingInt parses the optionally signed run of digits at the start of s,
// so "3rd" and "4.0" both read as integers.
func leadingInt(s string) (int64, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// numeric extracts an integral value from the numeric encodings a decoded
// document may carry.
func numeric(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case float32:
		return integral(float64(v))
	case float64:
		return integral(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil {
			return integral(f)
		}
	}
	return 0, false
}

func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
