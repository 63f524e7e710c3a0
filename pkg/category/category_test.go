package category

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	m := Months()
	april := time.Date(2025, time.April, 3, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     any
		created time.Time
		want    int
		ok      bool
	}{
		{name: "name", raw: "March", want: 2, ok: true},
		{name: "name any case", raw: "  march ", want: 2, ok: true},
		{name: "zero based", raw: 2, want: 2, ok: true},
		{name: "one based", raw: 12, want: 11, ok: true},
		{name: "decoded float", raw: float64(3), want: 3, ok: true},
		{name: "numeric string", raw: "12", want: 11, ok: true},
		{name: "json number", raw: json.Number("5"), want: 5, ok: true},
		{name: "leading integer", raw: "3rd", want: 3, ok: true},
		{name: "decimal string", raw: " 4.0", want: 4, ok: true},
		{name: "sign only", raw: "-", ok: false},
		{name: "fractional", raw: 2.5, created: april, want: 3, ok: true},
		{name: "out of range falls back to date", raw: 40, created: april, want: 3, ok: true},
		{name: "nil with date", raw: nil, created: april, want: 3, ok: true},
		{name: "nil without date", raw: nil, ok: false},
		{name: "negative", raw: -1, ok: false},
		{name: "garbage", raw: "Smarch", ok: false},
		{name: "bool", raw: true, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Resolve(tt.raw, tt.created)
			if ok != tt.ok {
				t.Fatalf("Resolve(%v) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("Resolve(%v) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolveZeroBasedWinsOverOneBased(t *testing.T) {
	// 3 is valid in both encodings; the 0-based reading is taken.
	got, ok := Months().Resolve(3, time.Time{})
	if !ok || got != 3 {
		t.Fatalf("expected 3, got %d (ok=%v)", got, ok)
	}
}

func TestResolveNonCalendarIgnoresDate(t *testing.T) {
	m := New("Red", "Green")
	if _, ok := m.Resolve(nil, time.Now()); ok {
		t.Fatalf("non-calendar model must not derive category from date")
	}
	if got, ok := m.Resolve(2, time.Time{}); !ok || got != 1 {
		t.Fatalf("expected one-based 2 to map to 1, got %d (ok=%v)", got, ok)
	}
}

func TestResolveWithPolicy(t *testing.T) {
	m := Months()
	if _, ok := m.ResolveWith(DropUnresolved, nil, time.Time{}); ok {
		t.Fatalf("drop policy should leave null month unresolved")
	}
	got, ok := m.ResolveWith(FirstCategory, nil, time.Time{})
	if !ok || got != 0 {
		t.Fatalf("first policy should place null month in January, got %d (ok=%v)", got, ok)
	}
	got, ok = m.ResolveWith(FirstCategory, "June", time.Time{})
	if !ok || got != 5 {
		t.Fatalf("first policy must not override a resolvable value, got %d", got)
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy(""); err != nil || p != DropUnresolved {
		t.Fatalf("empty policy: got %q, %v", p, err)
	}
	if p, err := ParsePolicy("FIRST"); err != nil || p != FirstCategory {
		t.Fatalf("FIRST policy: got %q, %v", p, err)
	}
	if _, err := ParsePolicy("guess"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestLookup(t *testing.T) {
	m := Months()
	if idx, err := m.Lookup("june"); err != nil || idx != 5 {
		t.Fatalf("Lookup(june) = %d, %v", idx, err)
	}
	if _, err := m.Lookup("Juneteenth"); !errors.Is(err, ErrUnknown) {
		t.Fatalf("expected ErrUnknown, got %v", err)
	}
	if m.Name(12) != "" || m.Name(-1) != "" {
		t.Fatalf("out of range names should be empty")
	}
}
