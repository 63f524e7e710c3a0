package projection

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/photobook/pkg/category"
	"tableflip.dev/photobook/pkg/photo"
)

var base = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func record(id string, month any, age int) photo.Record {
	return photo.Record{
		ID:          id,
		Month:       month,
		DownloadURL: "file:///" + id,
		CreatedAt:   photo.Timestamp{Time: base.Add(-time.Duration(age) * time.Hour)},
	}
}

func ids(items []photo.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestApplyGroupsAndIndexes(t *testing.T) {
	p := New(category.Months(), category.DropUnresolved)
	p = p.Apply([]photo.Record{
		record("j3", 5, 0),
		record("m1", "March", 1),
		record("j2", "5", 2),
		record("j1", "june", 3),
	})

	if diff := cmp.Diff([]string{"j3", "j2", "j1"}, ids(p.Items(5))); diff != "" {
		t.Fatalf("june items mismatch (-want +got):\n%s", diff)
	}
	for i, it := range p.Items(5) {
		if it.Index != i {
			t.Fatalf("item %s index = %d, want %d", it.ID, it.Index, i)
		}
		if it.Category != 5 {
			t.Fatalf("item %s category = %d", it.ID, it.Category)
		}
	}
	if got := p.Len(2); got != 1 {
		t.Fatalf("march len = %d", got)
	}
	if p.Total() != 4 {
		t.Fatalf("total = %d", p.Total())
	}
}

func TestApplyEmptyClearsEverything(t *testing.T) {
	p := New(category.Months(), "").Apply([]photo.Record{record("a", 0, 0), record("b", 11, 0)})
	p = p.Apply(nil)
	for cat := 0; cat < p.Categories(); cat++ {
		if p.Len(cat) != 0 {
			t.Fatalf("category %d not cleared: %d items", cat, p.Len(cat))
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	snapshot := make([]photo.Record, 0, 20)
	for i := 0; i < 20; i++ {
		snapshot = append(snapshot, record(fmt.Sprintf("r%02d", i), i%12, i))
	}
	p := New(category.Months(), category.DropUnresolved)
	first := p.Apply(snapshot)
	second := first.Apply(snapshot)
	for cat := 0; cat < 12; cat++ {
		if diff := cmp.Diff(first.Items(cat), second.Items(cat)); diff != "" {
			t.Fatalf("category %d differs (-first +second):\n%s", cat, diff)
		}
	}
}

func TestApplyDoesNotTouchPreviousProjection(t *testing.T) {
	p := New(category.Months(), category.DropUnresolved)
	old := p.Apply([]photo.Record{record("a", 0, 0), record("b", 0, 1)})
	_ = old.Apply([]photo.Record{record("c", 0, 0)})
	if diff := cmp.Diff([]string{"a", "b"}, ids(old.Items(0))); diff != "" {
		t.Fatalf("previous projection mutated:\n%s", diff)
	}
}

func TestUnresolvedPolicy(t *testing.T) {
	model := category.Months()
	orphan := photo.Record{ID: "orphan"}

	dropped := New(model, category.DropUnresolved).Apply([]photo.Record{orphan})
	if dropped.Total() != 0 || dropped.Dropped() != 1 {
		t.Fatalf("drop policy: total=%d dropped=%d", dropped.Total(), dropped.Dropped())
	}

	first := New(model, category.FirstCategory).Apply([]photo.Record{orphan})
	if first.Len(0) != 1 || first.Dropped() != 0 {
		t.Fatalf("first policy: january=%d dropped=%d", first.Len(0), first.Dropped())
	}
}

func TestItemLookup(t *testing.T) {
	p := New(category.Months(), "").Apply([]photo.Record{record("a", 1, 0)})
	if it, ok := p.Item(1, 0); !ok || it.ID != "a" {
		t.Fatalf("expected item a, got %+v ok=%v", it, ok)
	}
	for _, addr := range [][2]int{{1, 1}, {1, -1}, {12, 0}, {-1, 0}} {
		if _, ok := p.Item(addr[0], addr[1]); ok {
			t.Fatalf("expected miss at %v", addr)
		}
	}
}

func TestStore(t *testing.T) {
	s := NewStore(category.Months(), category.DropUnresolved)
	if s.Current().Total() != 0 {
		t.Fatalf("new store should be empty")
	}
	got := s.OnSnapshot([]photo.Record{record("a", 4, 0)})
	if got.Len(4) != 1 || s.Current().Len(4) != 1 {
		t.Fatalf("snapshot not applied")
	}
}
