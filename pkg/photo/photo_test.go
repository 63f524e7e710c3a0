package photo

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCaption(t *testing.T) {
	created := time.Date(2025, time.June, 3, 12, 0, 0, 0, time.Local)
	it := Item{Author: "Ada", Created: created}
	if got, want := it.Caption("June"), "June · Ada — Jun 3, 2025"; got != want {
		t.Fatalf("caption = %q, want %q", got, want)
	}
	if got := (Item{}).Caption("June"); got != "June" {
		t.Fatalf("bare caption = %q", got)
	}
}

func TestAltTextAndNote(t *testing.T) {
	it := Item{}
	if it.HasNote() {
		t.Fatalf("empty item should have no note")
	}
	if got := it.AltText("May"); got != "Photo from May" {
		t.Fatalf("alt = %q", got)
	}
	it.Note = "beach day"
	if got := it.AltText("May"); got != "beach day" {
		t.Fatalf("alt = %q", got)
	}
}

func TestRecordDecodesLooseDocuments(t *testing.T) {
	raw := `{"id":"a","month":"3","photographer":null,"notes":"  hi  ","filename":"f.jpg","downloadURL":"file:///f.jpg","createdAt":"2025-03-01T10:00:00Z"}`
	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Month != "3" {
		t.Fatalf("month kept raw, got %#v", r.Month)
	}
	it := FromRecord(r, 2)
	if it.Author != "" || it.Note != "hi" || it.URL != "file:///f.jpg" {
		t.Fatalf("unexpected item %+v", it)
	}
	if it.Created.IsZero() {
		t.Fatalf("expected created time parsed")
	}

	var empty Record
	if err := json.Unmarshal([]byte(`{"id":"b","createdAt":""}`), &empty); err != nil {
		t.Fatalf("unmarshal empty timestamp: %v", err)
	}
	if !empty.CreatedAt.IsZero() {
		t.Fatalf("expected zero timestamp")
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := Timestamp{Time: time.Date(2025, time.January, 2, 3, 4, 5, 6, time.UTC)}
	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Timestamp
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(ts.Time) {
		t.Fatalf("round trip mismatch: %v vs %v", back, ts)
	}
	if b, _ := json.Marshal(Timestamp{}); string(b) != "null" {
		t.Fatalf("zero timestamp should encode as null, got %s", b)
	}
}

func TestOptional(t *testing.T) {
	if Optional("  ") != nil {
		t.Fatalf("blank should be nil")
	}
	if v := Optional(" x "); v == nil || *v != "x" {
		t.Fatalf("expected trimmed value")
	}
}
