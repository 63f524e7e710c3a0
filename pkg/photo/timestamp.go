package photo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ParseTime parses an RFC3339 instant as written by the store.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp is a creation instant that tolerates empty and null encodings.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(fmt.Sprintf("%q", FormatTime(t.Time))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if strings.TrimSpace(timestamp) == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTime renders v the way the store persists instants.
func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}

// FormatDate renders v for captions, e.g. "Jun 3, 2025". Zero yields "".
func FormatDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Local().Format("Jan 2, 2006")
}
