package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// localLayouts are tried in order when the backend omits a zone offset
var localLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time is a timestamp as the backend serializes it, with or without an offset.
// Timestamps without an offset are taken as UTC.
type Time struct {
	time.Time
}

// UnmarshalJSON ...
func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range localLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			t.Time = v
			return nil
		}
	}
	return fmt.Errorf("error: invalid timestamp %q", s)
}

// MarshalJSON ...
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
