package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Placeholder is shown in place of a field the server left absent or null.
const Placeholder = "-"

// Notification is a single record returned by the notifications endpoint.
// Records are read-only on the client; they are replaced wholesale on
// every load.
type Notification struct {
	// ID is the server-assigned identifier.
	ID string `json:"id"`

	// Role is the audience the message targets (e.g. "admin", "user").
	Role string `json:"role"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// ScheduledAt is when delivery is scheduled for. May be null.
	ScheduledAt Timestamp `json:"scheduledAt"`

	// CreatedAt is when the server created the record. May be null.
	CreatedAt Timestamp `json:"createdAt"`

	// IsSent reports whether the notification has been delivered.
	IsSent bool `json:"isSent"`

	// IsRead reports whether the recipient has seen it.
	IsRead bool `json:"isRead"`
}

// OrPlaceholder returns s, or Placeholder when s is blank.
func OrPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// timestampLayouts are tried in order when parsing a server timestamp.
// Layouts without a zone are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a nullable timestamp string as sent by the server. Raw keeps
// the original text so values that fail to parse can still be shown.
type Timestamp struct {
	Raw  string
	Time time.Time
}

// ParseTimestamp builds a Timestamp from raw text. Time stays zero when
// none of the known layouts match.
func ParseTimestamp(raw string) Timestamp {
	raw = strings.TrimSpace(raw)
	ts := Timestamp{Raw: raw}
	if raw == "" {
		return ts
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ts.Time = t
			break
		}
	}
	return ts
}

// IsNull reports whether the server sent no value.
func (t Timestamp) IsNull() bool {
	return t.Raw == ""
}

// Valid reports whether the value parsed into a time.
func (t Timestamp) Valid() bool {
	return !t.Time.IsZero()
}

// Format renders the timestamp in local time using layout. Null values
// render as Placeholder; unparseable values render verbatim.
func (t Timestamp) Format(layout string) string {
	switch {
	case t.IsNull():
		return Placeholder
	case !t.Valid():
		return t.Raw
	default:
		return t.Time.Local().Format(layout)
	}
}

// UnmarshalJSON accepts a JSON string or null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string or null: %w", err)
	}
	*t = ParseTimestamp(raw)
	return nil
}

// MarshalJSON writes the raw text back, or null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsNull() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Raw)
}
