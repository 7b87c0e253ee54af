package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationDecode(t *testing.T) {
	body := `{
		"id": "n-1",
		"role": "admin",
		"message": "Backup finished",
		"scheduledAt": "2024-03-05T10:30:00Z",
		"createdAt": null,
		"isSent": true,
		"isRead": false
	}`

	var n Notification
	require.NoError(t, json.Unmarshal([]byte(body), &n))

	assert.Equal(t, "n-1", n.ID)
	assert.Equal(t, "admin", n.Role)
	assert.Equal(t, "Backup finished", n.Message)
	assert.True(t, n.IsSent)
	assert.False(t, n.IsRead)

	assert.True(t, n.ScheduledAt.Valid())
	assert.Equal(t, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC), n.ScheduledAt.Time.UTC())
	assert.True(t, n.CreatedAt.IsNull())
}

func TestNotificationDecodeMissingFields(t *testing.T) {
	var n Notification
	require.NoError(t, json.Unmarshal([]byte(`{"id":"n-2"}`), &n))

	assert.Equal(t, Placeholder, OrPlaceholder(n.Role))
	assert.Equal(t, Placeholder, OrPlaceholder(n.Message))
	assert.Equal(t, Placeholder, n.ScheduledAt.Format(DefaultDateFormat))
	assert.Equal(t, Placeholder, n.CreatedAt.Format(DefaultDateFormat))
}

func TestTimestampRejectsNonString(t *testing.T) {
	var n Notification
	err := json.Unmarshal([]byte(`{"id":"n-3","createdAt":12345}`), &n)
	assert.Error(t, err)
}

func TestParseTimestampLayouts(t *testing.T) {
	want := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	for _, raw := range []string{
		"2024-03-05T10:30:00Z",
		"2024-03-05T10:30:00.000Z",
		"2024-03-05T12:30:00+02:00",
		"2024-03-05T10:30:00",
		"2024-03-05 10:30:00",
	} {
		ts := ParseTimestamp(raw)
		require.True(t, ts.Valid(), raw)
		assert.True(t, want.Equal(ts.Time), raw)
	}

	dateOnly := ParseTimestamp("2024-03-05")
	assert.True(t, dateOnly.Valid())
	assert.Equal(t, 5, dateOnly.Time.Day())
}

func TestTimestampFormat(t *testing.T) {
	ts := ParseTimestamp("2024-03-05T10:30:00Z")
	want := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC).Local().Format(DefaultDateFormat)
	assert.Equal(t, want, ts.Format(DefaultDateFormat))

	garbage := ParseTimestamp("next tuesday")
	assert.False(t, garbage.Valid())
	assert.Equal(t, "next tuesday", garbage.Format(DefaultDateFormat))

	assert.Equal(t, Placeholder, ParseTimestamp("   ").Format(DefaultDateFormat))
}

func TestTimestampMarshalKeepsRaw(t *testing.T) {
	n := Notification{
		ID:          "n-4",
		ScheduledAt: ParseTimestamp("2024-03-05T10:30:00Z"),
	}

	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "n-4",
		"role": "",
		"message": "",
		"scheduledAt": "2024-03-05T10:30:00Z",
		"createdAt": null,
		"isSent": false,
		"isRead": false
	}`, string(data))
}
