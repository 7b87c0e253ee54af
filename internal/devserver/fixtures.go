package devserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nhle/notifyview/internal/model"
)

// LoadFixtures reads notifications from a JSON file holding either a bare
// array or an object of the form {"result": [...]}.
func LoadFixtures(path string) ([]model.Notification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var ns []model.Notification
		if err := json.Unmarshal(data, &ns); err != nil {
			return nil, fmt.Errorf("decoding fixtures %s: %w", path, err)
		}
		return nonNil(ns), nil
	}

	var envelope struct {
		Result []model.Notification `json:"result"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decoding fixtures %s: %w", path, err)
	}
	return nonNil(envelope.Result), nil
}

// SampleNotifications returns a small built-in data set relative to now.
// It mixes sent and pending, read and unread, and includes records with
// missing timestamps.
func SampleNotifications(now time.Time) []model.Notification {
	ts := func(d time.Duration) model.Timestamp {
		return model.ParseTimestamp(now.Add(d).UTC().Format(time.RFC3339))
	}

	return []model.Notification{
		{
			ID:          "ntf-1001",
			Role:        "admin",
			Message:     "Nightly backup finished",
			ScheduledAt: ts(-6 * time.Hour),
			CreatedAt:   ts(-7 * time.Hour),
			IsSent:      true,
			IsRead:      true,
		},
		{
			ID:          "ntf-1002",
			Role:        "user",
			Message:     "Your report is ready to download",
			ScheduledAt: ts(-30 * time.Minute),
			CreatedAt:   ts(-45 * time.Minute),
			IsSent:      true,
		},
		{
			ID:          "ntf-1003",
			Role:        "user",
			Message:     "Reminder: team sync tomorrow at 10:00",
			ScheduledAt: ts(20 * time.Hour),
			CreatedAt:   ts(-2 * time.Hour),
		},
		{
			ID:        "ntf-1004",
			Role:      "system",
			Message:   "Maintenance window announced",
			CreatedAt: ts(-3 * 24 * time.Hour),
			IsSent:    true,
			IsRead:    true,
		},
		{
			ID:      "ntf-1005",
			Role:    "admin",
			Message: "Draft notification without dates",
		},
	}
}

func nonNil(ns []model.Notification) []model.Notification {
	if ns == nil {
		return []model.Notification{}
	}
	return ns
}
