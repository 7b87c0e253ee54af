package detail

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/notifyview/internal/keys"
	"github.com/nhle/notifyview/internal/model"
	"github.com/nhle/notifyview/internal/ui"
)

func newTestModel() Model {
	m := New(keys.DefaultKeyMap(), model.DefaultDateFormat, 100, 30)
	m.now = func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC) }
	return m
}

func TestEmptyDetail(t *testing.T) {
	m := newTestModel()
	assert.Contains(t, m.View(), "No notification selected")
}

func TestRendersAllFields(t *testing.T) {
	m := newTestModel()
	m.SetNotification(model.Notification{
		ID:          "n-7",
		Role:        "admin",
		Message:     "Disk almost full",
		ScheduledAt: model.ParseTimestamp("2024-03-05T14:00:00Z"),
		IsSent:      false,
		IsRead:      true,
	})

	view := m.View()
	assert.Contains(t, view, "n-7")
	assert.Contains(t, view, "admin")
	assert.Contains(t, view, "Disk almost full")
	assert.Contains(t, view, "pending")
	assert.Contains(t, view, "read")
	assert.Contains(t, view, "2h from now")
}

func TestMissingFieldsShowPlaceholder(t *testing.T) {
	m := newTestModel()
	m.SetNotification(model.Notification{ID: "n-8"})

	content := m.renderContent()
	assert.Contains(t, content, "Created       -")
}

func TestBackAndCopyKeys(t *testing.T) {
	m := newTestModel()
	m.SetNotification(model.Notification{ID: "n-9"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.BackMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.CopyRequestMsg{Text: "n-9"}, cmd())
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "just now", relativeTime(now.Add(-20*time.Second), now))
	assert.Equal(t, "5m ago", relativeTime(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", relativeTime(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2d ago", relativeTime(now.Add(-48*time.Hour), now))
	assert.Equal(t, "2w ago", relativeTime(now.Add(-15*24*time.Hour), now))
	assert.Equal(t, "1h from now", relativeTime(now.Add(90*time.Minute), now))
}
