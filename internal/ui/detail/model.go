package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notifyview/internal/keys"
	"github.com/nhle/notifyview/internal/model"
	"github.com/nhle/notifyview/internal/theme"
	"github.com/nhle/notifyview/internal/ui"
	"github.com/nhle/notifyview/internal/ui/notiflist"
)

// Model shows every field of one notification.
type Model struct {
	notification *model.Notification
	viewport     viewport.Model
	keys         *keys.KeyMap
	dateFormat   string
	now          func() time.Time
	width        int
	height       int
}

// New creates a new detail view model.
func New(k *keys.KeyMap, dateFormat string, width, height int) Model {
	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle()

	if dateFormat == "" {
		dateFormat = model.DefaultDateFormat
	}

	return Model{
		viewport:   vp,
		keys:       k,
		dateFormat: dateFormat,
		now:        time.Now,
		width:      width,
		height:     height,
	}
}

// SetNotification replaces the displayed record.
func (m *Model) SetNotification(n model.Notification) {
	m.notification = &n
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return ui.BackMsg{} }

		case key.Matches(msg, m.keys.Copy):
			if m.notification == nil || m.notification.ID == "" {
				return m, nil
			}
			id := m.notification.ID
			return m, func() tea.Msg { return ui.CopyRequestMsg{Text: id} }
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.notification == nil {
		return theme.MutedCenter(m.width, m.height).Render("No notification selected")
	}
	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	n := m.notification
	if n == nil {
		return ""
	}

	now := m.now()
	rows := []struct{ label, value string }{
		{"ID", model.OrPlaceholder(n.ID)},
		{"Role", model.OrPlaceholder(n.Role)},
		{"Delivery", notiflist.DeliveryLabel(n.IsSent)},
		{"Status", notiflist.ReadLabel(n.IsRead)},
		{"Scheduled", m.formatWithAge(n.ScheduledAt, now)},
		{"Created", m.formatWithAge(n.CreatedAt, now)},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(theme.LabelStyle.Render(r.label))
		b.WriteString(r.value)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.LabelStyle.Render("Message"))
	b.WriteString("\n")

	body := lipgloss.NewStyle().Width(max(m.width-4, 20)).Render(model.OrPlaceholder(n.Message))
	b.WriteString(body)

	return theme.DetailPanelStyle.Width(max(m.width-2, 0)).Render(b.String())
}

// formatWithAge formats ts and appends its distance from now.
func (m Model) formatWithAge(ts model.Timestamp, now time.Time) string {
	s := ts.Format(m.dateFormat)
	if ts.Valid() {
		s += fmt.Sprintf(" (%s)", relativeTime(ts.Time, now))
	}
	return s
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	if m.notification != nil {
		m.viewport.SetContent(m.renderContent())
	}
}

// relativeTime returns a human-friendly distance between t and now,
// covering both past and future times.
func relativeTime(t, now time.Time) string {
	d := now.Sub(t)
	suffix := "ago"
	if d < 0 {
		d = -d
		suffix = "from now"
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm %s", int(d.Minutes()), suffix)
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh %s", int(d.Hours()), suffix)
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd %s", int(d.Hours()/24), suffix)
	default:
		return fmt.Sprintf("%dw %s", int(d.Hours()/24/7), suffix)
	}
}
