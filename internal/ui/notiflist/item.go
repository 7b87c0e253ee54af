package notiflist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/notifyview/internal/model"
	"github.com/nhle/notifyview/internal/theme"
)

// Item wraps a model.Notification so it can be used in a bubbles/list.
type Item struct {
	Notification model.Notification
}

// FilterValue returns the string used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Notification.Message }

// ItemDelegate renders a notification as two lines: the message line and
// a line with delivery state and both dates.
type ItemDelegate struct {
	dateFormat string
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 1 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}

	first, second := d.lines(it.Notification)
	text := first + "\n" + second

	if index == m.Index() {
		text = theme.SelectedItemStyle.Render(text)
	} else {
		text = theme.ListItemStyle.Render(text)
	}

	fmt.Fprint(w, text)
}

// lines builds the unstyled-by-selection content of a row.
func (d ItemDelegate) lines(n model.Notification) (string, string) {
	marker := "●"
	if n.IsRead {
		marker = "○"
	}

	role := model.OrPlaceholder(n.Role)
	roleBadge := theme.RoleStyle(n.Role).Render(strings.ToUpper(role))

	message := model.OrPlaceholder(n.Message)
	if n.IsRead {
		message = theme.DimmedStyle.Render(message)
	}

	first := fmt.Sprintf("%s %s %s", marker, roleBadge, message)

	second := fmt.Sprintf(
		"  %s  %s",
		theme.DeliveryStyle(n.IsSent).Render(DeliveryLabel(n.IsSent)),
		theme.DimmedStyle.Render(fmt.Sprintf(
			"scheduled %s · created %s",
			n.ScheduledAt.Format(d.dateFormat),
			n.CreatedAt.Format(d.dateFormat),
		)),
	)

	return first, second
}

// DeliveryLabel names the delivery state.
func DeliveryLabel(sent bool) string {
	if sent {
		return "sent"
	}
	return "pending"
}

// ReadLabel names the read state.
func ReadLabel(read bool) string {
	if read {
		return "read"
	}
	return "unread"
}
