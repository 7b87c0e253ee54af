package notiflist

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/notifyview/internal/keys"
	"github.com/nhle/notifyview/internal/model"
	"github.com/nhle/notifyview/internal/theme"
	"github.com/nhle/notifyview/internal/ui"
)

// Status is the load state of the list.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// SelectedMsg is sent when the user opens a notification.
type SelectedMsg struct {
	Notification model.Notification
}

// Model is the notification list view.
type Model struct {
	list    list.Model
	spinner spinner.Model
	keys    *keys.KeyMap
	status  Status
	err     error
	width   int
	height  int
}

// New creates a list view in the loading state.
func New(k *keys.KeyMap, dateFormat string, width, height int) Model {
	if dateFormat == "" {
		dateFormat = model.DefaultDateFormat
	}

	l := list.New([]list.Item{}, ItemDelegate{dateFormat: dateFormat}, width, height)
	l.Title = "Notifications"
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("notification", "notifications")
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = theme.HeaderStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		list:    l,
		spinner: sp,
		keys:    k,
		status:  StatusLoading,
		width:   width,
		height:  height,
	}
}

// Init starts the loading spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetLoading switches to the loading state. Existing rows are kept so a
// refresh does not blank the screen until the result arrives.
func (m *Model) SetLoading() tea.Cmd {
	wasLoading := m.status == StatusLoading
	m.status = StatusLoading
	m.err = nil
	if wasLoading {
		return nil
	}
	return m.spinner.Tick
}

// SetNotifications replaces every row with the given records.
func (m *Model) SetNotifications(ns []model.Notification) tea.Cmd {
	items := make([]list.Item, len(ns))
	for i, n := range ns {
		items[i] = Item{Notification: n}
	}
	m.status = StatusSuccess
	m.err = nil
	return m.list.SetItems(items)
}

// SetError switches to the error state and drops the rows.
func (m *Model) SetError(err error) tea.Cmd {
	if err == nil {
		err = errors.New("unknown error")
	}
	m.status = StatusError
	m.err = err
	return m.list.SetItems(nil)
}

// Status reports the current load state.
func (m Model) Status() Status { return m.status }

// Err returns the error behind StatusError.
func (m Model) Err() error { return m.err }

// Len returns the number of rows.
func (m Model) Len() int { return len(m.list.Items()) }

// Selected returns the focused notification.
func (m Model) Selected() (model.Notification, bool) {
	it, ok := m.list.SelectedItem().(Item)
	if !ok {
		return model.Notification{}, false
	}
	return it.Notification, true
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.status != StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.status == StatusLoading && m.Len() == 0 {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Select):
			n, ok := m.Selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return SelectedMsg{Notification: n} }

		case key.Matches(msg, m.keys.Copy):
			n, ok := m.Selected()
			if !ok || n.ID == "" {
				return m, nil
			}
			return m, func() tea.Msg { return ui.CopyRequestMsg{Text: n.ID} }
		}
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list or the state placeholder.
func (m Model) View() string {
	style := theme.MutedCenter(m.width, m.height)

	switch m.status {
	case StatusLoading:
		if m.Len() == 0 {
			return style.Render(m.spinner.View() + " Loading notifications...")
		}
	case StatusError:
		return style.Render(
			"Could not load notifications.\n\n" +
				fmt.Sprintf("Press %s to try again.", m.keys.Refresh.Help().Key),
		)
	case StatusSuccess:
		if m.Len() == 0 {
			return style.Render("No notifications.")
		}
	}

	return m.list.View()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
