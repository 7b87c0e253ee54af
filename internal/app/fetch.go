package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/notifyview/internal/client"
	"github.com/nhle/notifyview/internal/model"
)

// notificationsLoadedMsg carries the outcome of one fetch.
type notificationsLoadedMsg struct {
	seq           int
	notifications []model.Notification
	err           error
}

// copiedMsg reports a finished clipboard write.
type copiedMsg struct {
	text string
	err  error
}

// noticeExpiredMsg clears the notice it was scheduled for.
type noticeExpiredMsg struct {
	seq int
}

// refresh re-issues the fetch. A fetch still in flight is not cancelled;
// its result is dropped when it arrives.
func (m *Model) refresh() tea.Cmd {
	m.fetchSeq++
	return tea.Batch(
		m.list.SetLoading(),
		m.fetch(m.fetchSeq),
	)
}

// fetch returns a command performing one request tagged with seq.
func (m Model) fetch(seq int) tea.Cmd {
	f := m.fetcher
	timeout := m.cfg.API.Timeout
	if timeout <= 0 {
		timeout = model.DefaultTimeout
	}
	logger := m.logger

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		notifications, err := f.ListNotifications(ctx)
		if err != nil {
			logger.Error("loading notifications failed", zap.Int("seq", seq), zap.Error(err))
		}
		return notificationsLoadedMsg{
			seq:           seq,
			notifications: notifications,
			err:           err,
		}
	}
}

// copy returns a command writing text to the clipboard.
func (m Model) copy(text string) tea.Cmd {
	w := m.clipboard
	return func() tea.Msg {
		if w == nil {
			return copiedMsg{text: text, err: errors.New("clipboard unavailable")}
		}
		return copiedMsg{text: text, err: w.WriteAll(text)}
	}
}

// describeError maps a fetch failure to the single line shown to the user.
func describeError(err error) string {
	var statusErr *client.StatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Server returned %d. Press r to retry.", statusErr.Code)
	case errors.Is(err, client.ErrUnexpectedShape):
		return "Unexpected response from server. Press r to retry."
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out. Press r to retry."
	default:
		return "Could not reach the notifications service. Press r to retry."
	}
}
