package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nhle/notifyview/internal/client"
	"github.com/nhle/notifyview/internal/clipboard"
	"github.com/nhle/notifyview/internal/credential"
	"github.com/nhle/notifyview/internal/keys"
	"github.com/nhle/notifyview/internal/model"
	"github.com/nhle/notifyview/internal/theme"
	"github.com/nhle/notifyview/internal/ui"
	"github.com/nhle/notifyview/internal/ui/detail"
	helpview "github.com/nhle/notifyview/internal/ui/help"
	"github.com/nhle/notifyview/internal/ui/notiflist"
	"github.com/nhle/notifyview/internal/ui/settings"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewSettings
)

// Fetcher loads the full notification list.
type Fetcher interface {
	ListNotifications(ctx context.Context) ([]model.Notification, error)
}

// FetcherFactory builds a Fetcher for an endpoint and optional token. It
// is called once at startup and again whenever the settings change.
type FetcherFactory func(cfg model.APIConfig, token string) Fetcher

// Options carries the dependencies of the root model.
type Options struct {
	Config     *model.AppConfig
	ConfigPath string
	Token      string
	NewFetcher FetcherFactory
	Clipboard  clipboard.Writer
	Tokens     credential.Store
	Logger     *zap.Logger
}

// Model is the root Bubble Tea model. It owns the fetch lifecycle and the
// status-bar banner, and routes input to the active view.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	cfg          model.AppConfig
	token        string
	fetcher      Fetcher
	newFetcher   FetcherFactory
	clipboard    clipboard.Writer
	logger       *zap.Logger

	list     notiflist.Model
	detail   detail.Model
	helpView helpview.Model
	settings settings.Model

	// fetchSeq identifies the newest fetch; older results are dropped.
	fetchSeq int
	fetchErr error

	notice        string
	noticeIsError bool
	noticeSeq     int

	ready bool
}

// New creates the root model. The first fetch is issued by Init.
func New(opts Options) Model {
	cfg := model.AppConfig{}
	if opts.Config != nil {
		cfg = *opts.Config
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	k := keys.DefaultKeyMap()

	helpView := helpview.New(k, 80, 24)
	helpView.SetEndpoint(cfg.API.BaseURL + client.NotificationsPath)

	return Model{
		currentView: ViewList,
		keys:        k,
		cfg:         cfg,
		token:       opts.Token,
		fetcher:     opts.NewFetcher(cfg.API, opts.Token),
		newFetcher:  opts.NewFetcher,
		clipboard:   opts.Clipboard,
		logger:      logger,
		list:        notiflist.New(k, cfg.Display.DateFormat, 80, 24),
		detail:      detail.New(k, cfg.Display.DateFormat, 80, 24),
		helpView:    helpView,
		settings:    settings.New(opts.ConfigPath, opts.Tokens, 80, 24),
		fetchSeq:    1,
	}
}

// Init starts the spinner and issues the initial fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.list.Init(),
		m.fetch(m.fetchSeq),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.list.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.settings.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case spinner.TickMsg:
		// The spinner lives in the list but keeps turning behind other views.
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case notificationsLoadedMsg:
		return m.handleLoaded(msg)

	case ui.CopyRequestMsg:
		return m, m.copy(msg.Text)

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("copy to clipboard failed", zap.Error(msg.err))
			cmd := m.showNotice("Copy failed: "+msg.err.Error(), true)
			return m, cmd
		}
		cmd := m.showNotice("Copied "+msg.text, false)
		return m, cmd

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.noticeIsError = false
		}
		return m, nil

	case notiflist.SelectedMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.SetNotification(msg.Notification)
		return m, nil

	case ui.BackMsg:
		m.currentView = ViewList
		return m, nil

	case settings.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case settings.SavedMsg:
		m.currentView = ViewList
		if msg.Err != nil {
			m.logger.Error("saving settings failed", zap.Error(msg.Err))
			cmd := m.showNotice("Settings not saved: "+msg.Err.Error(), true)
			return m, cmd
		}
		m.cfg = msg.Config
		m.token = msg.Token
		m.fetcher = m.newFetcher(m.cfg.API, m.token)
		m.helpView.SetEndpoint(m.cfg.API.BaseURL + client.NotificationsPath)
		m.logger.Info("endpoint changed", zap.String("base_url", m.cfg.API.BaseURL))
		cmd := tea.Batch(
			m.refresh(),
			m.showNotice("Settings saved", false),
		)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// The settings form owns every other key while it is open.
		if m.currentView == ViewSettings {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.currentView == ViewList {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.Help):
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case key.Matches(msg, m.keys.Back):
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}

		case key.Matches(msg, m.keys.Refresh):
			if m.currentView == ViewList {
				cmd := m.refresh()
				return m, cmd
			}

		case key.Matches(msg, m.keys.Settings):
			if m.currentView == ViewList {
				m.previousView = m.currentView
				m.currentView = ViewSettings
				cmd := m.settings.Start(m.cfg, m.token)
				return m, cmd
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.list, cmd = m.list.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}

	return m, cmd
}

// handleLoaded applies the newest fetch result to the list.
func (m Model) handleLoaded(msg notificationsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.fetchSeq {
		m.logger.Debug("dropping stale fetch result",
			zap.Int("seq", msg.seq),
			zap.Int("latest", m.fetchSeq),
		)
		return m, nil
	}

	var cmd tea.Cmd
	if msg.err != nil {
		m.fetchErr = msg.err
		cmd = m.list.SetError(msg.err)
		return m, cmd
	}

	m.fetchErr = nil
	cmd = m.list.SetNotifications(msg.notifications)
	return m, cmd
}

// showNotice puts text in the status bar and schedules its removal.
func (m *Model) showNotice(text string, isError bool) tea.Cmd {
	m.noticeSeq++
	seq := m.noticeSeq
	m.notice = text
	m.noticeIsError = isError

	d := m.cfg.Display.NoticeDuration
	if d <= 0 {
		d = model.DefaultNoticeDuration
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Notifications", m.headerStatus())
	content := m.renderContent()
	text, style := m.statusLine()
	statusBar := m.layout.RenderStatusBar(text, style)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.list.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewSettings:
		return m.settings.View()
	default:
		return ""
	}
}

// headerStatus summarizes the load state for the header.
func (m Model) headerStatus() string {
	switch m.list.Status() {
	case notiflist.StatusLoading:
		return "loading"
	case notiflist.StatusError:
		return "error"
	default:
		if m.list.Len() == 1 {
			return "1 notification"
		}
		return fmt.Sprintf("%d notifications", m.list.Len())
	}
}

// statusLine picks the status-bar text: a transient notice first, then
// the last load error, then key hints.
func (m Model) statusLine() (string, lipgloss.Style) {
	if m.notice != "" {
		if m.noticeIsError {
			return m.notice, theme.ErrorBarStyle
		}
		return m.notice, theme.NoticeBarStyle
	}
	if m.fetchErr != nil {
		return describeError(m.fetchErr), theme.ErrorBarStyle
	}
	return m.keyHints(), theme.StatusBarStyle
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewDetail:
		return "esc back | y copy id | j/k scroll"
	case ViewSettings:
		return "enter next | esc cancel"
	default:
		return "q quit | ? help | r refresh | enter open | y copy id | c settings"
	}
}
