package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notifyview/internal/credential"
	"github.com/nhle/notifyview/internal/model"
	"github.com/nhle/notifyview/internal/theme"
)

// SavedMsg reports the outcome of saving the settings form.
type SavedMsg struct {
	Config model.AppConfig
	Token  string
	Err    error
}

// CancelMsg is sent when the user leaves the form without saving.
type CancelMsg struct{}

// Model edits the endpoint base URL and API token.
type Model struct {
	form       *huh.Form
	configPath string
	tokens     credential.Store
	cfg        model.AppConfig

	// Form field values (huh binds to these)
	formBaseURL *string
	formToken   *string

	saving bool
	width  int
	height int
}

// New creates a settings view that persists to configPath and tokens.
func New(configPath string, tokens credential.Store, width, height int) Model {
	return Model{
		configPath:  configPath,
		tokens:      tokens,
		formBaseURL: new(string),
		formToken:   new(string),
		width:       width,
		height:      height,
	}
}

// Start builds a fresh form prefilled from cfg and token.
func (m *Model) Start(cfg model.AppConfig, token string) tea.Cmd {
	m.cfg = cfg
	m.saving = false
	*m.formBaseURL = cfg.API.BaseURL
	*m.formToken = token
	m.form = m.buildForm()
	return m.form.Init()
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Base URL").
				Description("Notifications service root, e.g. http://localhost:8080").
				Placeholder(model.DefaultBaseURL).
				Value(m.formBaseURL).
				Validate(model.ValidateBaseURL),
			huh.NewInput().
				Title("API Token").
				Description("Optional bearer token; leave empty to send none").
				EchoMode(huh.EchoModePassword).
				Value(m.formToken),
		),
	).WithWidth(m.formWidth()).WithShowHelp(true)
}

// Update forwards input to the form and saves on completion.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || m.saving {
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.saving = true
		return m, m.save(*m.formBaseURL, *m.formToken)
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// save writes the base URL to the config file and the token to the
// credential store. An empty token removes the stored one.
func (m Model) save(baseURL, token string) tea.Cmd {
	cfg := m.cfg
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	token = strings.TrimSpace(token)
	path := m.configPath
	tokens := m.tokens

	return func() tea.Msg {
		if err := model.ValidateBaseURL(cfg.API.BaseURL); err != nil {
			return SavedMsg{Err: err}
		}
		if err := model.SaveConfig(path, &cfg); err != nil {
			return SavedMsg{Err: err}
		}

		var err error
		if token == "" {
			err = tokens.Delete(credential.TokenKey)
		} else {
			err = tokens.Set(credential.TokenKey, token)
		}
		if err != nil {
			return SavedMsg{Err: fmt.Errorf("saving API token: %w", err)}
		}

		return SavedMsg{Config: cfg, Token: token}
	}
}

// View renders the form.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Endpoint Settings")

	body := ""
	switch {
	case m.saving:
		body = theme.DimmedStyle.Render("Saving...")
	case m.form != nil:
		body = m.form.View()
	}

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth())
	}
}

func (m Model) formWidth() int {
	return max(m.width-10, 20)
}
