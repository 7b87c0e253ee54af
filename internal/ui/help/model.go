package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notifyview/internal/keys"
	"github.com/nhle/notifyview/internal/theme"
)

// Model is the help overlay: key bindings plus the endpoint in use.
type Model struct {
	keys     *keys.KeyMap
	help     help.Model
	endpoint string
	width    int
	height   int
}

// New creates a new help view model.
func New(k *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.ShowAll = true
	h.Width = width - 4
	return Model{
		keys:   k,
		help:   h,
		width:  width,
		height: height,
	}
}

// SetEndpoint records the URL shown under the key list.
func (m *Model) SetEndpoint(url string) {
	m.endpoint = url
}

// View renders the help overlay.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Keyboard Shortcuts")

	parts := []string{title, m.help.View(m.keys)}
	if m.endpoint != "" {
		parts = append(parts,
			"",
			theme.LabelStyle.Render("Endpoint")+m.endpoint,
		)
	}

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Height(max(m.height-4, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
