package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/nhle/notifyview/internal/theme"
)

func TestContentHeight(t *testing.T) {
	assert.Equal(t, 22, NewLayout(80, 24).ContentHeight())
	assert.Equal(t, 0, NewLayout(80, 1).ContentHeight())
}

func TestRenderHeaderFillsWidth(t *testing.T) {
	l := NewLayout(60, 24)
	header := l.RenderHeader("Notifications", "3 records")

	assert.Equal(t, 60, lipgloss.Width(header))
	assert.Contains(t, header, "Notifications")
	assert.Contains(t, header, "3 records")
}

func TestRenderStatusBar(t *testing.T) {
	l := NewLayout(50, 24)
	bar := l.RenderStatusBar("Copied n-1", theme.NoticeBarStyle)

	assert.Equal(t, 50, lipgloss.Width(bar))
	assert.Contains(t, bar, "Copied n-1")
}

func TestRenderWithFrame(t *testing.T) {
	out := NewLayout(20, 5).RenderWithFrame("top", "middle", "bottom")
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "top")
	assert.Contains(t, lines[2], "bottom")
}
