// Package clipboard copies text to the user's clipboard. When no native
// clipboard is reachable (headless sessions, SSH) it falls back to an OSC52
// escape sequence, which most terminal emulators forward to the local
// clipboard.
package clipboard

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Writer puts text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the native clipboard, then to Fallback via OSC52.
type System struct {
	// Fallback receives the OSC52 sequence; nil disables the fallback.
	Fallback io.Writer

	native func(string) error
}

// New returns a System writer with the given OSC52 fallback.
func New(fallback io.Writer) *System {
	return &System{Fallback: fallback, native: nativeWrite}
}

func nativeWrite(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no native clipboard available")
	}
	return clipboard.WriteAll(text)
}

// WriteAll copies text.
func (s *System) WriteAll(text string) error {
	native := s.native
	if native == nil {
		native = nativeWrite
	}

	nativeErr := native(text)
	if nativeErr == nil {
		return nil
	}
	if s.Fallback == nil {
		return fmt.Errorf("copying to clipboard: %w", nativeErr)
	}

	if _, err := osc52.New(text).WriteTo(s.Fallback); err != nil {
		return fmt.Errorf("writing OSC52 sequence: %w", err)
	}
	return nil
}
