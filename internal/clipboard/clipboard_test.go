package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAllNativeSuccess(t *testing.T) {
	var copied string
	var fallback bytes.Buffer
	s := &System{
		Fallback: &fallback,
		native:   func(text string) error { copied = text; return nil },
	}

	require.NoError(t, s.WriteAll("n-42"))
	assert.Equal(t, "n-42", copied)
	assert.Zero(t, fallback.Len())
}

func TestWriteAllFallsBackToOSC52(t *testing.T) {
	var fallback bytes.Buffer
	s := &System{
		Fallback: &fallback,
		native:   func(string) error { return errors.New("no xclip") },
	}

	require.NoError(t, s.WriteAll("n-42"))
	out := fallback.String()
	assert.Contains(t, out, "\x1b]52;")
	assert.Contains(t, out, base64.StdEncoding.EncodeToString([]byte("n-42")))
}

func TestWriteAllNoFallback(t *testing.T) {
	s := &System{native: func(string) error { return errors.New("no xclip") }}

	err := s.WriteAll("n-42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no xclip")
}
