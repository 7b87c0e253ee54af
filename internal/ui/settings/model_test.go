package settings

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/notifyview/internal/credential"
	"github.com/nhle/notifyview/internal/model"
)

type memTokens struct {
	values map[string]string
	err    error
}

func newMemTokens() *memTokens {
	return &memTokens{values: map[string]string{}}
}

func (s *memTokens) Get(key string) (string, error) { return s.values[key], s.err }

func (s *memTokens) Set(key, value string) error {
	if s.err != nil {
		return s.err
	}
	s.values[key] = value
	return nil
}

func (s *memTokens) Delete(key string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.values, key)
	return nil
}

func loadDefaults(t *testing.T, path string) model.AppConfig {
	t.Helper()
	cfg, err := model.LoadConfig(path)
	require.NoError(t, err)
	return *cfg
}

func TestSaveWritesConfigAndToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	tokens := newMemTokens()

	m := New(path, tokens, 80, 24)
	m.Start(loadDefaults(t, path), "")

	msg, ok := m.save(" http://notify.local:9000/ ", "tok-1")().(SavedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)

	assert.Equal(t, "http://notify.local:9000", msg.Config.API.BaseURL)
	assert.Equal(t, "tok-1", msg.Token)
	assert.Equal(t, "tok-1", tokens.values[credential.TokenKey])

	reloaded, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://notify.local:9000", reloaded.API.BaseURL)
}

func TestSaveEmptyTokenDeletes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	tokens := newMemTokens()
	tokens.values[credential.TokenKey] = "old"

	m := New(path, tokens, 80, 24)
	m.Start(loadDefaults(t, path), "old")

	msg := m.save(model.DefaultBaseURL, "  ")().(SavedMsg)
	require.NoError(t, msg.Err)
	assert.Empty(t, msg.Token)
	assert.NotContains(t, tokens.values, credential.TokenKey)
}

func TestSaveRejectsInvalidURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	m := New(path, newMemTokens(), 80, 24)
	m.Start(loadDefaults(t, path), "")

	msg := m.save("not a url", "")().(SavedMsg)
	assert.Error(t, msg.Err)
	assert.NoFileExists(t, path)
}

func TestSaveReportsTokenStoreFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	tokens := newMemTokens()
	tokens.err = errors.New("keyring locked")

	m := New(path, tokens, 80, 24)
	m.Start(loadDefaults(t, path), "")

	msg := m.save(model.DefaultBaseURL, "tok")().(SavedMsg)
	require.Error(t, msg.Err)
	assert.Contains(t, msg.Err.Error(), "keyring locked")
}

func TestEscCancels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := New(path, newMemTokens(), 80, 24)
	m.Start(loadDefaults(t, path), "")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}

func TestStartPrefillsForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := New(path, newMemTokens(), 80, 24)
	m.Start(loadDefaults(t, path), "tok")

	assert.Equal(t, model.DefaultBaseURL, *m.formBaseURL)
	assert.Equal(t, "tok", *m.formToken)
	assert.Contains(t, m.View(), "Endpoint Settings")
}
