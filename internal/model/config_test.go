package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, DefaultNoticeDuration, cfg.Display.NoticeDuration)
	assert.Equal(t, DefaultDateFormat, cfg.Display.DateFormat)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:8080", cfg.DevServer.Addr)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: "http://notify.internal:9090/"
  timeout: 3s
display:
  notice_duration: 500ms
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://notify.internal:9090", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Display.NoticeDuration)
	assert.Equal(t, DefaultDateFormat, cfg.Display.DateFormat)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigEnvOverlay(t *testing.T) {
	t.Setenv("NOTIFYVIEW_API_BASE_URL", "https://notify.example.com")
	t.Setenv("NOTIFYVIEW_API_TIMEOUT", "1s")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://notify.example.com", cfg.API.BaseURL)
	assert.Equal(t, time.Second, cfg.API.Timeout)
}

func TestLoadConfigRejectsBadBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: localhost:8080\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	cfg.API.BaseURL = "http://10.0.0.5:3000"
	cfg.Display.NoticeDuration = 4 * time.Second

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:3000", loaded.API.BaseURL)
	assert.Equal(t, 4*time.Second, loaded.Display.NoticeDuration)
	assert.Equal(t, cfg.Log.File, loaded.Log.File)
}

func TestValidateBaseURL(t *testing.T) {
	assert.NoError(t, ValidateBaseURL("http://localhost:8080"))
	assert.NoError(t, ValidateBaseURL("https://notify.example.com"))
	assert.Error(t, ValidateBaseURL("ftp://localhost"))
	assert.Error(t, ValidateBaseURL("http://"))
	assert.Error(t, ValidateBaseURL(""))
}
