package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/herald/internal/core/notify"
	"github.com/colonyops/herald/internal/core/notifylog"
	"github.com/colonyops/herald/internal/core/placement"
	"github.com/colonyops/herald/internal/core/styles"
	"github.com/colonyops/herald/internal/core/toasts"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_missing_file_returns_defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	require.NotNil(t, cfg.DefaultDuration)
	assert.Equal(t, notify.DefaultDuration, *cfg.DefaultDuration)
	assert.Equal(t, placement.TopRight, cfg.ToastPlacement.Default.Position)
	assert.False(t, cfg.Logging.Enabled)
	assert.Equal(t, notifylog.LevelError, cfg.Logging.Level)
	assert.Equal(t, styles.DefaultTheme, cfg.TUI.Theme)
	assert.Equal(t, ResumeRestart, cfg.TUI.ResumeMode)
}

func TestLoad_empty_path(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().TUI, cfg.TUI)
}

func TestLoad_full_file(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
default_duration: 3s
max_toasts: 4
toast_placement:
  default: top-right
  responsive:
    - max_width: 80
      target: bottom-right
logging:
  enabled: true
  endpoint: https://example.com/log
  log_level: warning
  timeout: 2s
  retries: 1
tui:
  theme: gruvbox
  resume_mode: remaining
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, *cfg.DefaultDuration)
	assert.Equal(t, 4, cfg.MaxToasts)
	require.Len(t, cfg.ToastPlacement.Responsive, 1)
	assert.Equal(t, placement.BottomRight, cfg.ToastPlacement.Responsive[0].Target.Position)
	assert.Equal(t, notifylog.Config{
		Enabled:  true,
		Endpoint: "https://example.com/log",
		Level:    notifylog.LevelWarning,
		Timeout:  2 * time.Second,
		Retries:  1,
	}, cfg.Logging)
	assert.Equal(t, TUIConfig{Theme: "gruvbox", ResumeMode: ResumeRemaining}, cfg.TUI)
}

func TestLoad_zero_duration_is_kept(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "default_duration: 0s\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), *cfg.DefaultDuration, "explicit zero means persistent")
}

func TestLoad_parse_error(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "toast_placement: [nope\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_invalid(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
max_toasts: -1
toast_placement: middle
logging:
  log_level: verbose
  endpoint: ftp://example.com
tui:
  theme: neon
`)

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	fields := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = fe.Field
	}
	assert.ElementsMatch(t, []string{
		"max_toasts",
		"toast_placement.default.position",
		"logging.log_level",
		"logging.endpoint",
		"tui.theme",
	}, fields)
}

func TestParse_skips_validation(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "max_toasts: -1\n")

	cfg, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, -1, cfg.MaxToasts)
	assert.Error(t, cfg.Validate())
}

func TestTUIConfig_ToastResumeMode(t *testing.T) {
	assert.Equal(t, toasts.ResumeRestart, TUIConfig{}.ToastResumeMode())
	assert.Equal(t, toasts.ResumeRestart, TUIConfig{ResumeMode: ResumeRestart}.ToastResumeMode())
	assert.Equal(t, toasts.ResumeRemaining, TUIConfig{ResumeMode: ResumeRemaining}.ToastResumeMode())
}

func TestValidate_endpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		wantErr  bool
	}{
		{"https://logs.example.com/ingest", false},
		{"http://localhost:8080", false},
		{"localhost:8080", true},
		{"https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			err := validateEndpoint(tt.endpoint)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDeep_directory(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()

	err := cfg.ValidateDeep(dir)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)

	assert.NoError(t, cfg.ValidateDeep(filepath.Join(dir, "missing.yaml")))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "herald", "config.yaml"), DefaultPath())
}

func TestWatcher_reloads_on_write(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "max_toasts: 1\n")

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type result struct {
		cfg *Config
		err error
	}
	done := make(chan result, 1)
	go func() {
		cfg, err := w.Next(ctx)
		done <- result{cfg, err}
	}()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("max_toasts: 7\n"), 0o644))

	got := <-done
	require.NoError(t, got.err)
	require.NotNil(t, got.cfg)
	assert.Equal(t, 7, got.cfg.MaxToasts)
}

func TestWatcher_context_cancel(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = w.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
