package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Standalone(t *testing.T) {
	path := writeFile(t, "config.yaml", `
mode: standalone
database_path: /var/lib/su/su.db
gateway_url: https://gateway.example
upload_node_url: https://upload.example
wallet_path: /etc/su/wallet.json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeStandalone, cfg.Mode)
	assert.Equal(t, "/var/lib/su/su.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_DefaultsToStandalone(t *testing.T) {
	path := writeFile(t, "config.yaml", `
database_path: su.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeStandalone, cfg.Mode)
}

func TestLoad_Router(t *testing.T) {
	path := writeFile(t, "config.yaml", `
mode: router
database_path: su.db
native_process_id: native-process
scheduler_list_path: /etc/su/schedulers.json
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeRouter, cfg.Mode)
	assert.Equal(t, "native-process", cfg.NativeProcessID)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	path := writeFile(t, "config.yaml", `
database_path: su.db
databse_path: typo.db
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "databse_path")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate_RequiresDatabasePath(t *testing.T) {
	cfg := &Config{Mode: ModeStandalone}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database_path")
}

func TestValidate_RouterRequiresNativeProcess(t *testing.T) {
	cfg := &Config{
		Mode:              ModeRouter,
		DatabasePath:      "su.db",
		SchedulerListPath: "schedulers.json",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "native_process_id")
}

func TestValidate_RouterRequiresSchedulerList(t *testing.T) {
	cfg := &Config{
		Mode:            ModeRouter,
		DatabasePath:    "su.db",
		NativeProcessID: "native-process",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduler_list_path")
}

func TestValidate_RejectsUnknownMode(t *testing.T) {
	cfg := &Config{Mode: "proxy", DatabasePath: "su.db"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mode")
}

func TestValidate_RejectsUnknownLogLevel(t *testing.T) {
	cfg := &Config{Mode: ModeStandalone, DatabasePath: "su.db", LogLevel: "loud"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestSlogLevel_Mapping(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for level, want := range cases {
		cfg := &Config{LogLevel: level}
		assert.Equal(t, want, cfg.SlogLevel(), "level %q", level)
	}
}

func TestLoadSchedulerList(t *testing.T) {
	path := writeFile(t, "schedulers.json", `[
  {"url": "https://unit-1.example"},
  {"url": "https://unit-2.example"}
]`)

	urls, err := LoadSchedulerList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://unit-1.example", "https://unit-2.example"}, urls)
}

func TestLoadSchedulerList_Empty(t *testing.T) {
	path := writeFile(t, "schedulers.json", `[]`)

	urls, err := LoadSchedulerList(path)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestLoadSchedulerList_Malformed(t *testing.T) {
	path := writeFile(t, "schedulers.json", `{"url": "not-an-array"}`)

	_, err := LoadSchedulerList(path)
	require.Error(t, err)
}
