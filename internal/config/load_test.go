package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAppID, "")
	t.Setenv(EnvAppSecret, "")

	opts, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, opts.Feishu.BaseURL)
	require.Equal(t, DefaultWebURL, opts.Feishu.WebURL)
	require.Equal(t, DefaultTimeout, opts.Feishu.Timeout)
	require.Equal(t, "info", opts.Log.Level)
	require.False(t, opts.Feishu.HasCredentials())
}

func TestLoad_FileAndEnvOverlay(t *testing.T) {
	t.Setenv("TEST_FEISHU_SECRET", "from-expansion")
	t.Setenv(EnvAppID, "cli_env_app")
	t.Setenv(EnvAppSecret, "")
	t.Setenv(EnvLogLevel, "WARNING")

	path := writeConfig(t, `
[feishu]
app_id = "cli_file_app"
app_secret = "${TEST_FEISHU_SECRET}"
base_url = "http://127.0.0.1:8080/open-apis"
timeout = "3s"
rate_limit = 5.0

[log]
format = "json"
file = "/tmp/feishu-mcp.log"
`)

	opts, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "cli_env_app", opts.Feishu.AppID, "env overrides file")
	require.Equal(t, "from-expansion", opts.Feishu.AppSecret)
	require.Equal(t, "http://127.0.0.1:8080/open-apis", opts.Feishu.BaseURL)
	require.Equal(t, 3*time.Second, opts.Feishu.Timeout)
	require.InDelta(t, 5.0, opts.Feishu.RateLimit, 0)
	require.Equal(t, 1, opts.Feishu.RateBurst)
	require.Equal(t, "warn", opts.Log.Level)
	require.Equal(t, "json", opts.Log.Format)
	require.Equal(t, "/tmp/feishu-mcp.log", opts.Log.File)
	require.True(t, opts.Feishu.HasCredentials())
}

func TestLoad_BareDollarKeptLiteral(t *testing.T) {
	t.Setenv("TEST_FEISHU_SECRET", "expanded")
	t.Setenv("HOME", "/home/feishu")
	t.Setenv(EnvAppSecret, "")

	path := writeConfig(t, `
[feishu]
app_secret = "pa$$w0rd$HOME-${TEST_FEISHU_SECRET}"
`)

	opts, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "pa$$w0rd$HOME-expanded", opts.Feishu.AppSecret)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvLogLevel, "")

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "malformed toml",
			body:    "[feishu\napp_id = 1",
			wantErr: "parsing config",
		},
		{
			name:    "unknown key",
			body:    "[feishu]\napp_key = \"x\"",
			wantErr: "unknown keys feishu.app_key",
		},
		{
			name:    "bad scheme",
			body:    "[feishu]\nbase_url = \"ftp://example.com\"",
			wantErr: "http or https",
		},
		{
			name:    "negative rate",
			body:    "[feishu]\nrate_limit = -1.0",
			wantErr: "must not be negative",
		},
		{
			name:    "bad level",
			body:    "[log]\nlevel = \"loud\"",
			wantErr: "log.level",
		},
		{
			name:    "bad format",
			body:    "[log]\nformat = \"xml\"",
			wantErr: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAppID:     "cli_a",
		EnvAppSecret: "s3cret",
		EnvLogFile:   "",
	}

	opts := Default()
	opts.Log.File = "kept.log"
	opts.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]

		return v, ok
	})

	require.Equal(t, "cli_a", opts.Feishu.AppID)
	require.Equal(t, "s3cret", opts.Feishu.AppSecret)
	require.Equal(t, "kept.log", opts.Log.File, "empty env values do not clear")
	require.Equal(t, DefaultBaseURL, opts.Feishu.BaseURL)
}

func TestDefaultPath_Env(t *testing.T) {
	t.Setenv(EnvConfigPath, "/etc/feishu-mcp.toml")

	require.Equal(t, "/etc/feishu-mcp.toml", DefaultPath())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, "DEBUG", level.String())

	_, err = ParseLevel("nope")
	require.Error(t, err)
}
