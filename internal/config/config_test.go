package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 250*time.Millisecond, cfg.Throttle.Delay.Std())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "steamfeeds.yaml", `
logging:
  level: debug
throttle:
  delay: 1s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, time.Second, cfg.Throttle.Delay.Std())
	// untouched fields keep their defaults
	require.Equal(t, DefaultUserAgent, cfg.HTTP.UserAgent)
	require.Equal(t, 30*time.Second, cfg.HTTP.Timeout.Std())
}

func TestLoadJSON5(t *testing.T) {
	path := writeFile(t, "steamfeeds.json5", `{
  // comments are allowed
  http: {userAgent: "my-agent", timeout: "5s"},
}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "my-agent", cfg.HTTP.UserAgent)
	require.Equal(t, 5*time.Second, cfg.HTTP.Timeout.Std())
}

func TestLoadFromEnvPath(t *testing.T) {
	t.Setenv(configPathEnv, writeFile(t, "cfg.yml", "logging:\n  level: error\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "error", cfg.Logging.Level)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(logLevelEnv, "info")
	t.Setenv(userAgentEnv, "env-agent")
	t.Setenv(httpTimeoutEnv, "10s")
	t.Setenv(delayEnv, "0s")

	cfg, err := Load(writeFile(t, "cfg.yaml", "logging:\n  level: debug\n"))
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "env-agent", cfg.HTTP.UserAgent)
	require.Equal(t, 10*time.Second, cfg.HTTP.Timeout.Std())
	require.Zero(t, cfg.Throttle.Delay)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"missing file": filepath.Join(t.TempDir(), "absent.yaml"),
		"bad yaml":     writeFile(t, "bad.yaml", "logging: [\n"),
		"bad duration": writeFile(t, "dur.yaml", "throttle:\n  delay: soon\n"),
		"bad level":    writeFile(t, "lvl.yaml", "logging:\n  level: loud\n"),
		"unknown type": writeFile(t, "cfg.toml", "level = 'debug'\n"),
	}

	for name, path := range cases {
		_, err := Load(path)
		require.Error(t, err, name)
	}
}

func TestEnvDurationError(t *testing.T) {
	t.Setenv(delayEnv, "fast")

	_, err := Load("")
	require.ErrorContains(t, err, delayEnv)
}

func TestValidateNegativeDelay(t *testing.T) {
	cfg := Default()
	cfg.Throttle.Delay = Duration(-time.Second)
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.HTTP.UserAgent = ""
	require.Error(t, cfg.Validate())
}

func TestLoadIgnoresDotenvInWorkingDir(t *testing.T) {
	t.Setenv(envFileEnv, "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("export FOO='unterminated\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv(userAgentEnv, "")
	t.Setenv(logLevelEnv, "error")
	t.Setenv(envFileEnv, writeFile(t, "steamfeeds.env",
		"STEAMFEEDS_USER_AGENT=from-file\nSTEAMFEEDS_LOG_LEVEL=debug\nOTHER_TOOL_MODE=loud\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.HTTP.UserAgent)
	// the process environment wins over the file
	require.Equal(t, "error", cfg.Logging.Level)
	_, set := os.LookupEnv("OTHER_TOOL_MODE")
	require.False(t, set)
}

func TestLoadEnvFileErrors(t *testing.T) {
	t.Setenv(envFileEnv, filepath.Join(t.TempDir(), "absent.env"))

	_, err := Load("")
	require.ErrorContains(t, err, "read env file")
}
