package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the default search path away from the developer's own files.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	m, err := NewManager("")
	require.NoError(t, err)
	cfg := m.Get()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.True(t, cfg.Output.HTML)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "sk-from-env", cfg.LLM.APIKey)
	assert.Equal(t, 2*time.Minute, cfg.LLM.Timeout)
	assert.True(t, cfg.Author.Review)
	assert.Equal(t, 0, cfg.Input.MaxAttempts)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Server.JobTimeout)
	assert.Empty(t, m.FileUsed())
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "guide-creator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
output:
  dir: guides
  html: false
llm:
  provider: mock
  model: small
  timeout: 45s
author:
  model: large
input:
  max_attempts: 3
`), 0o644))

	m, err := NewManager(path)
	require.NoError(t, err)
	cfg := m.Get()

	assert.Equal(t, path, m.FileUsed())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "guides", cfg.Output.Dir)
	assert.False(t, cfg.Output.HTML)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "large", cfg.AuthorModel())
	assert.Equal(t, 3, cfg.Input.MaxAttempts)
	assert.True(t, cfg.Author.Review, "unset keys keep defaults")
}

func TestEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("GUIDE_CREATOR_LLM_MODEL", "gpt-4o")
	t.Setenv("GUIDE_CREATOR_SERVER_ADDR", ":9000")
	t.Setenv("GUIDE_CREATOR_SERVER_JOB_TIMEOUT", "5m")

	m, err := NewManager("")
	require.NoError(t, err)
	cfg := m.Get()

	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "gpt-4o", cfg.AuthorModel())
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Server.JobTimeout)
}

func TestInvalidConfigRejected(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  provider: anthropic\n"), 0o644))

	_, err := NewManager(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "deepseek", mutate: func(c *Config) { c.LLM.Provider = "deepseek" }},
		{name: "json logs", mutate: func(c *Config) { c.LogFormat = "JSON" }},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "local" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
		{name: "empty output dir", mutate: func(c *Config) { c.Output.Dir = "" }, wantErr: true},
		{name: "negative attempts", mutate: func(c *Config) { c.Input.MaxAttempts = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "")
	path := filepath.Join(t.TempDir(), "conf", "guide-creator.yaml")

	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# guide-creator configuration")
	assert.Contains(t, string(data), "timeout: 2m0s")
	assert.Contains(t, string(data), "${OPENAI_API_KEY}")

	m, err := NewManager(path)
	require.NoError(t, err)
	want := Default()
	want.LLM.APIKey = ""
	assert.Equal(t, want, *m.Get())
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("GC_TEST_KEY", "secret")

	assert.Equal(t, "secret", ResolveEnvVars("${GC_TEST_KEY}"))
	assert.Equal(t, "Bearer secret!", ResolveEnvVars("Bearer ${GC_TEST_KEY}!"))
	assert.Equal(t, "", ResolveEnvVars("${GC_TEST_UNSET_KEY}"))
	assert.Equal(t, "plain", ResolveEnvVars("plain"))
}
