// Package config loads guide-creator settings from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

// EnvPrefix is prepended to environment overrides, e.g. GUIDE_CREATOR_LLM_MODEL.
const EnvPrefix = "GUIDE_CREATOR"

type Config struct {
	LogLevel  string       `mapstructure:"log_level"`
	LogFormat string       `mapstructure:"log_format"`
	Output    OutputConfig `mapstructure:"output"`
	LLM       LLMConfig    `mapstructure:"llm"`
	Author    AuthorConfig `mapstructure:"author"`
	Input     InputConfig  `mapstructure:"input"`
	Server    ServerConfig `mapstructure:"server"`
}

type OutputConfig struct {
	// Dir receives guide_outline.json and complete_guide.md.
	Dir  string `mapstructure:"dir"`
	HTML bool   `mapstructure:"html"`
}

// LLMConfig selects the completion provider. APIKey may reference ${ENV_VAR}.
type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type AuthorConfig struct {
	// Model overrides llm.model for section writing when set.
	Model  string `mapstructure:"model"`
	Review bool   `mapstructure:"review"`
}

type InputConfig struct {
	// MaxAttempts bounds the audience question; 0 keeps asking.
	MaxAttempts int `mapstructure:"max_attempts"`
}

type ServerConfig struct {
	Addr       string        `mapstructure:"addr"`
	JobTimeout time.Duration `mapstructure:"job_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Output:    OutputConfig{Dir: "output", HTML: true},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			APIKey:   "${OPENAI_API_KEY}",
			Timeout:  2 * time.Minute,
		},
		Author: AuthorConfig{Review: true},
		Server: ServerConfig{Addr: ":8000", JobTimeout: 30 * time.Minute},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.html", d.Output.HTML)
	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("author.model", d.Author.Model)
	v.SetDefault("author.review", d.Author.Review)
	v.SetDefault("input.max_attempts", d.Input.MaxAttempts)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.job_timeout", d.Server.JobTimeout)
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	v *viper.Viper

	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager loads configuration from cfgFile, or from the default search
// path when cfgFile is empty. A missing default file is not an error.
func NewManager(cfgFile string) (*Manager, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("guide-creator")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "guide-creator"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	m := &Manager{v: v}
	cfg, err := m.load()
	if err != nil {
		return nil, err
	}
	m.config = cfg
	return m, nil
}

func (m *Manager) load() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.LLM.APIKey = ResolveEnvVars(cfg.LLM.APIKey)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration. Callers must not modify it.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// FileUsed returns the config file path, or "" when only defaults apply.
func (m *Manager) FileUsed() string {
	return m.v.ConfigFileUsed()
}

// OnChange registers a callback for reloaded configuration.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// WatchConfig reloads the file on change. An invalid edit keeps the
// previous configuration and is reported to onError.
func (m *Manager) WatchConfig(onError func(error)) {
	m.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := m.load()
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reloading %s: %w", e.Name, err))
			}
			return
		}

		m.mu.Lock()
		m.config = cfg
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	m.v.WatchConfig()
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai", "deepseek", "mock":
	default:
		return fmt.Errorf("llm.provider %q not supported (openai, deepseek, mock)", c.LLM.Provider)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q not supported (text, json)", c.LogFormat)
	}
	if c.Output.Dir == "" {
		return errors.New("output.dir is required")
	}
	if c.Input.MaxAttempts < 0 {
		return errors.New("input.max_attempts must not be negative")
	}
	return nil
}

// MarshalYAML renders durations as strings such as "2m0s" so the output
// can be read back by NewManager.
func (c Config) MarshalYAML() (any, error) {
	return map[string]any{
		"log_level":  c.LogLevel,
		"log_format": c.LogFormat,
		"output": map[string]any{
			"dir":  c.Output.Dir,
			"html": c.Output.HTML,
		},
		"llm": map[string]any{
			"provider": c.LLM.Provider,
			"model":    c.LLM.Model,
			"api_key":  c.LLM.APIKey,
			"base_url": c.LLM.BaseURL,
			"timeout":  c.LLM.Timeout.String(),
		},
		"author": map[string]any{
			"model":  c.Author.Model,
			"review": c.Author.Review,
		},
		"input": map[string]any{
			"max_attempts": c.Input.MaxAttempts,
		},
		"server": map[string]any{
			"addr":        c.Server.Addr,
			"job_timeout": c.Server.JobTimeout.String(),
		},
	}, nil
}

// AuthorModel is the model used for section writing.
func (c *Config) AuthorModel() string {
	if c.Author.Model != "" {
		return c.Author.Model
	}
	return c.LLM.Model
}

var envRefPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	return envRefPattern.ReplaceAllStringFunc(value, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

// WriteDefault writes the default configuration as YAML to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}
	header := []byte(`# guide-creator configuration
# llm.api_key uses ${ENV_VAR} syntax to reference environment variables.
# Every key can be overridden with GUIDE_CREATOR_<SECTION>_<KEY>.

`)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	return os.WriteFile(path, append(header, data...), 0o644)
}
