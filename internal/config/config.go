// Package config provides configuration loading and structs for vaultwise.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// APIKeyEnv is the environment variable consulted when llm.api_key is empty.
const APIKeyEnv = "GEMINI_API_KEY"

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Vault     VaultConfig     `yaml:"vault"`
	LLM       LLMConfig       `yaml:"llm"`
	Assistant AssistantConfig `yaml:"assistant"`
	Server    ServerConfig    `yaml:"server"`
	Watch     WatchConfig     `yaml:"watch"`
}

// VaultConfig holds the default vault location and traversal exclusions.
type VaultConfig struct {
	Path        string   `yaml:"path"`
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// LLMConfig holds text-completion provider settings.
type LLMConfig struct {
	Provider          string `yaml:"provider"`
	Model             string `yaml:"model"`
	APIKey            string `yaml:"api_key"`
	BaseURL           string `yaml:"base_url"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
	Burst             int    `yaml:"burst"`
	// Timeout bounds a single completion request. Zero leaves requests bounded only by
	// the caller's context.
	Timeout time.Duration `yaml:"timeout"`
}

// AssistantConfig holds the context-selection and sampling limits used by the assistant.
type AssistantConfig struct {
	QAMaxNotes          int           `yaml:"qa_max_notes"`
	QAFallbackNotes     int           `yaml:"qa_fallback_notes"`
	QANoteChars         int           `yaml:"qa_note_chars"`
	SummaryMaxNotes     int           `yaml:"summary_max_notes"`
	FolderSampleSize    int           `yaml:"folder_sample_size"`
	ThemeSampleSize     int           `yaml:"theme_sample_size"`
	ReportNoteChars     int           `yaml:"report_note_chars"`
	CategoryTTL         time.Duration `yaml:"category_ttl"`
	CategorySamples     int           `yaml:"category_samples"`
	CategoryDepth       int           `yaml:"category_depth"`
	CategorySampleChars int           `yaml:"category_sample_chars"`
	PatternExamples     int           `yaml:"pattern_examples"`
	KeywordRegex        bool          `yaml:"keyword_regex"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// WatchConfig holds vault watch settings for long-running modes.
type WatchConfig struct {
	Enabled  *bool         `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// EnabledOrDefault returns whether to watch the vault; defaults to true when unset.
func (w *WatchConfig) EnabledOrDefault() bool {
	if w.Enabled != nil {
		return *w.Enabled
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	if cfg.Vault.Path != "" {
		cfg.Vault.Path = expandPath(cfg.Vault.Path, filepath.Dir(path))
	}
	return &cfg, nil
}

// LoadOrDefault loads path when it exists and returns a defaulted config otherwise.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{}
		ApplyDefaults(cfg)
		return cfg, nil
	}
	return nil, err
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ResolveAPIKey returns llm.api_key, or the GEMINI_API_KEY environment value when unset.
func (c *LLMConfig) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv(APIKeyEnv)
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir,
// "~/" is the home directory, and other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	path = strings.TrimPrefix(path, "~/")
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
