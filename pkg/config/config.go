package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	defaultBaseURL = "http://localhost:11434"
)

// Config holds all runtime configuration for the shell.
type Config struct {
	BaseURL  string `yaml:"base_url"`
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`

	ListTimeout  time.Duration `yaml:"list_timeout"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	MaxRedirects int           `yaml:"max_redirects"`

	WrapWidth      int    `yaml:"wrap_width"`
	PromptTemplate string `yaml:"prompt_template"`

	// RollbackOnLoadFailure restores the previous selection when the server
	// does not confirm a model load.
	RollbackOnLoadFailure bool `yaml:"rollback_on_load_failure"`

	Verbose bool   `yaml:"verbose"`
	LogFile string `yaml:"log_file"`
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		BaseURL:      defaultBaseURL,
		Provider:     ProviderOllama,
		ListTimeout:  time.Second,
		ProbeTimeout: 3 * time.Second,
		MaxRedirects: 10,
		WrapWidth:    72,
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	defaults := DefaultConfig()

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if !strings.Contains(cfg.BaseURL, "://") {
		cfg.BaseURL = "http://" + cfg.BaseURL
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider != ProviderOpenAI {
		cfg.Provider = ProviderOllama
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.LogFile = strings.TrimSpace(cfg.LogFile)

	if cfg.ListTimeout <= 0 {
		cfg.ListTimeout = defaults.ListTimeout
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = defaults.ProbeTimeout
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = defaults.MaxRedirects
	}
	if cfg.WrapWidth <= 0 {
		cfg.WrapWidth = defaults.WrapWidth
	}
	return cfg
}

// Load builds the configuration from defaults, the YAML config file, .env and
// the process environment, in that order.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	path, explicit := FilePath()
	if path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return cfg, err
			}
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return Normalize(cfg), nil
}

// FilePath returns the config file location and whether it was set
// explicitly through COMMIZARD_CONFIG.
func FilePath() (string, bool) {
	if p := strings.TrimSpace(os.Getenv("COMMIZARD_CONFIG")); p != "" {
		return p, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "commizard", "config.yaml"), false
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("OLLAMA_HOST")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("COMMIZARD_PROVIDER")); v != "" {
		cfg.Provider = v
	}
	if v := strings.TrimSpace(os.Getenv("COMMIZARD_API_KEY")); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("COMMIZARD_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("COMMIZARD_VERBOSE")); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COMMIZARD_VERBOSE: %w", err)
		}
		cfg.Verbose = verbose
	}
	if v := strings.TrimSpace(os.Getenv("COMMIZARD_WRAP_WIDTH")); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("COMMIZARD_WRAP_WIDTH: %w", err)
		}
		cfg.WrapWidth = width
	}
	return nil
}
