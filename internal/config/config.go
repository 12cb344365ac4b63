package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Ollama BackendConfig
	Runner BackendConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BackendConfig describes one chat backend: where it lives, which model to
// ask for, and the credential to present. Local runners usually ignore the
// API key, so a placeholder value is acceptable.
type BackendConfig struct {
	BaseURL string
	Model   string
	APIKey  string
}

// Load reads configuration from environment variables with defaults.
// Configuration is read once at process start and never reloaded.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "9999")
	v.SetDefault("read_timeout", 60*time.Second)
	v.SetDefault("write_timeout", 60*time.Second)

	v.SetDefault("ollama_base_url", "http://localhost:11434")
	v.SetDefault("ollama_model", "llama3.2")

	// Docker Model Runner exposes an OpenAI-compatible API on this path.
	v.SetDefault("runner_base_url", "http://localhost:12434/engines/v1")
	v.SetDefault("runner_model", "ai/llama3.2")
	v.SetDefault("runner_api_key", "runner")

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("host"),
			Port:         v.GetString("port"),
			ReadTimeout:  v.GetDuration("read_timeout"),
			WriteTimeout: v.GetDuration("write_timeout"),
		},
		Ollama: BackendConfig{
			BaseURL: v.GetString("ollama_base_url"),
			Model:   v.GetString("ollama_model"),
		},
		Runner: BackendConfig{
			BaseURL: v.GetString("runner_base_url"),
			Model:   v.GetString("runner_model"),
			APIKey:  v.GetString("runner_api_key"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Ollama.BaseURL == "" {
		return fmt.Errorf("OLLAMA_BASE_URL must not be empty")
	}
	if c.Ollama.Model == "" {
		return fmt.Errorf("OLLAMA_MODEL must not be empty")
	}
	if c.Runner.BaseURL == "" {
		return fmt.Errorf("RUNNER_BASE_URL must not be empty")
	}
	if c.Runner.Model == "" {
		return fmt.Errorf("RUNNER_MODEL must not be empty")
	}
	return nil
}
