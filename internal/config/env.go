package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envOverrides carries the secrets and knobs that may be supplied through the
// environment instead of the config file. Env values win over file values.
type envOverrides struct {
	TMDBAPIKey string `env:"TMDB_API_KEY"`
	LLMAPIKey  string `env:"CINESCOUT_LLM_API_KEY"`
	LLMModel   string `env:"CINESCOUT_LLM_MODEL"`
	Bind       string `env:"CINESCOUT_BIND"`
	LogLevel   string `env:"CINESCOUT_LOG_LEVEL"`
}

func (c *Config) applyEnvOverrides() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse env overrides: %w", err)
	}
	if v := strings.TrimSpace(overrides.TMDBAPIKey); v != "" {
		c.TMDB.APIKey = v
	}
	if v := strings.TrimSpace(overrides.LLMAPIKey); v != "" {
		c.LLM.APIKey = v
	}
	if v := strings.TrimSpace(overrides.LLMModel); v != "" {
		c.LLM.Model = v
	}
	if v := strings.TrimSpace(overrides.Bind); v != "" {
		c.Server.Bind = v
	}
	if v := strings.TrimSpace(overrides.LogLevel); v != "" {
		c.Logging.Level = v
	}
	return nil
}
