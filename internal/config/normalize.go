package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeServer(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizeLLM()
	c.normalizeChat()
	if err := c.normalizeSessions(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeServer() error {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultBind
	}
	var err error
	if strings.TrimSpace(c.Server.LockFile) == "" {
		c.Server.LockFile = defaultLockFile
	}
	if c.Server.LockFile, err = expandPath(c.Server.LockFile); err != nil {
		return fmt.Errorf("server.lock_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.BaseURL = strings.TrimRight(c.TMDB.BaseURL, "/")
	c.TMDB.ImageBaseURL = strings.TrimSpace(c.TMDB.ImageBaseURL)
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultTMDBImageBase
	}
	c.TMDB.PlaceholderURL = strings.TrimSpace(c.TMDB.PlaceholderURL)
	if c.TMDB.PlaceholderURL == "" {
		c.TMDB.PlaceholderURL = defaultPlaceholderURL
	}
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
	if c.TMDB.MaxResults <= 0 {
		c.TMDB.MaxResults = defaultTMDBMaxResults
	}
	if c.TMDB.PaceMillis < 0 {
		c.TMDB.PaceMillis = 0
	}
	if c.TMDB.RetryAttempts <= 0 {
		c.TMDB.RetryAttempts = defaultRetryAttempts
	}
	if c.TMDB.RetryDelaySecs <= 0 {
		c.TMDB.RetryDelaySecs = defaultRetryDelaySecs
	}
	if c.TMDB.TimeoutSeconds <= 0 {
		c.TMDB.TimeoutSeconds = defaultTMDBTimeoutSecs
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSecs
	}
}

func (c *Config) normalizeChat() {
	c.Chat.Parser = strings.ToLower(strings.TrimSpace(c.Chat.Parser))
	if c.Chat.Parser == "" {
		c.Chat.Parser = defaultParser
	}
}

func (c *Config) normalizeSessions() error {
	c.Sessions.Backend = strings.ToLower(strings.TrimSpace(c.Sessions.Backend))
	if c.Sessions.Backend == "" {
		c.Sessions.Backend = defaultSessionBackend
	}
	if strings.TrimSpace(c.Sessions.Path) == "" {
		c.Sessions.Path = defaultSessionPath
	}
	var err error
	if c.Sessions.Path, err = expandPath(c.Sessions.Path); err != nil {
		return fmt.Errorf("sessions.path: %w", err)
	}
	if c.Sessions.TTLMinutes <= 0 {
		c.Sessions.TTLMinutes = defaultSessionTTLMins
	}
	if c.Sessions.MaxTurns <= 0 {
		c.Sessions.MaxTurns = defaultSessionMaxTurns
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
