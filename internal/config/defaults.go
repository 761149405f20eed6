package config

const (
	defaultBind            = "127.0.0.1:8385"
	defaultLockFile        = "~/.local/share/cinescout/cinescout.lock"
	defaultTMDBBaseURL     = "https://api.themoviedb.org/3"
	defaultTMDBImageBase   = "https://image.tmdb.org/t/p/w500"
	defaultPlaceholderURL  = "https://via.placeholder.com/500x750?text=No+Image"
	defaultTMDBLanguage    = "en-US"
	defaultTMDBMaxResults  = 50
	defaultTMDBPaceMillis  = 1000
	defaultRetryAttempts   = 3
	defaultRetryDelaySecs  = 2
	defaultTMDBTimeoutSecs = 5
	defaultLLMBaseURL      = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel        = "meta-llama/llama-3-70b-instruct"
	defaultLLMReferer      = "https://github.com/cinescout/cinescout"
	defaultLLMTitle        = "Cinescout Chat"
	defaultLLMTimeoutSecs  = 60
	defaultParser          = "strict"
	defaultSessionBackend  = "memory"
	defaultSessionPath     = "~/.local/share/cinescout/sessions.db"
	defaultSessionTTLMins  = 60
	defaultSessionMaxTurns = 40
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind:     defaultBind,
			LockFile: defaultLockFile,
		},
		TMDB: TMDB{
			BaseURL:        defaultTMDBBaseURL,
			ImageBaseURL:   defaultTMDBImageBase,
			PlaceholderURL: defaultPlaceholderURL,
			Language:       defaultTMDBLanguage,
			MaxResults:     defaultTMDBMaxResults,
			PaceMillis:     defaultTMDBPaceMillis,
			RetryAttempts:  defaultRetryAttempts,
			RetryDelaySecs: defaultRetryDelaySecs,
			TimeoutSeconds: defaultTMDBTimeoutSecs,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSecs,
		},
		Chat: Chat{
			Parser: defaultParser,
		},
		Sessions: Sessions{
			Backend:    defaultSessionBackend,
			Path:       defaultSessionPath,
			TTLMinutes: defaultSessionTTLMins,
			MaxTurns:   defaultSessionMaxTurns,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
