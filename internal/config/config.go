package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// RateLimit is the number of requests allowed per rate-limit window
	// for a single derived identity key.
	RateLimit int `mapstructure:"rate_limit" validate:"required,gt=0"`

	// RateWindowSeconds is the length of the fixed rate-limit window.
	RateWindowSeconds int `mapstructure:"rate_window_seconds" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication settings.
type AuthConfig struct {
	JWTSecret         string `mapstructure:"jwt_secret"          validate:"required,min=32"`
	TokenLifetimeDays int    `mapstructure:"token_lifetime_days" validate:"required,gt=0"`
}

// LLMConfig contains settings for the transcript summarizer. The Gemini key
// is optional; without it the heuristic summarizer is used.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name"`
}
