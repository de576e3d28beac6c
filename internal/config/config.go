package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	AI       AIConfig       `mapstructure:"ai"       validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// AIConfig contains the multi-provider LLM proxy settings.
//
// API keys are deliberately NOT validated as required: a deployment may run
// with any subset of providers configured. An adapter whose key is absent
// fails at call time with a "provider not configured" error instead of
// failing process startup.
type AIConfig struct {
	DefaultProvider string `mapstructure:"default_provider" validate:"required,oneof=deepseek openai grok qwen google"`

	DeepSeek ProviderConfig `mapstructure:"deepseek"`
	OpenAI   ProviderConfig `mapstructure:"openai"`
	Grok     ProviderConfig `mapstructure:"grok"`
	Qwen     ProviderConfig `mapstructure:"qwen"`
	Google   ProviderConfig `mapstructure:"google"`
}

// ProviderConfig holds the per-provider connection settings.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}
