package domain

// Config represents the main application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Models    ModelsConfig    `mapstructure:"models"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig represents the MCP adapter identity
type ServerConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version" validate:"required"`
}

// ModelsConfig maps each domain to its classifier artifact location.
// Relative file locations are resolved against Dir.
type ModelsConfig struct {
	Dir       string            `mapstructure:"dir" validate:"required"`
	Locations map[string]string `mapstructure:"locations" validate:"required,min=1,dive,keys,required,endkeys,required"`
}

// CacheConfig represents prediction cache configuration
type CacheConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	MaxItems int  `mapstructure:"max_items" validate:"gte=0"`
}

// RateLimitConfig bounds tool calls served by the MCP adapter
type RateLimitConfig struct {
	Enabled   bool    `mapstructure:"enabled"`
	PerSecond float64 `mapstructure:"per_second" validate:"gte=0"`
	Burst     int     `mapstructure:"burst" validate:"gte=0"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}
