package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
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

// AuthConfig contains all authentication settings.
type AuthConfig struct {
	// TokenSecret signs bearer tokens. Required, no default: a baked-in
	// secret would make every deployment forgeable.
	TokenSecret string `mapstructure:"token_secret" validate:"required,min=32"`

	// TokenAlgorithm selects the HMAC signing method.
	TokenAlgorithm string `mapstructure:"token_algorithm" validate:"required,oneof=HS256 HS384 HS512"`

	// TokenLifetimeMinutes bounds how long an issued token is accepted.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// BcryptCost tunes password hashing expense. 0 means the bcrypt
	// library default.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}
