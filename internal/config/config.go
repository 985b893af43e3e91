package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	NewRelic   NewRelicConfig
	Auth       AuthConfig
	Maps       MapsConfig
	Broker     BrokerConfig
	Logger     LoggerConfig
	Migrations MigrationsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins []string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the key/value connection string used by database/sql.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// URL returns the postgres:// form expected by golang-migrate.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// AuthConfig holds bearer token verification settings.
type AuthConfig struct {
	JWTSecret string
}

// MapsConfig holds routing provider settings.
type MapsConfig struct {
	APIKey   string
	Region   string
	Language string
	Timeout  time.Duration
}

// BrokerConfig holds RabbitMQ settings. An empty URL disables publishing.
type BrokerConfig struct {
	URL      string
	Exchange string
}

// LoggerConfig holds logger settings.
type LoggerConfig struct {
	ServiceName string
	Level       string
}

// MigrationsConfig holds schema migration settings.
type MigrationsConfig struct {
	Path    string
	Enabled bool
}

// Load loads configuration from a .env file (when present) and the environment.
func Load() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		Server: ServerConfig{
			Port:         cast.ToString(getOrReturnDefault("SERVER_PORT", "8080")),
			ReadTimeout:  cast.ToDuration(getOrReturnDefault("SERVER_READ_TIMEOUT", 10*time.Second)),
			WriteTimeout: cast.ToDuration(getOrReturnDefault("SERVER_WRITE_TIMEOUT", 10*time.Second)),
			AllowOrigins: cast.ToStringSlice(getOrReturnDefault("CORS_ALLOW_ORIGINS", []string{"*"})),
		},
		Database: DatabaseConfig{
			Host:     cast.ToString(getOrReturnDefault("DB_HOST", "localhost")),
			Port:     cast.ToString(getOrReturnDefault("DB_PORT", "5432")),
			User:     cast.ToString(getOrReturnDefault("DB_USER", "postgres")),
			Password: cast.ToString(getOrReturnDefault("DB_PASSWORD", "postgres")),
			DBName:   cast.ToString(getOrReturnDefault("DB_NAME", "rideshare")),
			SSLMode:  cast.ToString(getOrReturnDefault("DB_SSLMODE", "disable")),
		},
		Redis: RedisConfig{
			Addr:     cast.ToString(getOrReturnDefault("REDIS_ADDR", "localhost:6379")),
			Password: cast.ToString(getOrReturnDefault("REDIS_PASSWORD", "")),
			DB:       cast.ToInt(getOrReturnDefault("REDIS_DB", 0)),
		},
		NewRelic: NewRelicConfig{
			AppName:    cast.ToString(getOrReturnDefault("NEW_RELIC_APP_NAME", "rideshare-service")),
			LicenseKey: cast.ToString(getOrReturnDefault("NEW_RELIC_LICENSE_KEY", "")),
			Enabled:    cast.ToBool(getOrReturnDefault("NEW_RELIC_ENABLED", false)),
		},
		Auth: AuthConfig{
			JWTSecret: cast.ToString(getOrReturnDefault("JWT_SECRET", "")),
		},
		Maps: MapsConfig{
			APIKey:   cast.ToString(getOrReturnDefault("GOOGLE_MAPS_API_KEY", "")),
			Region:   cast.ToString(getOrReturnDefault("MAPS_REGION", "in")),
			Language: cast.ToString(getOrReturnDefault("MAPS_LANGUAGE", "en")),
			Timeout:  cast.ToDuration(getOrReturnDefault("MAPS_TIMEOUT", 5*time.Second)),
		},
		Broker: BrokerConfig{
			URL:      cast.ToString(getOrReturnDefault("RABBITMQ_URL", "")),
			Exchange: cast.ToString(getOrReturnDefault("RABBITMQ_EXCHANGE", "rideshare.events")),
		},
		Logger: LoggerConfig{
			ServiceName: cast.ToString(getOrReturnDefault("SERVICE_NAME", "rideshare")),
			Level:       cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "info")),
		},
		Migrations: MigrationsConfig{
			Path:    cast.ToString(getOrReturnDefault("MIGRATIONS_PATH", "migrations")),
			Enabled: cast.ToBool(getOrReturnDefault("MIGRATIONS_ENABLED", true)),
		},
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Maps.APIKey == "" {
		return fmt.Errorf("GOOGLE_MAPS_API_KEY is required")
	}
	if c.Maps.Timeout <= 0 {
		return fmt.Errorf("MAPS_TIMEOUT must be positive, got %s", c.Maps.Timeout)
	}
	return nil
}

func getOrReturnDefault(key string, defaultValue any) any {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
