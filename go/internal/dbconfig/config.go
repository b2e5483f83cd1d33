package dbconfig

import (
	"fmt"
	"net/url"

	"github.com/kelseyhightower/envconfig"
)

// Config holds Postgres connection settings.
type Config struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Database string `envconfig:"DB_NAME" default:"kickoff"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// NewConfigFromEnv reads DB_* environment variables (with defaults).
func NewConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process DB_* environment: %w", err)
	}
	return cfg, nil
}

// DSN returns the Postgres connection URL.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Redacted is the DSN target without credentials, for logs
func (c Config) Redacted() string {
	return fmt.Sprintf("%s@%s:%d/%s", c.User, c.Host, c.Port, c.Database)
}
