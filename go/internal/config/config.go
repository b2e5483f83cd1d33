package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mcdev12/kickoff/go/clients/football_api_client"
	"github.com/mcdev12/kickoff/go/internal/dbconfig"
	"github.com/mcdev12/kickoff/go/internal/progress"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Config holds all application configuration
type Config struct {
	// Upstream football provider (api-sports v3)
	APIFootballKey      string        `envconfig:"API_FOOTBALL_KEY"`
	APIFootballBaseURL  string        `envconfig:"API_FOOTBALL_BASE_URL" default:"https://v3.football.api-sports.io"`
	APIFootballRapidAPI bool          `envconfig:"API_FOOTBALL_USE_RAPIDAPI" default:"false"`
	UpstreamTimeout     time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"30s"`

	// Geocoder (any Nominatim compatible search API)
	GeocoderBaseURL string        `envconfig:"GEOCODER_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	GeocoderAPIKey  string        `envconfig:"GEOCODER_API_KEY"`
	GeocoderTimeout time.Duration `envconfig:"GEOCODER_TIMEOUT" default:"10s"`
	GeocodeCacheTTL time.Duration `envconfig:"GEOCODE_CACHE_TTL" default:"720h"`

	// Pacing
	UpstreamInterval time.Duration `envconfig:"UPSTREAM_RATE_INTERVAL" default:"1s"`
	GeocoderInterval time.Duration `envconfig:"GEOCODER_RATE_INTERVAL" default:"1100ms"`
	LeaguePacing     time.Duration `envconfig:"LEAGUE_PACING" default:"6s"`

	// Seasons
	SeasonCutoverMonth int `envconfig:"SEASON_CUTOVER_MONTH" default:"7"`

	// Bulk input
	SeedFile      string   `envconfig:"SEED_FILE"`
	DiscoverTypes []string `envconfig:"DISCOVER_TYPES"`

	// Optional infrastructure, disabled when empty
	RedisURL          string `envconfig:"REDIS_URL"`
	NatsURL           string `envconfig:"NATS_URL"`
	NatsStream        string `envconfig:"NATS_STREAM" default:"KICKOFF_PROGRESS"`
	NatsSubjectPrefix string `envconfig:"NATS_SUBJECT_PREFIX" default:"kickoff.progress"`

	// Admin server
	AdminPort      int      `envconfig:"ADMIN_PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Scheduler
	RefreshCron     string `envconfig:"REFRESH_CRON"`
	RefreshDiscover bool   `envconfig:"REFRESH_DISCOVER" default:"false"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DB dbconfig.Config `ignored:"true"`
}

// Load reads the .env file when there is one, then the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	db, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}
	cfg.DB = db

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.APIFootballKey) == "" {
		errs = append(errs, errors.New("API_FOOTBALL_KEY is required"))
	}
	if c.SeasonCutoverMonth < 1 || c.SeasonCutoverMonth > 12 {
		errs = append(errs, fmt.Errorf("SEASON_CUTOVER_MONTH must be 1-12, got %d", c.SeasonCutoverMonth))
	}
	for name, d := range map[string]time.Duration{
		"UPSTREAM_RATE_INTERVAL": c.UpstreamInterval,
		"GEOCODER_RATE_INTERVAL": c.GeocoderInterval,
		"LEAGUE_PACING":          c.LeaguePacing,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
	}
	if c.RefreshCron != "" {
		if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
			errs = append(errs, fmt.Errorf("REFRESH_CRON: %w", err))
		}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	return errors.Join(errs...)
}

// MustLoad loads configuration or exits on error
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// Upstream returns the football provider client settings
func (c *Config) Upstream() football_api_client.Config {
	return football_api_client.Config{
		BaseURL:     c.APIFootballBaseURL,
		APIKey:      c.APIFootballKey,
		UseRapidAPI: c.APIFootballRapidAPI,
		Timeout:     c.UpstreamTimeout,
	}
}

// JetStream returns the progress publisher settings
func (c *Config) JetStream() progress.JetStreamConfig {
	js := progress.DefaultJetStreamConfig()
	js.URL = c.NatsURL
	js.StreamName = c.NatsStream
	js.SubjectPrefix = c.NatsSubjectPrefix
	return js
}

// Cutover is the month a new season starts
func (c *Config) Cutover() time.Month {
	return time.Month(c.SeasonCutoverMonth)
}

// Level returns the parsed log level, info when unparseable
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
