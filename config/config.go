// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Player sources.
const (
	SourcePostgres = "postgres"
	SourceSupabase = "supabase"
)

// Config holds all application configuration.
type Config struct {
	// Source selects where player rows are fetched from: SourcePostgres or SourceSupabase.
	Source string

	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// Supabase REST gateway.
	SupabaseURL string
	SupabaseKey string

	// Players table and per-session fetch bounds.
	PlayersTable  string
	FetchLimit    int
	MaxFetchLimit int

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// MySQL, read only by cmd/import.
	MySQLDSN string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func load() (*Config, error) {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PLAYERS_TABLE", "plp")
	v.SetDefault("FETCH_LIMIT", 1000)
	v.SetDefault("MAX_FETCH_LIMIT", 5000)
	v.SetDefault("PORT", ":8000")
	v.SetDefault("DEBUG", false)

	cfg := &Config{
		Source:        strings.ToLower(strings.TrimSpace(v.GetString("SOURCE"))),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		DBUser:        v.GetString("DB_USER"),
		DBPass:        v.GetString("DB_PASS"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSLMODE"),
		SupabaseURL:   strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
		SupabaseKey:   v.GetString("SUPABASE_KEY"),
		PlayersTable:  v.GetString("PLAYERS_TABLE"),
		FetchLimit:    v.GetInt("FETCH_LIMIT"),
		MaxFetchLimit: v.GetInt("MAX_FETCH_LIMIT"),
		Debug:         v.GetBool("DEBUG"),
		Port:          v.GetString("PORT"),
		TLSDomains:    splitTrimmed(v.GetString("TLS_DOMAINS")),
		MySQLDSN:      v.GetString("MYSQL_DSN"),
	}

	if cfg.Source == "" {
		cfg.Source = SourcePostgres
		if cfg.SupabaseURL != "" {
			cfg.Source = SourceSupabase
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// HasPostgres reports whether enough is set to open a PostgreSQL connection.
func (c *Config) HasPostgres() bool {
	return c.DatabaseURL != "" || c.DBPass != ""
}

func (c *Config) validate() error {
	var errs []error

	switch c.Source {
	case SourcePostgres:
		if !c.HasPostgres() {
			errs = append(errs, errors.New("DATABASE_URL or DB_PASS must be set"))
		}
	case SourceSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			errs = append(errs, errors.New("SUPABASE_URL and SUPABASE_KEY must be set"))
		}
	default:
		errs = append(errs, fmt.Errorf("SOURCE must be %q or %q, got %q", SourcePostgres, SourceSupabase, c.Source))
	}

	if strings.TrimSpace(c.PlayersTable) == "" {
		errs = append(errs, errors.New("PLAYERS_TABLE must not be empty"))
	}
	if c.FetchLimit <= 0 {
		errs = append(errs, errors.New("FETCH_LIMIT must be positive"))
	}
	if c.MaxFetchLimit < c.FetchLimit {
		errs = append(errs, errors.New("MAX_FETCH_LIMIT must not be below FETCH_LIMIT"))
	}

	return errors.Join(errs...)
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
