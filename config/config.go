package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"fomezero/query"
)

// Data source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config holds all configuration for the server.
// Values come from the YAML file when it exists; environment variables
// override them. DATABASE_URL is only read from the environment.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"3003"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`

	// AllowedOriginsStr is a comma-separated list of CORS origins.
	AllowedOriginsStr string   `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:"http://localhost:3000,http://localhost:5173,http://localhost:5174"`
	AllowedOrigins    []string `yaml:"-"`

	Data  DataConfig  `yaml:"data"`
	Views ViewsConfig `yaml:"views"`

	// DirectoryFile optionally overrides country names and rating colors.
	DirectoryFile string `yaml:"directory_file" env:"DIRECTORY_FILE" env-default:""`

	// MatchPolicyStr is "exact" or "substring".
	MatchPolicyStr string            `yaml:"match_policy" env:"MATCH_POLICY" env-default:"exact"`
	MatchPolicy    query.MatchPolicy `yaml:"-"`
}

// DataConfig selects where the restaurant table is read from.
type DataConfig struct {
	Source      string `yaml:"source" env:"DATA_SOURCE" env-default:"csv"`
	Path        string `yaml:"path" env:"DATA_PATH" env-default:"dataset/zomato.csv"`
	DatabaseURL string `yaml:"-" env:"DATABASE_URL"` // Secret - not in YAML
	Table       string `yaml:"table" env:"DATA_TABLE" env-default:"zomato"`
}

// DSN returns the data source name for the SQL sources. A SQLite source
// falls back to Path when no DATABASE_URL is set.
func (d *DataConfig) DSN() string {
	if d.Source == SourceSQLite && d.DatabaseURL == "" {
		return d.Path
	}
	return d.DatabaseURL
}

// ViewsConfig holds the defaults of the dashboard views.
type ViewsConfig struct {
	DefaultCountries int     `yaml:"default_countries" env:"VIEWS_DEFAULT_COUNTRIES" env-default:"6"`
	DefaultCuisines  int     `yaml:"default_cuisines" env:"VIEWS_DEFAULT_CUISINES" env-default:"12"`
	DefaultLimit     int     `yaml:"default_limit" env:"VIEWS_DEFAULT_LIMIT" env-default:"10"`
	MaxLimit         int     `yaml:"max_limit" env:"VIEWS_MAX_LIMIT" env-default:"20"`
	TopCities        int     `yaml:"top_cities" env:"VIEWS_TOP_CITIES" env-default:"10"`
	BestCuisines     int     `yaml:"best_cuisines" env:"VIEWS_BEST_CUISINES" env-default:"5"`
	RatedAbove       float64 `yaml:"rated_above" env:"VIEWS_RATED_ABOVE" env-default:"4.0"`
	RatedBelow       float64 `yaml:"rated_below" env:"VIEWS_RATED_BELOW" env-default:"2.5"`
}

// Load reads configuration from path with environment variable overrides. A
// missing file is not an error; the environment and defaults are used alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := cfg.parseComplexFields(); err != nil {
		return nil, fmt.Errorf("failed to parse config fields: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) parseComplexFields() error {
	c.AllowedOrigins = splitList(c.AllowedOriginsStr)

	policy, err := query.ParseMatchPolicy(c.MatchPolicyStr)
	if err != nil {
		return err
	}
	c.MatchPolicy = policy
	return nil
}

func (c *Config) validate() error {
	switch c.Data.Source {
	case SourceCSV:
		if c.Data.Path == "" {
			return errors.New("data.path is required for the csv source")
		}
	case SourcePostgres:
		if c.Data.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres source")
		}
	case SourceSQLite:
		if c.Data.DSN() == "" {
			return errors.New("data.path or DATABASE_URL is required for the sqlite source")
		}
	default:
		return fmt.Errorf("unknown data source %q", c.Data.Source)
	}
	if c.Data.Source != SourceCSV && c.Data.Table == "" {
		return errors.New("data.table is required for SQL sources")
	}

	v := c.Views
	if v.MaxLimit < 1 {
		return fmt.Errorf("views.max_limit must be positive, got %d", v.MaxLimit)
	}
	if v.DefaultLimit < 1 || v.DefaultLimit > v.MaxLimit {
		return fmt.Errorf("views.default_limit must be between 1 and %d, got %d", v.MaxLimit, v.DefaultLimit)
	}
	if v.DefaultCountries < 1 || v.DefaultCuisines < 1 {
		return errors.New("views.default_countries and views.default_cuisines must be positive")
	}
	return nil
}

// IsDevelopment reports whether the server runs locally.
func (c *Config) IsDevelopment() bool {
	switch c.Env {
	case "local", "development", "dev":
		return true
	}
	return false
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
