package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/myblog/internal/client/client"
	"github.com/dmitrijs2005/myblog/internal/filex"
	"github.com/dmitrijs2005/myblog/internal/flagx"
)

// DefaultDBName is the storage file name inside the per-user app directory.
const DefaultDBName = "storage.db"

// Config holds runtime settings for the myblog CLI.
//
// Fields:
//   - GraphQLAPI: URL of the GraphQL endpoint.
//   - DBPath: SQLite file keeping the session between runs.
//   - Timeout: per-request timeout; zero disables it.
//   - LogLevel, LogFormat: diagnostics on stderr ("text" or "json").
//   - Ephemeral: keep the session in memory only.
type Config struct {
	GraphQLAPI string
	DBPath     string
	Timeout    time.Duration
	LogLevel   string
	LogFormat  string
	Ephemeral  bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GraphQLAPI = client.DefaultEndpoint
	c.DBPath = filex.DefaultDataPath(DefaultDBName)
	c.Timeout = 10 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.Ephemeral = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if -c/--config is given), the environment and the
// command-line flags in args. Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigFileFlag(args); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	parseEnv(cfg, os.LookupEnv)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the combined configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.GraphQLAPI)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", c.GraphQLAPI, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api url %q: want http(s)://host/path", c.GraphQLAPI)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if !c.Ephemeral && c.DBPath == "" {
		return fmt.Errorf("db path is empty")
	}
	return nil
}
