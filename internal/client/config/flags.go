package config

import (
	"github.com/dmitrijs2005/myblog/internal/flagx"
	"github.com/spf13/pflag"
)

var knownFlags = []string{
	"--api", "--db", "--timeout", "--log-level", "--log-format", "--ephemeral",
	"-h", "--help",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	--api string         GraphQL endpoint URL
//	--db string          session database file
//	--timeout duration   per-request timeout, e.g. 5s
//	--log-level string   debug|info|warn|error
//	--log-format string  text|json
//	--ephemeral          keep the session in memory only
//
// -c/--config is handled by flagx.ConfigFileFlag before this runs and is
// filtered out here. -h/--help yields pflag.ErrHelp.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := pflag.NewFlagSet("myblog", pflag.ContinueOnError)
	fs.StringVar(&cfg.GraphQLAPI, "api", cfg.GraphQLAPI, "GraphQL endpoint URL")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "session database file")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text|json")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "keep the session in memory only")
	fs.StringP("config", "c", "", "config file (.json, .jsonc, .yaml)")

	return fs.Parse(args)
}
