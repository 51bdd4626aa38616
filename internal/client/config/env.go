package config

const (
	EnvGraphQLAPI = "MYBLOG_GRAPHQL_API"
	EnvDBPath     = "MYBLOG_DB"
	EnvLogLevel   = "MYBLOG_LOG_LEVEL"
)

// parseEnv overlays cfg with non-empty environment variables.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvGraphQLAPI); ok && v != "" {
		cfg.GraphQLAPI = v
	}
	if v, ok := lookup(EnvDBPath); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}
