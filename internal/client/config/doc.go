// Package config loads runtime configuration for the myblog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or --config. YAML for .yaml/.yml,
//     otherwise JSON with comments.
//  3. Environment: MYBLOG_GRAPHQL_API, MYBLOG_DB, MYBLOG_LOG_LEVEL.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # File schema
//
//	{
//	  // GraphQL endpoint
//	  "graphql_api": "http://localhost:5000/graphql",
//	  "db_path": "/home/me/.config/myblog/storage.db",
//	  "timeout": "10s",
//	  "log_level": "warn",
//	  "log_format": "text",
//	  "ephemeral": false
//	}
//
// Durations accept strings like "10s" or integer nanoseconds.
package config
