package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Duration lets config files specify intervals either as strings like "5s"
// or as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var v any
	if err := n.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch x := v.(type) {
	case string:
		dur, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		d.Duration = dur
	case float64:
		d.Duration = time.Duration(x)
	case int:
		d.Duration = time.Duration(x)
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

// fileConfig is a DTO used exclusively for unmarshalling config files.
// Pointers tell "absent" from "zero" so absent keys keep earlier values.
type fileConfig struct {
	GraphQLAPI *string   `json:"graphql_api" yaml:"graphql_api"`
	DBPath     *string   `json:"db_path" yaml:"db_path"`
	Timeout    *Duration `json:"timeout" yaml:"timeout"`
	LogLevel   *string   `json:"log_level" yaml:"log_level"`
	LogFormat  *string   `json:"log_format" yaml:"log_format"`
	Ephemeral  *bool     `json:"ephemeral" yaml:"ephemeral"`
}

// parseFile overlays cfg with the values of a config file. Files ending in
// .yaml or .yml are YAML; anything else is JSON, comments and trailing
// commas allowed.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.GraphQLAPI != nil {
		cfg.GraphQLAPI = *fc.GraphQLAPI
	}
	if fc.DBPath != nil {
		cfg.DBPath = *fc.DBPath
	}
	if fc.Timeout != nil {
		cfg.Timeout = fc.Timeout.Duration
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
	if fc.Ephemeral != nil {
		cfg.Ephemeral = *fc.Ephemeral
	}
	return nil
}
