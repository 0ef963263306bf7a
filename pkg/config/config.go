// Package config resolves runtime configuration from flags, environment
// variables (LOTEIRO_ prefix) and an optional YAML config file, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything the server and CLI need at runtime.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string
	// Token is the API bearer token; empty disables authorization.
	Token string
	// XSD is the path of the pain.001.001.09 schema. Validation is
	// silently skipped when empty or when the file does not exist.
	XSD string
	// Delimiter separates columns in delimited-text batch files.
	Delimiter string
}

// Build resolves configuration. cfgFile may be empty, in which case
// loteiro.yaml is looked up in the working directory; flags may be nil.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":3000")
	v.SetDefault("token", "")
	v.SetDefault("xsd", "pain.001.001.09.xsd")
	v.SetDefault("delimiter", ";")

	v.SetEnvPrefix("LOTEIRO")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("loteiro")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Addr:      v.GetString("addr"),
		Token:     v.GetString("token"),
		XSD:       v.GetString("xsd"),
		Delimiter: v.GetString("delimiter"),
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = ";"
	}
	return cfg, nil
}

// DelimiterRune returns the configured delimiter as a rune, falling back
// to ';' when none is set.
func (c *Config) DelimiterRune() rune {
	if c.Delimiter == "" {
		return ';'
	}
	return []rune(c.Delimiter)[0]
}
