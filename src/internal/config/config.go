// Package config loads service configuration from an optional YAML file
// and REFEREE_* environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime knob. Zero values are replaced by defaults.
type Config struct {
	Listen           string        `mapstructure:"listen" yaml:"listen"`
	APIEndpoint      string        `mapstructure:"api_endpoint" yaml:"api_endpoint"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`
	FetchConcurrency int           `mapstructure:"fetch_concurrency" yaml:"fetch_concurrency"`
	MaxBodyBytes     int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	ExtraDenylist    []string      `mapstructure:"extra_denylist" yaml:"extra_denylist,omitempty"`
	LogLevel         string        `mapstructure:"log_level" yaml:"log_level"`
}

// Load reads path (optional; "" means defaults + env only).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen", ":8000")
	v.SetDefault("api_endpoint", "https://www.wikidata.org/w/api.php")
	v.SetDefault("fetch_timeout", 10*time.Second)
	v.SetDefault("fetch_concurrency", 16)
	v.SetDefault("max_body_bytes", int64(2<<20))
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("REFEREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
