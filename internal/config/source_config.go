package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SourceConfig configures the keyword source adapter.
// Read from an optional YAML file and overridable with SOURCE_* environment variables.
type SourceConfig struct {
	Policy          string        `mapstructure:"policy"`           // google, naver or merged
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"` // per-fetch deadline
	FallbackKeyword string        `mapstructure:"fallback_keyword"` // base used when the seed is blank
}

// Source config defaults
const (
	DefaultSourcePolicy    = "google"
	DefaultProviderTimeout = 5 * time.Second
	DefaultFallbackKeyword = "테스트"
)

// LoadSourceConfig loads the keyword source configuration.
// Path is determined by CONFIG_FILE, defaulting to "keywordsource.yaml".
// A missing file is not an error; defaults and environment apply.
func LoadSourceConfig() (*SourceConfig, error) {
	return LoadSourceConfigFrom(viper.New(), getEnv("CONFIG_FILE", "keywordsource.yaml"))
}

// LoadSourceConfigFrom loads the source configuration into v from path.
// Callers may pre-bind flags on v before loading.
func LoadSourceConfigFrom(v *viper.Viper, path string) (*SourceConfig, error) {
	v.SetDefault("policy", DefaultSourcePolicy)
	v.SetDefault("provider_timeout", DefaultProviderTimeout)
	v.SetDefault("fallback_keyword", DefaultFallbackKeyword)

	v.SetEnvPrefix("SOURCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read source config %s: %w", path, err)
			}
		}
	}

	var cfg SourceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode source config: %w", err)
	}

	cfg.Policy = strings.ToLower(strings.TrimSpace(cfg.Policy))
	if cfg.Policy == "" {
		cfg.Policy = DefaultSourcePolicy
	}
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = DefaultProviderTimeout
	}
	if strings.TrimSpace(cfg.FallbackKeyword) == "" {
		cfg.FallbackKeyword = DefaultFallbackKeyword
	}

	return &cfg, nil
}
