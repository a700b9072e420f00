package config

import (
	"os"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Session
	SessionSecret string // Used for cookie encryption (min 32 chars)
	RedisURL      string // Optional session storage, e.g. "redis://localhost:6379/0"

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json or console

	// Analysis
	AnalysisLatency  time.Duration // Simulated delay before results appear
	ResultSource     string        // "mock" (fixed in-view rows) or "adapter" (keyword source)
	ViewIdleTTL      time.Duration // Views idle longer than this are torn down
	ViewReapInterval time.Duration

	// Display
	DisplayLocale string // BCP 47 tag used for digit grouping, e.g. "ko"
	CPCCurrency   string // ISO 4217 code, e.g. "KRW"

	// Features
	MetricsEnabled bool

	// Site Branding
	SiteTitle   string // env: SITE_TITLE
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Result sources
const (
	ResultSourceMock    = "mock"
	ResultSourceAdapter = "adapter"
)

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:           getEnv("ENV", "development"),
		ServerAddr:    getEnv("SERVER_ADDR", ":3000"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:3000"),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		RedisURL:      getEnv("REDIS_URL", ""),
		CORSOrigins:   getEnv("CORS_ORIGINS", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),

		AnalysisLatency:  getDuration("ANALYSIS_LATENCY", time.Second),
		ResultSource:     getEnv("RESULT_SOURCE", ResultSourceMock),
		ViewIdleTTL:      getPositiveDuration("VIEW_IDLE_TTL", 30*time.Minute),
		ViewReapInterval: getPositiveDuration("VIEW_REAP_INTERVAL", time.Minute),

		DisplayLocale:  getEnv("DISPLAY_LOCALE", "ko"),
		CPCCurrency:    getEnv("CPC_CURRENCY", "KRW"),
		MetricsEnabled: getEnv("METRICS_ENABLED", "true") != "false",

		SiteTitle:   getEnv("SITE_TITLE", "🔑 황금키워드 자동 분석기"),
		SiteTagline: getEnv("SITE_TAGLINE", "결과 패널은 샘플 데이터입니다. 실제 데이터 소스는 이후 연동됩니다."),
		SiteFooter:  getEnv("SITE_FOOTER", "v0.3 · UI + 입력 검증 + 샘플 결과 표시"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getDuration parses a Go duration from the environment, falling back on absence or parse errors.
func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// getPositiveDuration is getDuration for settings where zero is meaningless, such as ticker intervals.
func getPositiveDuration(key string, fallback time.Duration) time.Duration {
	if d := getDuration(key, fallback); d > 0 {
		return d
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// UsesAdapter reports whether views draw results from the keyword source adapter.
func (c *Config) UsesAdapter() bool {
	return c.ResultSource == ResultSourceAdapter
}
