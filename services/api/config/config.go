package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/smartkisan/kisan-advisor/internal/completion"
	"github.com/smartkisan/kisan-advisor/internal/weather"
)

// Config holds environment-driven settings for the REST API.
type Config struct {
	Port        int
	BearerToken string
	Env         string
	DatabaseURL string

	Completion completion.Config

	WeatherBaseURL   string
	UpstreamTimeout  time.Duration
	WeatherCacheTTL  time.Duration
	WeatherCacheSize int

	ChatHistoryWindow int
	DefaultDays       int
	DefaultLimit      int
}

// Load reads configuration from environment variables (optionally .env).
// Missing credentials are not errors; the service answers from fallbacks.
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port: 8080,
		Env:  "production",
		Completion: completion.Config{
			Provider:          completion.ProviderOpenRouter,
			OpenRouterModel:   completion.DefaultOpenRouterModel,
			OpenRouterBaseURL: completion.DefaultOpenRouterBaseURL,
			OpenRouterReferer: "http://localhost:3000",
			GeminiModel:       completion.DefaultGeminiModel,
		},
		WeatherBaseURL:    weather.DefaultBaseURL,
		UpstreamTimeout:   10 * time.Second,
		WeatherCacheTTL:   5 * time.Minute,
		WeatherCacheSize:  256,
		ChatHistoryWindow: 10,
		DefaultDays:       weather.DefaultDays,
		DefaultLimit:      200,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Env = env
	}

	if p := os.Getenv("COMPLETION_PROVIDER"); p != "" {
		switch p {
		case completion.ProviderOpenRouter, completion.ProviderGemini:
			cfg.Completion.Provider = p
		default:
			return cfg, fmt.Errorf("invalid COMPLETION_PROVIDER: %s", p)
		}
	}
	cfg.Completion.OpenRouterAPIKey = os.Getenv("OPENROUTER_API_KEY")
	setString(&cfg.Completion.OpenRouterModel, "OPENROUTER_MODEL")
	setString(&cfg.Completion.OpenRouterBaseURL, "OPENROUTER_BASE_URL")
	setString(&cfg.Completion.OpenRouterReferer, "OPENROUTER_REFERER")
	cfg.Completion.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	setString(&cfg.Completion.GeminiModel, "GEMINI_MODEL")
	setString(&cfg.WeatherBaseURL, "WEATHER_BASE_URL")

	if err := setDuration(&cfg.UpstreamTimeout, "UPSTREAM_TIMEOUT"); err != nil {
		return cfg, err
	}
	if err := setDuration(&cfg.WeatherCacheTTL, "WEATHER_CACHE_TTL"); err != nil {
		return cfg, err
	}
	if err := setPositiveInt(&cfg.WeatherCacheSize, "WEATHER_CACHE_SIZE"); err != nil {
		return cfg, err
	}
	if err := setPositiveInt(&cfg.ChatHistoryWindow, "CHAT_HISTORY_WINDOW"); err != nil {
		return cfg, err
	}
	if err := setPositiveInt(&cfg.DefaultDays, "API_DEFAULT_DAYS"); err != nil {
		return cfg, err
	}
	if err := setPositiveInt(&cfg.DefaultLimit, "API_DEFAULT_LIMIT"); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Development reports whether verbose development logging is wanted.
func (c Config) Development() bool {
	return c.Env == "development"
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setPositiveInt(dst *int, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fmt.Errorf("invalid %s: %s", key, raw)
	}
	*dst = v
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return fmt.Errorf("invalid %s: %s", key, raw)
	}
	*dst = v
	return nil
}
