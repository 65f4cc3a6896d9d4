package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	env "github.com/netflix/go-env"

	"github.com/i474232898/api-dashboard/internal/common"
	"github.com/i474232898/api-dashboard/internal/dashboard/sources"
)

type AppConfig struct {
	Port string `env:"PORT,default=8080"`

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT,default=10s"`

	// RefreshInterval controls how often the scheduled surfaces are refreshed (0 disables).
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL,default=15m"`
	// RefreshSurfacesStr lists the surfaces refreshed by the scheduler, separated by "|" or ",".
	RefreshSurfacesStr string `env:"REFRESH_SURFACES,default=trending|popular|weather"`
	RefreshSurfaces    []string

	// DefaultCity is the city the scheduled weather refresh loads.
	DefaultCity string `env:"DEFAULT_CITY,default=London"`

	// DataDir holds the SQLite settings database; ":memory:" keeps settings for the process lifetime only.
	DataDir string `env:"DATA_DIR,default=./data"`

	// MarketstackAPIKey seeds the stored access key when none has been saved yet.
	MarketstackAPIKey string `env:"MARKETSTACK_API_KEY"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	MarketstackBaseURL   string `env:"MARKETSTACK_BASE_URL"`
	OpenMeteoBaseURL     string `env:"OPENMETEO_BASE_URL"`
	OpenMeteoGeoBaseURL  string `env:"OPENMETEO_GEOCODING_BASE_URL"`
	RandomUserBaseURL    string `env:"RANDOMUSER_BASE_URL"`
	RestCountriesBaseURL string `env:"RESTCOUNTRIES_BASE_URL"`
	QuotableBaseURL      string `env:"QUOTABLE_BASE_URL"`
	JokeAPIBaseURL       string `env:"JOKEAPI_BASE_URL"`
	DogCEOBaseURL        string `env:"DOGCEO_BASE_URL"`

	GoogleGeocoderAPIKey string `env:"GOOGLE_GEOCODER_API_KEY"`
}

// Load reads configuration from the environment (and .env when present) with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	cfg.RefreshSurfaces = common.SplitList(strings.ReplaceAll(cfg.RefreshSurfacesStr, "|", ","))

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func validateConfig(cfg *AppConfig) error {
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if cfg.RefreshInterval < 0 {
		return fmt.Errorf("REFRESH_INTERVAL must not be negative")
	}
	if cfg.RefreshInterval > 0 && cfg.RefreshInterval < time.Minute {
		cfg.RefreshInterval = time.Minute
	}

	for name, raw := range map[string]string{
		"MARKETSTACK_BASE_URL":         cfg.MarketstackBaseURL,
		"OPENMETEO_BASE_URL":           cfg.OpenMeteoBaseURL,
		"OPENMETEO_GEOCODING_BASE_URL": cfg.OpenMeteoGeoBaseURL,
		"RANDOMUSER_BASE_URL":          cfg.RandomUserBaseURL,
		"RESTCOUNTRIES_BASE_URL":       cfg.RestCountriesBaseURL,
		"QUOTABLE_BASE_URL":            cfg.QuotableBaseURL,
		"JOKEAPI_BASE_URL":             cfg.JokeAPIBaseURL,
		"DOGCEO_BASE_URL":              cfg.DogCEOBaseURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%s must be an absolute http(s) URL", name)
		}
	}
	return nil
}

// Endpoints returns the provider base URL overrides.
func (c *AppConfig) Endpoints() sources.Endpoints {
	return sources.Endpoints{
		Marketstack:       c.MarketstackBaseURL,
		OpenMeteo:         c.OpenMeteoBaseURL,
		OpenMeteoGeo:      c.OpenMeteoGeoBaseURL,
		RandomUser:        c.RandomUserBaseURL,
		RestCountries:     c.RestCountriesBaseURL,
		Quotable:          c.QuotableBaseURL,
		JokeAPI:           c.JokeAPIBaseURL,
		DogCEO:            c.DogCEOBaseURL,
		GoogleGeocoderKey: c.GoogleGeocoderAPIKey,
	}
}
