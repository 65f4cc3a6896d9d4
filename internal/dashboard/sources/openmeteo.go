package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/api-dashboard/internal/dashboard"
)

const (
	defaultOpenMeteoURL    = "https://api.open-meteo.com/v1"
	defaultOpenMeteoGeoURL = "https://geocoding-api.open-meteo.com/v1"
)

// Place is a geocoded city.
type Place struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a city name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (Place, error)
}

// OpenMeteo serves current conditions for a city via geocoding + forecast calls.
type OpenMeteo struct {
	baseURL  string
	fetcher  *Fetcher
	geocoder Geocoder
}

func NewOpenMeteo(f *Fetcher, baseURL string, geocoder Geocoder) *OpenMeteo {
	if baseURL == "" {
		baseURL = defaultOpenMeteoURL
	}
	return &OpenMeteo{baseURL: baseURL, fetcher: f, geocoder: geocoder}
}

type forecastPayload struct {
	Place Place `json:"-"`

	// Open-Meteo reports failures as {"error": true, "reason": "..."}.
	Error  bool   `json:"error"`
	Reason string `json:"reason"`

	Current *struct {
		Time        string   `json:"time"`
		Temperature *float64 `json:"temperature_2m"`
		Humidity    *float64 `json:"relative_humidity_2m"`
		WindSpeed   *float64 `json:"wind_speed_10m"`
		WeatherCode *int     `json:"weather_code"`
	} `json:"current"`
}

type cityQuery struct {
	City string `validate:"required,max=100"`
}

// Current is the adapter for current conditions.
func (p *OpenMeteo) Current() dashboard.Adapter[forecastPayload, dashboard.WeatherRecord] {
	return dashboard.Adapter[forecastPayload, dashboard.WeatherRecord]{
		Source: dashboard.SourceWeather,
		Prepare: func(q dashboard.Query) (dashboard.Query, error) {
			if err := validate.Struct(cityQuery{City: q.Get(dashboard.ParamCity)}); err != nil {
				return q, inputError(err, "Please enter a city name")
			}
			return q, nil
		},
		Fetch: func(ctx context.Context, q dashboard.Query, _ *dashboard.Session) (forecastPayload, error) {
			return p.fetch(ctx, q.Get(dashboard.ParamCity))
		},
		Validate: validateForecast,
		Extract:  extractForecast,
	}
}

func (p *OpenMeteo) fetch(ctx context.Context, city string) (forecastPayload, error) {
	var payload forecastPayload

	place, err := p.geocoder.Geocode(ctx, city)
	if err != nil {
		return payload, err
	}

	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(place.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(place.Longitude, 'f', -1, 64))
	values.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code")
	values.Set("timezone", "auto")

	if _, err := p.fetcher.GetJSON(ctx, buildURL(p.baseURL, "forecast", values), &payload); err != nil {
		return payload, err
	}
	payload.Place = place
	return payload, nil
}

func validateForecast(raw forecastPayload) error {
	if raw.Error {
		msg := raw.Reason
		if msg == "" {
			msg = "Weather provider error"
		}
		return dashboard.ProviderError(msg)
	}
	if raw.Current == nil {
		return dashboard.NotFoundError("No weather data available")
	}
	return nil
}

func extractForecast(raw forecastPayload) []dashboard.WeatherRecord {
	c := raw.Current
	return []dashboard.WeatherRecord{{
		City:        raw.Place.Name,
		Country:     raw.Place.Country,
		Latitude:    raw.Place.Latitude,
		Longitude:   raw.Place.Longitude,
		Temperature: c.Temperature,
		Humidity:    c.Humidity,
		WindSpeed:   c.WindSpeed,
		Code:        c.WeatherCode,
		Time:        parseLocalTime(c.Time),
	}}
}

// Open-Meteo returns local ISO8601 without seconds when timezone=auto.
func parseLocalTime(s string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// OpenMeteoGeocoder uses the free Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	baseURL string
	fetcher *Fetcher
}

func NewOpenMeteoGeocoder(f *Fetcher, baseURL string) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = defaultOpenMeteoGeoURL
	}
	return &OpenMeteoGeocoder{baseURL: baseURL, fetcher: f}
}

func (g *OpenMeteoGeocoder) Geocode(ctx context.Context, city string) (Place, error) {
	values := url.Values{}
	values.Set("name", city)
	values.Set("count", "1")
	values.Set("language", "en")
	values.Set("format", "json")

	var payload struct {
		Error   bool   `json:"error"`
		Reason  string `json:"reason"`
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if _, err := g.fetcher.GetJSON(ctx, buildURL(g.baseURL, "search", values), &payload); err != nil {
		return Place{}, err
	}
	if payload.Error {
		return Place{}, dashboard.ProviderError(fmt.Sprintf("Geocoding failed: %s", payload.Reason))
	}
	if len(payload.Results) == 0 {
		return Place{}, dashboard.NotFoundError("City not found")
	}

	r := payload.Results[0]
	return Place{Name: r.Name, Country: r.Country, Latitude: r.Latitude, Longitude: r.Longitude}, nil
}
