package sources

import (
	"context"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/api-dashboard/internal/common"
	"github.com/i474232898/api-dashboard/internal/dashboard"
)

// GoogleGeocoder resolves cities with the Google Geocoding API.
// The underlying client keeps its key in package state, so only one key is supported per process.
type GoogleGeocoder struct{}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

type geocodeResult struct {
	place Place
	err   error
}

// Geocode resolves city through the Google Geocoding API.
// The geocoder package takes no context: when ctx ends first Geocode returns at once,
// but the lookup goroutine lives on until the library's own HTTP calls return.
func (g *GoogleGeocoder) Geocode(ctx context.Context, city string) (Place, error) {
	done := make(chan geocodeResult, 1)
	go func() {
		loc, err := geocoder.Geocoding(geocoder.Address{City: city})
		if err != nil {
			done <- geocodeResult{err: err}
			return
		}

		place := Place{Name: city, Latitude: loc.Latitude, Longitude: loc.Longitude}
		// Country is cosmetic; a failed reverse lookup leaves it empty.
		if addrs, err := geocoder.GeocodingReverse(loc); err == nil && len(addrs) > 0 {
			place.Country = addrs[0].Country
			if addrs[0].City != "" {
				place.Name = addrs[0].City
			}
		}
		done <- geocodeResult{place: place}
	}()

	select {
	case <-ctx.Done():
		return Place{}, dashboard.NetworkError(ctx.Err())
	case res := <-done:
		if res.err != nil {
			return Place{}, mapGoogleError(res.err)
		}
		return res.place, nil
	}
}

func mapGoogleError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case common.HasAny(msg, "zero_results", "no results", "not found"):
		return dashboard.NotFoundError("City not found")
	case common.HasAny(msg, "request_denied", "over_query_limit", "invalid_request"):
		return dashboard.ProviderError("Geocoding failed: " + err.Error())
	default:
		return dashboard.NetworkError(err)
	}
}
