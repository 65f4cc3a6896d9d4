package sources

import (
	"net/http"

	"github.com/i474232898/api-dashboard/internal/dashboard"
)

// Endpoints overrides provider base URLs. Empty fields use the public defaults.
type Endpoints struct {
	Marketstack   string
	OpenMeteo     string
	OpenMeteoGeo  string
	RandomUser    string
	RestCountries string
	Quotable      string
	JokeAPI       string
	DogCEO        string

	// GoogleGeocoderKey switches weather geocoding to Google when set.
	GoogleGeocoderKey string
}

// New wires every provider adapter, each with its own fetcher and breaker.
func New(client *http.Client, ep Endpoints) dashboard.Sources {
	market := NewMarketstack(NewFetcher("marketstack", client), ep.Marketstack)

	var geo Geocoder = NewOpenMeteoGeocoder(NewFetcher("openmeteo-geocoding", client), ep.OpenMeteoGeo)
	if ep.GoogleGeocoderKey != "" {
		geo = NewGoogleGeocoder(ep.GoogleGeocoderKey)
	}

	return dashboard.Sources{
		StockEOD:    market.EOD(),
		StockLatest: market.Latest(),
		Weather:     NewOpenMeteo(NewFetcher("openmeteo", client), ep.OpenMeteo, geo).Current(),
		Users:       NewRandomUser(NewFetcher("randomuser", client), ep.RandomUser).Users(),
		Country:     NewRestCountries(NewFetcher("restcountries", client), ep.RestCountries).ByName(),
		Quote:       NewQuotable(NewFetcher("quotable", client), ep.Quotable).Random(),
		Joke:        NewJokeAPI(NewFetcher("jokeapi", client), ep.JokeAPI).Programming(),
		Dogs:        NewDogCEO(NewFetcher("dogceo", client), ep.DogCEO).Random(),
	}
}
