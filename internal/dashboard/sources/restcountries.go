package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/i474232898/api-dashboard/internal/dashboard"
)

const defaultRestCountriesURL = "https://restcountries.com/v3.1"

// RestCountries looks up countries by name.
type RestCountries struct {
	baseURL string
	fetcher *Fetcher
}

func NewRestCountries(f *Fetcher, baseURL string) *RestCountries {
	if baseURL == "" {
		baseURL = defaultRestCountriesURL
	}
	return &RestCountries{baseURL: baseURL, fetcher: f}
}

type countryCurrency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type countryItem struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Flags struct {
		PNG string `json:"png"`
	} `json:"flags"`
	Capital    []string `json:"capital"`
	Population *int64   `json:"population"`
	Region     string   `json:"region"`
	// Ordered so languages and currencies render in provider order.
	Languages  *orderedmap.OrderedMap[string, string]          `json:"languages"`
	Currencies *orderedmap.OrderedMap[string, countryCurrency] `json:"currencies"`
}

// countriesPayload is either a list of matches or a {"status","message"} envelope.
type countriesPayload struct {
	Status    int
	Message   string
	Countries []countryItem
}

func (p *countriesPayload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &p.Countries)
	}
	var envelope struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	p.Status = envelope.Status
	p.Message = envelope.Message
	return nil
}

type countryQuery struct {
	Name string `validate:"required,max=100"`
}

// ByName is the adapter for /name/{name}.
func (p *RestCountries) ByName() dashboard.Adapter[countriesPayload, dashboard.CountryRecord] {
	return dashboard.Adapter[countriesPayload, dashboard.CountryRecord]{
		Source: dashboard.SourceCountry,
		Prepare: func(q dashboard.Query) (dashboard.Query, error) {
			if err := validate.Struct(countryQuery{Name: q.Get(dashboard.ParamCountry)}); err != nil {
				return q, inputError(err, "Please enter a country name")
			}
			return q, nil
		},
		Fetch: func(ctx context.Context, q dashboard.Query, _ *dashboard.Session) (countriesPayload, error) {
			var payload countriesPayload
			u := buildURL(p.baseURL, "name/"+url.PathEscape(q.Get(dashboard.ParamCountry)), nil)
			_, err := p.fetcher.GetJSON(ctx, u, &payload)
			return payload, err
		},
		Validate: validateCountries,
		Extract:  extractCountries,
	}
}

func validateCountries(raw countriesPayload) error {
	switch {
	case raw.Status == http.StatusNotFound:
		return dashboard.NotFoundError("Country not found")
	case raw.Status != 0:
		msg := raw.Message
		if msg == "" {
			msg = http.StatusText(raw.Status)
		}
		return dashboard.ProviderError(msg)
	case len(raw.Countries) == 0:
		return dashboard.NotFoundError("Country not found")
	}
	return nil
}

func extractCountries(raw countriesPayload) []dashboard.CountryRecord {
	out := make([]dashboard.CountryRecord, 0, len(raw.Countries))
	for _, c := range raw.Countries {
		rec := dashboard.CountryRecord{
			CommonName:   c.Name.Common,
			OfficialName: c.Name.Official,
			FlagURL:      c.Flags.PNG,
			Population:   c.Population,
			Region:       c.Region,
		}
		if len(c.Capital) > 0 {
			rec.Capital = c.Capital[0]
		}
		if c.Languages != nil {
			for pair := c.Languages.Oldest(); pair != nil; pair = pair.Next() {
				rec.Languages = append(rec.Languages, pair.Value)
			}
		}
		if c.Currencies != nil {
			for pair := c.Currencies.Oldest(); pair != nil; pair = pair.Next() {
				rec.Currencies = append(rec.Currencies, dashboard.Currency{
					Code:   pair.Key,
					Name:   pair.Value.Name,
					Symbol: pair.Value.Symbol,
				})
			}
		}
		out = append(out, rec)
	}
	return out
}
