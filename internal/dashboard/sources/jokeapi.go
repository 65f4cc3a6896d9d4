package sources

import (
	"context"
	"net/url"

	"github.com/i474232898/api-dashboard/internal/dashboard"
)

const (
	defaultJokeAPIURL = "https://v2.jokeapi.dev"
	jokeBlacklist     = "nsfw,religious,political,racist,sexist,explicit"
)

// JokeAPI serves safe programming jokes.
type JokeAPI struct {
	baseURL string
	fetcher *Fetcher
}

func NewJokeAPI(f *Fetcher, baseURL string) *JokeAPI {
	if baseURL == "" {
		baseURL = defaultJokeAPIURL
	}
	return &JokeAPI{baseURL: baseURL, fetcher: f}
}

type jokePayload struct {
	Error    bool   `json:"error"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Joke     string `json:"joke"`
	Setup    string `json:"setup"`
	Delivery string `json:"delivery"`
}

// Programming is the adapter for /joke/Programming.
func (p *JokeAPI) Programming() dashboard.Adapter[jokePayload, dashboard.JokeRecord] {
	return dashboard.Adapter[jokePayload, dashboard.JokeRecord]{
		Source: dashboard.SourceJoke,
		Fetch: func(ctx context.Context, _ dashboard.Query, _ *dashboard.Session) (jokePayload, error) {
			var payload jokePayload
			values := url.Values{}
			values.Set("blacklistFlags", jokeBlacklist)
			_, err := p.fetcher.GetJSON(ctx, buildURL(p.baseURL, "joke/Programming", values), &payload)
			return payload, err
		},
		Validate: func(raw jokePayload) error {
			if raw.Error {
				return dashboard.ProviderError(orDefault(raw.Message, "Joke provider error"))
			}
			if raw.Joke == "" && raw.Setup == "" {
				return dashboard.NotFoundError("No joke found")
			}
			return nil
		},
		Extract: func(raw jokePayload) []dashboard.JokeRecord {
			kind := raw.Type
			if kind == "" && raw.Joke != "" {
				kind = "single"
			}
			return []dashboard.JokeRecord{{
				Category: raw.Category,
				Type:     kind,
				Joke:     raw.Joke,
				Setup:    raw.Setup,
				Delivery: raw.Delivery,
			}}
		},
	}
}
