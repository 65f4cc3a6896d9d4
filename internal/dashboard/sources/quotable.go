package sources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/i474232898/api-dashboard/internal/dashboard"
)

const defaultQuotableURL = "https://api.quotable.io"

// Quotable serves random quotations.
type Quotable struct {
	baseURL string
	fetcher *Fetcher
}

func NewQuotable(f *Fetcher, baseURL string) *Quotable {
	if baseURL == "" {
		baseURL = defaultQuotableURL
	}
	return &Quotable{baseURL: baseURL, fetcher: f}
}

type quotePayload struct {
	StatusCode    int      `json:"statusCode"`
	StatusMessage string   `json:"statusMessage"`
	Content       string   `json:"content"`
	Author        string   `json:"author"`
	Tags          []string `json:"tags"`
}

type tagQuery struct {
	Tag string `validate:"omitempty,max=50"`
}

// Random is the adapter for /random, optionally filtered by tag.
func (p *Quotable) Random() dashboard.Adapter[quotePayload, dashboard.QuoteRecord] {
	return dashboard.Adapter[quotePayload, dashboard.QuoteRecord]{
		Source: dashboard.SourceQuote,
		Prepare: func(q dashboard.Query) (dashboard.Query, error) {
			if err := validate.Struct(tagQuery{Tag: q.Get(dashboard.ParamTag)}); err != nil {
				return q, inputError(err, "Invalid quote tag")
			}
			return q, nil
		},
		Fetch: func(ctx context.Context, q dashboard.Query, _ *dashboard.Session) (quotePayload, error) {
			var payload quotePayload
			values := url.Values{}
			if tag := q.Get(dashboard.ParamTag); tag != "" {
				values.Set("tags", tag)
			}
			_, err := p.fetcher.GetJSON(ctx, buildURL(p.baseURL, "random", values), &payload)
			return payload, err
		},
		Validate: func(raw quotePayload) error {
			switch {
			case raw.StatusCode == http.StatusNotFound:
				return dashboard.NotFoundError(orDefault(raw.StatusMessage, "No quote found"))
			case raw.StatusCode >= 400:
				return dashboard.ProviderError(orDefault(raw.StatusMessage, http.StatusText(raw.StatusCode)))
			case raw.Content == "" && raw.Author == "":
				return dashboard.NotFoundError("No quote found")
			}
			return nil
		},
		Extract: func(raw quotePayload) []dashboard.QuoteRecord {
			return []dashboard.QuoteRecord{{Content: raw.Content, Author: raw.Author, Tags: raw.Tags}}
		},
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
