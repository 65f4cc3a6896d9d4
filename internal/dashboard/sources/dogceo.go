package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/i474232898/api-dashboard/internal/dashboard"
)

const defaultDogCEOURL = "https://dog.ceo/api"

// DogCEO serves random dog images.
type DogCEO struct {
	baseURL string
	fetcher *Fetcher
}

func NewDogCEO(f *Fetcher, baseURL string) *DogCEO {
	if baseURL == "" {
		baseURL = defaultDogCEOURL
	}
	return &DogCEO{baseURL: baseURL, fetcher: f}
}

// imageList accepts both the single-image string and the multi-image array forms.
type imageList []string

func (l *imageList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, (*[]string)(l))
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = imageList{one}
	return nil
}

type dogPayload struct {
	Status  string    `json:"status"`
	Message imageList `json:"message"`
	// set by the adapter, not the provider
	requested int
}

// Random is the adapter for /breeds/image/random[/n]. A count of 1 uses the single-image endpoint.
func (p *DogCEO) Random() dashboard.Adapter[dogPayload, dashboard.DogRecord] {
	return dashboard.Adapter[dogPayload, dashboard.DogRecord]{
		Source:  dashboard.SourceDogs,
		Prepare: prepareCount(1, 50, "Please enter a number of dogs between 1 and 50"),
		Fetch: func(ctx context.Context, q dashboard.Query, _ *dashboard.Session) (dogPayload, error) {
			var payload dogPayload
			n, _ := strconv.Atoi(q.Get(dashboard.ParamCount))
			path := "breeds/image/random"
			if n > 1 {
				path += "/" + strconv.Itoa(n)
			}
			_, err := p.fetcher.GetJSON(ctx, buildURL(p.baseURL, path, nil), &payload)
			payload.requested = n
			return payload, err
		},
		Validate: func(raw dogPayload) error {
			if raw.Status != "success" {
				if raw.requested > 1 {
					return dashboard.ProviderError("Failed to fetch dog images")
				}
				return dashboard.ProviderError("Failed to fetch dog image")
			}
			if len(raw.Message) == 0 {
				return dashboard.NotFoundError("No dog images found")
			}
			return nil
		},
		Extract: func(raw dogPayload) []dashboard.DogRecord {
			out := make([]dashboard.DogRecord, 0, len(raw.Message))
			for _, img := range raw.Message {
				out = append(out, dashboard.DogRecord{ImageURL: img})
			}
			return out
		},
	}
}
