package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/api-dashboard/internal/dashboard"
)

// maxBodyBytes bounds how much of a provider response is read.
// 5000 random users come to roughly 6 MB.
const maxBodyBytes = 32 << 20

var validate = validator.New()

var (
	errNoHTTPClient = errors.New("http client not configured")
	errBodyTooLarge = errors.New("response body exceeds limit")
)

// Fetcher issues single GET requests for one source.
// There is no retry; the breaker only fails fast while a provider is unreachable.
type Fetcher struct {
	name    string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	maxBody int64
}

// NewFetcher creates a Fetcher with its own circuit breaker.
func NewFetcher(name string, client *http.Client) *Fetcher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Fetcher{name: name, client: client, circuit: cb, maxBody: maxBodyBytes}
}

// Name returns the source name the fetcher was created for.
func (f *Fetcher) Name() string {
	return f.name
}

type rawResponse struct {
	status    int
	body      []byte
	truncated bool
}

// GetJSON fetches rawURL and decodes the body into dst.
// Bodies are decoded whatever the status, since providers describe errors in JSON.
func (f *Fetcher) GetJSON(ctx context.Context, rawURL string, dst any) (int, error) {
	if f.client == nil {
		return 0, dashboard.NetworkError(errNoHTTPClient)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, dashboard.NetworkError(err)
	}
	req.Header.Set("Accept", "application/json")

	result, err := f.circuit.Execute(func() (interface{}, error) {
		resp, execErr := f.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
		if readErr != nil {
			return nil, readErr
		}
		return rawResponse{status: resp.StatusCode, body: body, truncated: int64(len(body)) > f.maxBody}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return 0, dashboard.NetworkError(fmt.Errorf("%s temporarily unavailable: %w", f.name, err))
		}
		return 0, dashboard.NetworkError(err)
	}

	raw, ok := result.(rawResponse)
	if !ok {
		return 0, dashboard.NetworkError(fmt.Errorf("unexpected result type from circuit breaker"))
	}

	if raw.truncated {
		return raw.status, &dashboard.Error{
			Kind:    dashboard.KindProvider,
			Message: "Response from provider is too large",
			Err:     fmt.Errorf("%s: %w (%d bytes)", f.name, errBodyTooLarge, f.maxBody),
		}
	}
	if err := json.NewDecoder(bytes.NewReader(raw.body)).Decode(dst); err != nil {
		return raw.status, dashboard.DecodeError(err)
	}
	return raw.status, nil
}

// buildURL joins base, path segments and query values.
func buildURL(base string, path string, values url.Values) string {
	u := strings.TrimRight(base, "/")
	if path != "" {
		u += "/" + strings.TrimLeft(path, "/")
	}
	if len(values) > 0 {
		u += "?" + values.Encode()
	}
	return u
}

// inputError converts validator failures to a user-facing input error.
func inputError(err error, message string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return dashboard.InputError("%s", message)
	}
	return dashboard.InputError("%s: %v", message, err)
}
