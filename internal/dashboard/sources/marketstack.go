package sources

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/api-dashboard/internal/dashboard"
)

const defaultMarketstackURL = "https://api.marketstack.com/v1"

// Marketstack serves end-of-day stock quotes. Requests carry the session's access key.
type Marketstack struct {
	baseURL string
	fetcher *Fetcher
}

func NewMarketstack(f *Fetcher, baseURL string) *Marketstack {
	if baseURL == "" {
		baseURL = defaultMarketstackURL
	}
	return &Marketstack{baseURL: baseURL, fetcher: f}
}

type eodPayload struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Data []struct {
		Symbol   string   `json:"symbol"`
		Exchange string   `json:"exchange"`
		Open     *float64 `json:"open"`
		High     *float64 `json:"high"`
		Low      *float64 `json:"low"`
		Close    *float64 `json:"close"`
		Volume   *float64 `json:"volume"`
		Date     string   `json:"date"`
	} `json:"data"`
}

type stockQuery struct {
	Symbols string `validate:"required,max=200"`
	Limit   string `validate:"omitempty,numeric"`
}

// EOD is the adapter for /eod (historical end-of-day, newest first).
func (m *Marketstack) EOD() dashboard.Adapter[eodPayload, dashboard.StockRecord] {
	return m.adapter("eod", "No data found for this symbol")
}

// Latest is the adapter for /eod/latest.
func (m *Marketstack) Latest() dashboard.Adapter[eodPayload, dashboard.StockRecord] {
	return m.adapter("eod/latest", "No data found for this symbol")
}

func (m *Marketstack) adapter(path, notFound string) dashboard.Adapter[eodPayload, dashboard.StockRecord] {
	return dashboard.Adapter[eodPayload, dashboard.StockRecord]{
		Source:  dashboard.SourceStock,
		Prepare: prepareSymbols,
		Fetch: func(ctx context.Context, q dashboard.Query, s *dashboard.Session) (eodPayload, error) {
			return m.fetch(ctx, path, q, s)
		},
		Validate: func(raw eodPayload) error {
			return validateEOD(raw, notFound)
		},
		Extract: extractEOD,
	}
}

func prepareSymbols(q dashboard.Query) (dashboard.Query, error) {
	parts := strings.Split(q.Get(dashboard.ParamSymbols), ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			symbols = append(symbols, p)
		}
	}
	sq := stockQuery{Symbols: strings.Join(symbols, ","), Limit: q.Get(dashboard.ParamLimit)}
	if err := validate.Struct(sq); err != nil {
		if sq.Symbols == "" {
			return q, dashboard.InputError("Please enter a stock symbol")
		}
		return q, inputError(err, "Invalid stock query")
	}
	return q.With(dashboard.ParamSymbols, sq.Symbols), nil
}

func (m *Marketstack) fetch(ctx context.Context, path string, q dashboard.Query, s *dashboard.Session) (eodPayload, error) {
	var payload eodPayload
	key := ""
	if s != nil {
		key = s.APIKey()
	}
	if key == "" {
		return payload, dashboard.InputError("Please enter and save your API key first")
	}

	values := url.Values{}
	values.Set("access_key", key)
	values.Set("symbols", q.Get(dashboard.ParamSymbols))
	if limit := q.Get(dashboard.ParamLimit); limit != "" {
		values.Set("limit", limit)
	}

	if _, err := m.fetcher.GetJSON(ctx, buildURL(m.baseURL, path, values), &payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func validateEOD(raw eodPayload, notFound string) error {
	if raw.Error != nil {
		msg := strings.TrimSpace(raw.Error.Message)
		if msg == "" {
			msg = "API Error"
		}
		return dashboard.ProviderError(msg)
	}
	if len(raw.Data) == 0 {
		return dashboard.NotFoundError(notFound)
	}
	return nil
}

func extractEOD(raw eodPayload) []dashboard.StockRecord {
	records := make([]dashboard.StockRecord, 0, len(raw.Data))
	for _, d := range raw.Data {
		records = append(records, dashboard.StockRecord{
			Symbol:   d.Symbol,
			Exchange: d.Exchange,
			Open:     d.Open,
			Close:    d.Close,
			High:     d.High,
			Low:      d.Low,
			Volume:   d.Volume,
			Date:     parseMarketDate(d.Date),
		})
	}
	return records
}

// marketstack dates look like 2024-03-01T00:00:00+0000.
func parseMarketDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05-0700", time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
