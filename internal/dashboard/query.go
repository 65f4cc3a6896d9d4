package dashboard

import "strings"

// Source identifies a remote data provider endpoint family.
type Source string

const (
	SourceStock   Source = "stock"
	SourceWeather Source = "weather"
	SourceUsers   Source = "users"
	SourceCountry Source = "country"
	SourceQuote   Source = "quote"
	SourceJoke    Source = "joke"
	SourceDogs    Source = "dogs"
)

// Param names shared between surfaces and adapters.
const (
	ParamSymbols = "symbols"
	ParamLimit   = "limit"
	ParamCity    = "city"
	ParamCountry = "country"
	ParamTag     = "tag"
	ParamCount   = "count"
)

// Query is one user-triggered request against a source.
type Query struct {
	Source Source
	Params map[string]string
}

// NewQuery builds a Query from alternating key/value pairs.
func NewQuery(src Source, kv ...string) Query {
	q := Query{Source: src, Params: make(map[string]string, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		q.Params[kv[i]] = kv[i+1]
	}
	return q
}

// Get returns the trimmed value for key.
func (q Query) Get(key string) string {
	return strings.TrimSpace(q.Params[key])
}

// With returns a copy of q with key set to value.
func (q Query) With(key, value string) Query {
	params := make(map[string]string, len(q.Params)+1)
	for k, v := range q.Params {
		params[k] = v
	}
	params[key] = value
	return Query{Source: q.Source, Params: params}
}
