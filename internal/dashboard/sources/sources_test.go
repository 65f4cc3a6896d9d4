package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/api-dashboard/internal/dashboard"
)

type provider struct {
	server *httptest.Server
	hits   atomic.Int32
	last   atomic.Pointer[url.URL]
}

// newProvider starts a fake provider that answers every request with status and body.
func newProvider(t *testing.T, status int, body string) *provider {
	t.Helper()
	p := &provider{}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.hits.Add(1)
		u := *r.URL
		p.last.Store(&u)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(p.server.Close)
	return p
}

func (p *provider) fetcher() *Fetcher {
	return NewFetcher("test", p.server.Client())
}

func keyedSession(t *testing.T) *dashboard.Session {
	t.Helper()
	s, err := dashboard.NewSession(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveAPIKey(context.Background(), "k3y"))
	return s
}

// --- fetcher ---

func TestGetJSONDecodeError(t *testing.T) {
	p := newProvider(t, http.StatusOK, "<html>not json</html>")
	var dst map[string]any
	_, err := p.fetcher().GetJSON(context.Background(), p.server.URL, &dst)
	assert.ErrorIs(t, err, dashboard.ErrDecode)
	assert.Equal(t, "Invalid response from provider", dashboard.Message(err))
}

func TestGetJSONDecodesErrorStatusBodies(t *testing.T) {
	p := newProvider(t, http.StatusUnauthorized, `{"error":{"message":"Invalid access key"}}`)
	var dst eodPayload
	status, err := p.fetcher().GetJSON(context.Background(), p.server.URL, &dst)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, dst.Error)
	assert.Equal(t, "Invalid access key", dst.Error.Message)
}

func TestGetJSONNetworkError(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{}`)
	f := p.fetcher()
	p.server.Close()

	var dst map[string]any
	_, err := f.GetJSON(context.Background(), p.server.URL, &dst)
	assert.ErrorIs(t, err, dashboard.ErrNetwork)
	assert.Contains(t, dashboard.Message(err), "Network error:")
}

func TestGetJSONBreakerFailsFast(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{}`)
	f := p.fetcher()
	p.server.Close()

	var dst map[string]any
	for i := 0; i < 5; i++ {
		_, err := f.GetJSON(context.Background(), p.server.URL, &dst)
		require.ErrorIs(t, err, dashboard.ErrNetwork)
	}
	_, err := f.GetJSON(context.Background(), p.server.URL, &dst)
	assert.ErrorIs(t, err, dashboard.ErrNetwork)
	assert.Contains(t, err.Error(), "temporarily unavailable")
}

func TestGetJSONBodyTooLarge(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{"results":[`+strings.Repeat(`{},`, 100)+`{}]}`)
	f := p.fetcher()
	f.maxBody = 64

	var dst map[string]any
	_, err := f.GetJSON(context.Background(), p.server.URL, &dst)
	assert.ErrorIs(t, err, errBodyTooLarge)
	assert.ErrorIs(t, err, dashboard.ErrProvider)
	assert.NotErrorIs(t, err, dashboard.ErrDecode)
	assert.Equal(t, "Response from provider is too large", dashboard.Message(err))
}

func TestGetJSONWithoutClient(t *testing.T) {
	var dst map[string]any
	_, err := NewFetcher("nil", nil).GetJSON(context.Background(), "http://example.invalid", &dst)
	assert.ErrorIs(t, err, dashboard.ErrNetwork)
}

func TestGetJSONHonoursDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var dst map[string]any
	_, err := NewFetcher("slow", srv.Client()).GetJSON(ctx, srv.URL, &dst)
	assert.ErrorIs(t, err, dashboard.ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// --- marketstack ---

const eodBody = `{"data":[{"symbol":"AAPL","exchange":"XNAS","open":100,"high":112,"low":99,"close":110,"volume":1234567,"date":"2024-03-01T00:00:00+0000"}]}`

func TestMarketstackEOD(t *testing.T) {
	p := newProvider(t, http.StatusOK, eodBody)
	a := NewMarketstack(p.fetcher(), p.server.URL).EOD()

	records, err := a.Load(context.Background(), keyedSession(t),
		dashboard.NewQuery(dashboard.SourceStock, dashboard.ParamSymbols, " aapl ", dashboard.ParamLimit, "1"))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "AAPL", r.Symbol)
	assert.Equal(t, "+10.00 (+10.00%)", r.ChangeLabel())
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.Date)

	u := p.last.Load()
	require.NotNil(t, u)
	assert.Equal(t, "/eod", u.Path)
	assert.Equal(t, "k3y", u.Query().Get("access_key"))
	assert.Equal(t, "AAPL", u.Query().Get("symbols"))
	assert.Equal(t, "1", u.Query().Get("limit"))
}

func TestMarketstackLatestPath(t *testing.T) {
	p := newProvider(t, http.StatusOK, eodBody)
	a := NewMarketstack(p.fetcher(), p.server.URL).Latest()

	_, err := a.Load(context.Background(), keyedSession(t),
		dashboard.NewQuery(dashboard.SourceStock, dashboard.ParamSymbols, "AAPL,msft"))
	require.NoError(t, err)
	u := p.last.Load()
	assert.Equal(t, "/eod/latest", u.Path)
	assert.Equal(t, "AAPL,MSFT", u.Query().Get("symbols"))
	assert.Empty(t, u.Query().Get("limit"))
}

func TestMarketstackInputChecksMakeNoRequest(t *testing.T) {
	p := newProvider(t, http.StatusOK, eodBody)
	a := NewMarketstack(p.fetcher(), p.server.URL).EOD()

	_, err := a.Load(context.Background(), keyedSession(t),
		dashboard.NewQuery(dashboard.SourceStock, dashboard.ParamSymbols, "   "))
	assert.ErrorIs(t, err, dashboard.ErrInput)
	assert.Equal(t, "Please enter a stock symbol", dashboard.Message(err))

	noKey, err := dashboard.NewSession(context.Background(), nil)
	require.NoError(t, err)
	_, err = a.Load(context.Background(), noKey,
		dashboard.NewQuery(dashboard.SourceStock, dashboard.ParamSymbols, "AAPL"))
	assert.ErrorIs(t, err, dashboard.ErrInput)
	assert.Equal(t, "Please enter and save your API key first", dashboard.Message(err))

	assert.Zero(t, p.hits.Load())
}

func TestMarketstackErrorEnvelope(t *testing.T) {
	p := newProvider(t, http.StatusUnauthorized, `{"error":{"code":"invalid_access_key","message":"You have not supplied a valid API Access Key."}}`)
	a := NewMarketstack(p.fetcher(), p.server.URL).EOD()

	_, err := a.Load(context.Background(), keyedSession(t),
		dashboard.NewQuery(dashboard.SourceStock, dashboard.ParamSymbols, "AAPL"))
	assert.ErrorIs(t, err, dashboard.ErrProvider)
	assert.Equal(t, "You have not supplied a valid API Access Key.", dashboard.Message(err))
}

func TestMarketstackErrorEnvelopeWithoutMessage(t *testing.T) {
	p := newProvider(t, http.StatusBadRequest, `{"error":{"code":"x"}}`)
	a := NewMarketstack(p.fetcher(), p.server.URL).EOD()

	_, err := a.Load(context.Background(), keyedSession(t),
		dashboard.NewQuery(dashboard.SourceStock, dashboard.ParamSymbols, "AAPL"))
	assert.Equal(t, "API Error", dashboard.Message(err))
}

func TestMarketstackEmptyData(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{"data":[]}`)
	a := NewMarketstack(p.fetcher(), p.server.URL).EOD()

	_, err := a.Load(context.Background(), keyedSession(t),
		dashboard.NewQuery(dashboard.SourceStock, dashboard.ParamSymbols, "ZZZZ"))
	assert.ErrorIs(t, err, dashboard.ErrNotFound)
	assert.Equal(t, "No data found for this symbol", dashboard.Message(err))
}

func TestMarketstackMissingFields(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{"data":[{"symbol":"X","close":5}]}`)
	a := NewMarketstack(p.fetcher(), p.server.URL).EOD()

	records, err := a.Load(context.Background(), keyedSession(t),
		dashboard.NewQuery(dashboard.SourceStock, dashboard.ParamSymbols, "X"))
	require.NoError(t, err)
	assert.Equal(t, dashboard.NA, records[0].ChangeLabel())
	assert.Equal(t, "neutral", records[0].Trend())
	assert.True(t, records[0].Date.IsZero())
}

// --- open-meteo ---

type fixedGeocoder struct {
	place Place
	err   error
	calls int
}

func (g *fixedGeocoder) Geocode(context.Context, string) (Place, error) {
	g.calls++
	return g.place, g.err
}

func TestOpenMeteoCurrent(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{"current":{"time":"2024-03-01T14:30","temperature_2m":12.5,"relative_humidity_2m":81,"wind_speed_10m":14.4,"weather_code":3}}`)
	geo := &fixedGeocoder{place: Place{Name: "London", Country: "United Kingdom", Latitude: 51.5085, Longitude: -0.1257}}

	records, err := NewOpenMeteo(p.fetcher(), p.server.URL, geo).Current().Load(context.Background(), nil,
		dashboard.NewQuery(dashboard.SourceWeather, dashboard.ParamCity, "London"))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "London, United Kingdom", r.Place())
	assert.Equal(t, "13°C", r.TemperatureLabel())
	assert.Equal(t, dashboard.PictogramOvercast, r.Pictogram())
	assert.Equal(t, "2:30:00 PM", r.TimeLabel())

	u := p.last.Load()
	assert.Equal(t, "/forecast", u.Path)
	assert.Equal(t, "51.5085", u.Query().Get("latitude"))
	assert.Equal(t, "-0.1257", u.Query().Get("longitude"))
	assert.Equal(t, "auto", u.Query().Get("timezone"))
}

func TestOpenMeteoBlankCity(t *testing.T) {
	geo := &fixedGeocoder{}
	_, err := NewOpenMeteo(NewFetcher("x", http.DefaultClient), "http://example.invalid", geo).Current().Load(
		context.Background(), nil, dashboard.NewQuery(dashboard.SourceWeather, dashboard.ParamCity, " "))
	assert.ErrorIs(t, err, dashboard.ErrInput)
	assert.Equal(t, "Please enter a city name", dashboard.Message(err))
	assert.Zero(t, geo.calls)
}

func TestOpenMeteoErrorReason(t *testing.T) {
	p := newProvider(t, http.StatusBadRequest, `{"error":true,"reason":"Latitude must be in range of -90 to 90°."}`)
	geo := &fixedGeocoder{place: Place{Name: "X", Latitude: 1000}}

	_, err := NewOpenMeteo(p.fetcher(), p.server.URL, geo).Current().Load(context.Background(), nil,
		dashboard.NewQuery(dashboard.SourceWeather, dashboard.ParamCity, "X"))
	assert.ErrorIs(t, err, dashboard.ErrProvider)
	assert.Equal(t, "Latitude must be in range of -90 to 90°.", dashboard.Message(err))
}

func TestOpenMeteoGeocoder(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{"results":[{"name":"Paris","country":"France","latitude":48.85,"longitude":2.35}]}`)
	place, err := NewOpenMeteoGeocoder(p.fetcher(), p.server.URL).Geocode(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, Place{Name: "Paris", Country: "France", Latitude: 48.85, Longitude: 2.35}, place)

	u := p.last.Load()
	assert.Equal(t, "/search", u.Path)
	assert.Equal(t, "Paris", u.Query().Get("name"))
	assert.Equal(t, "1", u.Query().Get("count"))
}

func TestOpenMeteoGeocoderCityNotFound(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{"generationtime_ms":0.5}`)
	_, err := NewOpenMeteoGeocoder(p.fetcher(), p.server.URL).Geocode(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, dashboard.ErrNotFound)
	assert.Equal(t, "City not found", dashboard.Message(err))
}

func TestGoogleErrorMapping(t *testing.T) {
	assert.ErrorIs(t, mapGoogleError(errors.New("ZERO_RESULTS")), dashboard.ErrNotFound)
	assert.ErrorIs(t, mapGoogleError(errors.New("REQUEST_DENIED: key invalid")), dashboard.ErrProvider)
	assert.ErrorIs(t, mapGoogleError(errors.New("dial tcp: i/o timeout")), dashboard.ErrNetwork)
}

// --- randomuser ---

const usersBody = `{"results":[{"name":{"first":"Ana","last":"Silva"},"email":"ana@example.com","phone":"555","location":{"city":"Porto","country":"Portugal"},"dob":{"age":34},"login":{"username":"anas"},"picture":{"large":"https://randomuser.me/pic.jpg"}}]}`

func TestRandomUsers(t *testing.T) {
	p := newProvider(t, http.StatusOK, usersBody)
	records, err := NewRandomUser(p.fetcher(), p.server.URL).Users().Load(context.Background(), nil,
		dashboard.NewQuery(dashboard.SourceUsers, dashboard.ParamCount, " 3 "))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ana Silva", records[0].FullName())
	assert.Equal(t, "34 years old", records[0].AgeLabel())
	assert.Equal(t, "3", p.last.Load().Query().Get("results"))
}

func TestRandomUsersDefaultCount(t *testing.T) {
	p := newProvider(t, http.StatusOK, usersBody)
	_, err := NewRandomUser(p.fetcher(), p.server.URL).Users().Load(context.Background(), nil,
		dashboard.NewQuery(dashboard.SourceUsers))
	require.NoError(t, err)
	assert.Equal(t, "1", p.last.Load().Query().Get("results"))
}

func TestRandomUsersCountBounds(t *testing.T) {
	p := newProvider(t, http.StatusOK, usersBody)
	a := NewRandomUser(p.fetcher(), p.server.URL).Users()
	for _, raw := range []string{"0", "5001", "-2", "many"} {
		_, err := a.Load(context.Background(), nil, dashboard.NewQuery(dashboard.SourceUsers, dashboard.ParamCount, raw))
		assert.ErrorIs(t, err, dashboard.ErrInput, raw)
		assert.Equal(t, "Please enter a number of users between 1 and 5000", dashboard.Message(err), raw)
	}
	assert.Zero(t, p.hits.Load())
}

func TestRandomUsersMaximumCount(t *testing.T) {
	var body strings.Builder
	body.WriteString(`{"results":[`)
	for i := 0; i < 5000; i++ {
		if i > 0 {
			body.WriteByte(',')
		}
		fmt.Fprintf(&body, `{"name":{"first":"User%d","last":"%s"},"email":"user%d@example.com","location":{"city":"Porto","country":"Portugal"},"dob":{"age":30},"login":{"username":"u%d"},"picture":{"large":"https://randomuser.me/api/portraits/women/%d.jpg"}}`,
			i, strings.Repeat("x", 800), i, i, i%100)
	}
	body.WriteString(`]}`)
	require.Greater(t, body.Len(), 4<<20)

	p := newProvider(t, http.StatusOK, body.String())
	records, err := NewRandomUser(p.fetcher(), p.server.URL).Users().Load(context.Background(), nil,
		dashboard.NewQuery(dashboard.SourceUsers, dashboard.ParamCount, "5000"))
	require.NoError(t, err)
	assert.Len(t, records, 5000)
	assert.Equal(t, "5000", p.last.Load().Query().Get("results"))
}

func TestRandomUsersErrorAndEmpty(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{"error":"Uh oh, something has gone wrong."}`)
	_, err := NewRandomUser(p.fetcher(), p.server.URL).Users().Load(context.Background(), nil, dashboard.NewQuery(dashboard.SourceUsers))
	assert.ErrorIs(t, err, dashboard.ErrProvider)
	assert.Equal(t, "Uh oh, something has gone wrong.", dashboard.Message(err))

	p = newProvider(t, http.StatusOK, `{"results":[]}`)
	_, err = NewRandomUser(p.fetcher(), p.server.URL).Users().Load(context.Background(), nil, dashboard.NewQuery(dashboard.SourceUsers))
	assert.ErrorIs(t, err, dashboard.ErrNotFound)
	assert.Equal(t, "No users found", dashboard.Message(err))
}

// --- restcountries ---

func TestRestCountriesByName(t *testing.T) {
	p := newProvider(t, http.StatusOK, `[{"name":{"common":"Switzerland","official":"Swiss Confederation"},"flags":{"png":"https://flagcdn.com/ch.png"},"capital":["Bern"],"population":8654622,"region":"Europe","languages":{"fra":"French","gsw":"Swiss German","ita":"Italian","roh":"Romansh"},"currencies":{"CHF":{"name":"Swiss franc","symbol":"Fr."}}}]`)

	records, err := NewRestCountries(p.fetcher(), p.server.URL).ByName().Load(context.Background(), nil,
		dashboard.NewQuery(dashboard.SourceCountry, dashboard.ParamCountry, "Swiss Confederation"))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "Bern", r.Capital)
	assert.Equal(t, "8,654,622", r.PopulationLabel())
	assert.Equal(t, "French, Swiss German, Italian, Romansh", r.LanguagesLabel())
	assert.Equal(t, "Swiss franc (Fr.)", r.CurrenciesLabel())
	assert.Equal(t, "/name/Swiss Confederation", p.last.Load().Path)
}

func TestRestCountriesNotFound(t *testing.T) {
	p := newProvider(t, http.StatusNotFound, `{"status":404,"message":"Not Found"}`)
	_, err := NewRestCountries(p.fetcher(), p.server.URL).ByName().Load(context.Background(), nil,
		dashboard.NewQuery(dashboard.SourceCountry, dashboard.ParamCountry, "Narnia"))
	assert.ErrorIs(t, err, dashboard.ErrNotFound)
	assert.Equal(t, "Country not found", dashboard.Message(err))
}

func TestRestCountriesBlankName(t *testing.T) {
	p := newProvider(t, http.StatusOK, `[]`)
	_, err := NewRestCountries(p.fetcher(), p.server.URL).ByName().Load(context.Background(), nil,
		dashboard.NewQuery(dashboard.SourceCountry, dashboard.ParamCountry, ""))
	assert.ErrorIs(t, err, dashboard.ErrInput)
	assert.Zero(t, p.hits.Load())
}

// --- quotable ---

func TestQuotableRandomWithTag(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{"content":"Talk is cheap.","author":"Linus Torvalds","tags":["technology"]}`)
	records, err := NewQuotable(p.fetcher(), p.server.URL).Random().Load(context.Background(), nil,
		dashboard.NewQuery(dashboard.SourceQuote, dashboard.ParamTag, "technology"))
	require.NoError(t, err)
	assert.Equal(t, "Linus Torvalds", records[0].Author)

	u := p.last.Load()
	assert.Equal(t, "/random", u.Path)
	assert.Equal(t, "technology", u.Query().Get("tags"))
}

func TestQuotableStatusEnvelope(t *testing.T) {
	p := newProvider(t, http.StatusNotFound, `{"statusCode":404,"statusMessage":"Could not find any matching quotes"}`)
	_, err := NewQuotable(p.fetcher(), p.server.URL).Random().Load(context.Background(), nil,
		dashboard.NewQuery(dashboard.SourceQuote, dashboard.ParamTag, "nope"))
	assert.ErrorIs(t, err, dashboard.ErrNotFound)
	assert.Equal(t, "Could not find any matching quotes", dashboard.Message(err))

	p = newProvider(t, http.StatusInternalServerError, `{"statusCode":500}`)
	_, err = NewQuotable(p.fetcher(), p.server.URL).Random().Load(context.Background(), nil, dashboard.NewQuery(dashboard.SourceQuote))
	assert.ErrorIs(t, err, dashboard.ErrProvider)
	assert.Equal(t, "Internal Server Error", dashboard.Message(err))
}

// --- jokeapi ---

func TestJokeAPIProgramming(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{"error":false,"category":"Programming","type":"twopart","setup":"Why do programmers prefer dark mode?","delivery":"Because light attracts bugs."}`)
	records, err := NewJokeAPI(p.fetcher(), p.server.URL).Programming().Load(context.Background(), nil, dashboard.NewQuery(dashboard.SourceJoke))
	require.NoError(t, err)
	assert.False(t, records[0].IsSingle())
	assert.Equal(t, "Because light attracts bugs.", records[0].Delivery)

	u := p.last.Load()
	assert.Equal(t, "/joke/Programming", u.Path)
	assert.Equal(t, jokeBlacklist, u.Query().Get("blacklistFlags"))
}

func TestJokeAPISingleWithoutType(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{"joke":"There are 10 types of people."}`)
	records, err := NewJokeAPI(p.fetcher(), p.server.URL).Programming().Load(context.Background(), nil, dashboard.NewQuery(dashboard.SourceJoke))
	require.NoError(t, err)
	assert.True(t, records[0].IsSingle())
}

func TestJokeAPIErrorEnvelope(t *testing.T) {
	p := newProvider(t, http.StatusBadRequest, `{"error":true,"message":"No matching joke found"}`)
	_, err := NewJokeAPI(p.fetcher(), p.server.URL).Programming().Load(context.Background(), nil, dashboard.NewQuery(dashboard.SourceJoke))
	assert.ErrorIs(t, err, dashboard.ErrProvider)
	assert.Equal(t, "No matching joke found", dashboard.Message(err))
}

// --- dog.ceo ---

func TestDogCEOSingleImage(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{"status":"success","message":"https://images.dog.ceo/breeds/pug/1.jpg"}`)
	records, err := NewDogCEO(p.fetcher(), p.server.URL).Random().Load(context.Background(), nil, dashboard.NewQuery(dashboard.SourceDogs))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "pug", records[0].Breed())
	assert.Equal(t, "/breeds/image/random", p.last.Load().Path)
}

func TestDogCEOMultipleImages(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{"status":"success","message":["https://images.dog.ceo/breeds/a/1.jpg","https://images.dog.ceo/breeds/b/2.jpg","https://images.dog.ceo/breeds/c/3.jpg"]}`)
	records, err := NewDogCEO(p.fetcher(), p.server.URL).Random().Load(context.Background(), nil,
		dashboard.NewQuery(dashboard.SourceDogs, dashboard.ParamCount, "3"))
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, "/breeds/image/random/3", p.last.Load().Path)
}

func TestDogCEOFailure(t *testing.T) {
	p := newProvider(t, http.StatusNotFound, `{"status":"error","message":"Breed not found","code":404}`)
	_, err := NewDogCEO(p.fetcher(), p.server.URL).Random().Load(context.Background(), nil,
		dashboard.NewQuery(dashboard.SourceDogs, dashboard.ParamCount, "2"))
	assert.ErrorIs(t, err, dashboard.ErrProvider)
	assert.Equal(t, "Failed to fetch dog images", dashboard.Message(err))
}

func TestDogCEOCountBounds(t *testing.T) {
	p := newProvider(t, http.StatusOK, `{}`)
	_, err := NewDogCEO(p.fetcher(), p.server.URL).Random().Load(context.Background(), nil,
		dashboard.NewQuery(dashboard.SourceDogs, dashboard.ParamCount, "51"))
	assert.ErrorIs(t, err, dashboard.ErrInput)
	assert.Zero(t, p.hits.Load())
}

// --- registry ---

func TestNewWiresEverySource(t *testing.T) {
	src := New(http.DefaultClient, Endpoints{})
	assert.NotNil(t, src.StockEOD)
	assert.NotNil(t, src.StockLatest)
	assert.NotNil(t, src.Weather)
	assert.NotNil(t, src.Users)
	assert.NotNil(t, src.Country)
	assert.NotNil(t, src.Quote)
	assert.NotNil(t, src.Joke)
	assert.NotNil(t, src.Dogs)
	assert.Equal(t, dashboard.SourceWeather, src.Weather.Name())
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://x.test/v1/eod", buildURL("https://x.test/v1/", "/eod", nil))
	assert.Equal(t, "https://x.test/api?results=2", buildURL("https://x.test/api/", "", url.Values{"results": {"2"}}))
}
