package dashboard

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TrendingSymbols are loaded by the trending surface.
var TrendingSymbols = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "NFLX"}

// PopularSymbols are loaded by the popular surface, with display names.
var PopularSymbols = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META"}

var popularNames = map[string]string{
	"AAPL":  "Apple Inc.",
	"MSFT":  "Microsoft Corporation",
	"GOOGL": "Alphabet Inc.",
	"AMZN":  "Amazon.com Inc.",
	"TSLA":  "Tesla Inc.",
	"META":  "Meta Platforms Inc.",
}

// surfaceOrder is the order surfaces appear on the page.
var surfaceOrder = []SurfaceName{
	SurfaceStocks, SurfaceTrending, SurfacePopular, SurfaceLatest, SurfaceWeather,
	SurfaceUsers, SurfaceCountry, SurfaceQuote, SurfaceJoke, SurfaceDogs,
}

// Sources are the loaders the service dispatches to.
type Sources struct {
	StockEOD    Loader[StockRecord]
	StockLatest Loader[StockRecord]
	Weather     Loader[WeatherRecord]
	Users       Loader[UserRecord]
	Country     Loader[CountryRecord]
	Quote       Loader[QuoteRecord]
	Joke        Loader[JokeRecord]
	Dogs        Loader[DogRecord]
}

// Service runs the fetch → validate → render pipeline for every surface.
type Service struct {
	session  *Session
	sources  Sources
	renderer *Renderer
	surfaces map[SurfaceName]*Surface
	logger   *slog.Logger
}

func NewService(session *Session, sources Sources, renderer *Renderer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	surfaces := make(map[SurfaceName]*Surface, len(surfaceOrder))
	for _, name := range surfaceOrder {
		surfaces[name] = NewSurface(name)
	}
	return &Service{
		session:  session,
		sources:  sources,
		renderer: renderer,
		surfaces: surfaces,
		logger:   logger,
	}
}

// Session returns the session the service operates on.
func (s *Service) Session() *Session {
	return s.session
}

// Renderer returns the card renderer.
func (s *Service) Renderer() *Renderer {
	return s.renderer
}

// Surface returns the named surface.
func (s *Service) Surface(name SurfaceName) (*Surface, bool) {
	sf, ok := s.surfaces[name]
	return sf, ok
}

// Views returns a snapshot of every surface in page order.
func (s *Service) Views() []View {
	views := make([]View, 0, len(surfaceOrder))
	for _, name := range surfaceOrder {
		views = append(views, s.surfaces[name].View())
	}
	return views
}

// SearchStock loads the latest end-of-day quote for one symbol into the stocks surface.
func (s *Service) SearchStock(ctx context.Context, symbol string) (View, error) {
	return run(ctx, s, step[StockRecord]{
		surface:  SurfaceStocks,
		loader:   s.sources.StockEOD,
		query:    NewQuery(SourceStock, ParamSymbols, symbol, ParamLimit, "1"),
		template: TemplateStockCards,
		onCommit: s.session.setStocks,
		onFail:   s.session.clearStocks,
	})
}

// SearchSymbols loads several symbols at once into the stocks surface.
func (s *Service) SearchSymbols(ctx context.Context, symbols []string) (View, error) {
	return run(ctx, s, step[StockRecord]{
		surface:  SurfaceStocks,
		loader:   s.sources.StockEOD,
		query:    NewQuery(SourceStock, ParamSymbols, strings.Join(symbols, ","), ParamLimit, "10"),
		template: TemplateStockCards,
		notFound: "No data found",
		onCommit: s.session.setStocks,
	})
}

// LoadTrending fills the trending surface.
func (s *Service) LoadTrending(ctx context.Context) (View, error) {
	return run(ctx, s, step[StockRecord]{
		surface:  SurfaceTrending,
		loader:   s.sources.StockEOD,
		query:    NewQuery(SourceStock, ParamSymbols, strings.Join(TrendingSymbols, ","), ParamLimit, "8"),
		template: TemplateStockCards,
		notFound: "No trending data available",
	})
}

// LoadPopular fills the popular surface with named companies.
func (s *Service) LoadPopular(ctx context.Context) (View, error) {
	return run(ctx, s, step[StockRecord]{
		surface:  SurfacePopular,
		loader:   s.sources.StockLatest,
		query:    NewQuery(SourceStock, ParamSymbols, strings.Join(PopularSymbols, ",")),
		template: TemplatePopularCards,
		notFound: "No data available",
		transform: func(records []StockRecord) []StockRecord {
			for i := range records {
				if name, ok := popularNames[records[i].Symbol]; ok {
					records[i].Name = name
				}
			}
			return records
		},
	})
}

// LatestQuote loads the most recent quote for one symbol.
func (s *Service) LatestQuote(ctx context.Context, symbol string) (View, error) {
	return run(ctx, s, step[StockRecord]{
		surface:  SurfaceLatest,
		loader:   s.sources.StockLatest,
		query:    NewQuery(SourceStock, ParamSymbols, symbol),
		template: TemplateStockCards,
		transform: func(records []StockRecord) []StockRecord {
			return records[:min(len(records), 1)]
		},
	})
}

// FilterStocks narrows the last fetched stock list to a close-price range.
// Invalid bounds are rejected without touching the surface.
func (s *Service) FilterStocks(minRaw, maxRaw string) (View, error) {
	sf := s.surfaces[SurfaceStocks]
	bounds, err := ParsePriceRange(minRaw, maxRaw)
	if err != nil {
		return sf.View(), err
	}
	filtered := FilterByPrice(s.session.Stocks(), bounds)

	t := sf.Begin()
	if len(filtered) == 0 {
		return sf.Empty(t, "No stocks match the selected price range")
	}
	return s.show(sf, t, TemplateStockCards, filtered, len(filtered), nil, nil)
}

// ResetFilter redisplays the full cached stock list.
func (s *Service) ResetFilter() (View, error) {
	sf := s.surfaces[SurfaceStocks]
	stocks := s.session.Stocks()
	if len(stocks) == 0 {
		return sf.View(), nil
	}
	return s.show(sf, sf.Begin(), TemplateStockCards, stocks, len(stocks), nil, nil)
}

// FetchWeather geocodes city and loads its current conditions.
func (s *Service) FetchWeather(ctx context.Context, city string) (View, error) {
	return run(ctx, s, step[WeatherRecord]{
		surface:  SurfaceWeather,
		loader:   s.sources.Weather,
		query:    NewQuery(SourceWeather, ParamCity, city),
		template: TemplateWeatherCard,
	})
}

// FetchUsers loads count random users.
func (s *Service) FetchUsers(ctx context.Context, count string) (View, error) {
	return run(ctx, s, step[UserRecord]{
		surface:  SurfaceUsers,
		loader:   s.sources.Users,
		query:    NewQuery(SourceUsers, ParamCount, count),
		template: TemplateUserCards,
		notFound: "No users found",
	})
}

// FetchCountry looks up a country by name.
func (s *Service) FetchCountry(ctx context.Context, name string) (View, error) {
	return run(ctx, s, step[CountryRecord]{
		surface:  SurfaceCountry,
		loader:   s.sources.Country,
		query:    NewQuery(SourceCountry, ParamCountry, name),
		template: TemplateCountryCard,
		notFound: "Country not found",
		transform: func(records []CountryRecord) []CountryRecord {
			return records[:min(len(records), 1)]
		},
	})
}

// FetchQuote loads a random quote, optionally restricted to a tag.
func (s *Service) FetchQuote(ctx context.Context, tag string) (View, error) {
	return run(ctx, s, step[QuoteRecord]{
		surface:  SurfaceQuote,
		loader:   s.sources.Quote,
		query:    NewQuery(SourceQuote, ParamTag, tag),
		template: TemplateQuoteCard,
	})
}

// FetchJoke loads a programming joke.
func (s *Service) FetchJoke(ctx context.Context) (View, error) {
	return run(ctx, s, step[JokeRecord]{
		surface:  SurfaceJoke,
		loader:   s.sources.Joke,
		query:    NewQuery(SourceJoke),
		template: TemplateJokeCard,
	})
}

// FetchDogs loads count random dog images.
func (s *Service) FetchDogs(ctx context.Context, count string) (View, error) {
	return run(ctx, s, step[DogRecord]{
		surface:  SurfaceDogs,
		loader:   s.sources.Dogs,
		query:    NewQuery(SourceDogs, ParamCount, count),
		template: TemplateDogCards,
	})
}

// SaveAPIKey persists a new access key and reloads the popular surface with it.
// When the key itself is rejected or cannot be stored the returned view is zero.
func (s *Service) SaveAPIKey(ctx context.Context, key string) (View, error) {
	if err := s.session.SaveAPIKey(ctx, key); err != nil {
		return View{}, err
	}
	s.logger.Info("api key saved")
	return s.LoadPopular(ctx)
}

type step[D any] struct {
	surface  SurfaceName
	loader   Loader[D]
	query    Query
	template string
	// notFound overrides the provider's not-found message for this surface.
	notFound string
	// transform post-processes validated records before rendering.
	transform func([]D) []D
	// onCommit and onFail run inside the surface commit, so stale results never reach them.
	onCommit func([]D)
	onFail   func()
}

func run[D any](ctx context.Context, s *Service, st step[D]) (View, error) {
	sf, ok := s.surfaces[st.surface]
	if !ok {
		return View{}, fmt.Errorf("unknown surface %q", st.surface)
	}
	if st.loader == nil {
		return View{}, fmt.Errorf("surface %q has no source configured", st.surface)
	}

	requestID := uuid.NewString()
	logger := s.logger.With("surface", st.surface, "source", st.loader.Name(), "request_id", requestID)

	t := sf.Begin()
	started := time.Now()

	records, err := st.loader.Load(ctx, s.session, st.query)
	switch {
	case err == nil && len(records) == 0:
		err = NotFoundError(cmp.Or(st.notFound, "No results found"))
	case errors.Is(err, ErrNotFound) && st.notFound != "":
		err = NotFoundError(st.notFound)
	}
	if err != nil {
		logger.Warn("pipeline failed", "kind", KindOf(err), "error", err, "elapsed", time.Since(started))
		view, commitErr := sf.Fail(t, err, st.onFail)
		if commitErr != nil {
			logger.Debug("discarded stale failure", "generation", t.Generation())
			return view, commitErr
		}
		return view, err
	}

	if st.transform != nil {
		records = st.transform(records)
	}
	if len(records) == 0 {
		return sf.Empty(t, "No results")
	}

	var committed func()
	if st.onCommit != nil {
		committed = func() { st.onCommit(records) }
	}
	view, err := s.show(sf, t, st.template, records, len(records), committed, st.onFail)
	if err != nil {
		if errors.Is(err, ErrStale) {
			logger.Debug("discarded stale result", "generation", t.Generation())
		}
		return view, err
	}
	logger.Info("surface updated", "count", len(records), "elapsed", time.Since(started))
	return view, nil
}

func (s *Service) show(sf *Surface, t Ticket, tmpl string, records any, count int, onSuccess, onFail func()) (View, error) {
	html, err := s.renderer.Cards(tmpl, records)
	if err != nil {
		view, commitErr := sf.Fail(t, err, onFail)
		if commitErr != nil {
			return view, commitErr
		}
		return view, err
	}
	return sf.Succeed(t, html, count, onSuccess)
}
