package dashboard

import (
	"math"
	"net/url"
	"strings"
	"time"
)

// StockRecord is one end-of-day quote.
type StockRecord struct {
	Symbol   string    `json:"symbol"`
	Name     string    `json:"name,omitempty"`
	Exchange string    `json:"exchange,omitempty"`
	Open     *float64  `json:"open"`
	Close    *float64  `json:"close"`
	High     *float64  `json:"high"`
	Low      *float64  `json:"low"`
	Volume   *float64  `json:"volume"`
	Date     time.Time `json:"date"`
}

// Price is the close price used for range filtering; missing counts as 0.
func (r StockRecord) Price() float64 {
	if r.Close == nil {
		return 0
	}
	return *r.Close
}

// Change returns close-open and the percent change relative to open.
// ok is false when either price is missing. An open of 0 yields a non-finite percent.
func (r StockRecord) Change() (change, percent float64, ok bool) {
	if r.Open == nil || r.Close == nil {
		return 0, 0, false
	}
	change = *r.Close - *r.Open
	percent = change / *r.Open * 100
	return change, percent, true
}

// Trend is the visual class for the price change.
func (r StockRecord) Trend() string {
	change, _, ok := r.Change()
	switch {
	case !ok:
		return "neutral"
	case change >= 0:
		return "positive"
	default:
		return "negative"
	}
}

// ChangeLabel renders the change as "+10.00 (+10.00%)".
func (r StockRecord) ChangeLabel() string {
	change, percent, ok := r.Change()
	if !ok {
		return NA
	}
	return FormatSigned(change) + " (" + FormatSigned(percent) + "%)"
}

// Arrow is the direction glyph for the change.
func (r StockRecord) Arrow() string {
	switch r.Trend() {
	case "positive":
		return "▲"
	case "negative":
		return "▼"
	}
	return ""
}

// Initials is the two-letter badge shown on cards.
func (r StockRecord) Initials() string {
	s := strings.ToUpper(r.Symbol)
	if len(s) > 2 {
		return s[:2]
	}
	return s
}

// DisplayName prefers the company name, then the exchange.
func (r StockRecord) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return OrNA(r.Exchange)
}

// WeatherRecord is the current conditions for a geocoded place.
type WeatherRecord struct {
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Temperature *float64  `json:"temperatureC"`
	Humidity    *float64  `json:"humidityPercent"`
	WindSpeed   *float64  `json:"windSpeedKmh"`
	Code        *int      `json:"weatherCode"`
	Time        time.Time `json:"time"`
}

// Pictogram maps the weather code; a missing code uses the default.
func (r WeatherRecord) Pictogram() Pictogram {
	if r.Code == nil {
		return PictogramDefault
	}
	return PictogramFor(*r.Code)
}

// TemperatureLabel rounds half up to whole degrees.
func (r WeatherRecord) TemperatureLabel() string {
	if r.Temperature == nil {
		return NA
	}
	rounded := math.Floor(*r.Temperature + 0.5)
	return formatNumber(&rounded, "°C")
}

func (r WeatherRecord) HumidityLabel() string { return formatNumber(r.Humidity, "%") }

func (r WeatherRecord) WindLabel() string { return formatNumber(r.WindSpeed, " km/h") }

func (r WeatherRecord) TimeLabel() string { return FormatClock(r.Time) }

// Place renders "City, Country".
func (r WeatherRecord) Place() string {
	return OrNA(r.City) + ", " + OrNA(r.Country)
}

// UserRecord is one generated person.
type UserRecord struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Picture   string `json:"picture"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
	Age       *int   `json:"age"`
	Username  string `json:"username"`
}

func (r UserRecord) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

func (r UserRecord) AgeLabel() string {
	if r.Age == nil {
		return NA
	}
	return FormatCount(int64(*r.Age)) + " years old"
}

func (r UserRecord) Location() string {
	return OrNA(r.City) + ", " + OrNA(r.Country)
}

// Currency is one official currency of a country.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// CountryRecord is the summary of one country lookup.
type CountryRecord struct {
	CommonName   string     `json:"commonName"`
	OfficialName string     `json:"officialName"`
	FlagURL      string     `json:"flag"`
	Capital      string     `json:"capital"`
	Population   *int64     `json:"population"`
	Region       string     `json:"region"`
	Languages    []string   `json:"languages"`
	Currencies   []Currency `json:"currencies"`
}

func (r CountryRecord) PopulationLabel() string {
	if r.Population == nil {
		return NA
	}
	return FormatCount(*r.Population)
}

func (r CountryRecord) LanguagesLabel() string {
	if len(r.Languages) == 0 {
		return NA
	}
	return strings.Join(r.Languages, ", ")
}

// CurrenciesLabel renders "Euro (€), ..." in provider order.
func (r CountryRecord) CurrenciesLabel() string {
	if len(r.Currencies) == 0 {
		return NA
	}
	parts := make([]string, 0, len(r.Currencies))
	for _, c := range r.Currencies {
		parts = append(parts, OrNA(c.Name)+" ("+OrNA(c.Symbol)+")")
	}
	return strings.Join(parts, ", ")
}

// QuoteRecord is one quotation.
type QuoteRecord struct {
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags,omitempty"`
}

// JokeRecord is a single-line or two-part joke.
type JokeRecord struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Joke     string `json:"joke,omitempty"`
	Setup    string `json:"setup,omitempty"`
	Delivery string `json:"delivery,omitempty"`
}

func (r JokeRecord) IsSingle() bool { return r.Type == "single" }

// DogRecord is one dog image.
type DogRecord struct {
	ImageURL string `json:"imageUrl"`
}

// Breed extracts the breed segment from dog.ceo image URLs
// (".../breeds/<breed>/<file>.jpg").
func (r DogRecord) Breed() string {
	u, err := url.Parse(r.ImageURL)
	if err != nil {
		return NA
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "breeds" && i+2 < len(parts) {
			return strings.ReplaceAll(parts[i+1], "-", " ")
		}
	}
	return NA
}
