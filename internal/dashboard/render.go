package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Card template names, one per source.
const (
	TemplateStockCards   = "stock_cards"
	TemplatePopularCards = "popular_cards"
	TemplateWeatherCard  = "weather_card"
	TemplateUserCards    = "user_cards"
	TemplateCountryCard  = "country_card"
	TemplateQuoteCard    = "quote_card"
	TemplateJokeCard     = "joke_card"
	TemplateDogCards     = "dog_cards"

	TemplatePage    = "index.html"
	TemplateSurface = "surface"
)

// Renderer turns display records into card markup.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"dollars": FormatDollars,
		"volume":  FormatVolume,
		"date":    FormatDate,
		"orNA":    OrNA,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Cards renders records with the named card template.
func (r *Renderer) Cards(name string, records any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, records); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Render writes a full template to w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
