package dashboard

// Pictogram is the visual shown for a weather code.
type Pictogram struct {
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
}

var (
	PictogramClear        = Pictogram{Name: "clear", Glyph: "☀️"}
	PictogramMainlyClear  = Pictogram{Name: "mainly-clear", Glyph: "🌤️"}
	PictogramPartlyCloudy = Pictogram{Name: "partly-cloudy", Glyph: "⛅"}
	PictogramOvercast     = Pictogram{Name: "overcast", Glyph: "☁️"}
	PictogramFog          = Pictogram{Name: "fog", Glyph: "🌫️"}
	PictogramDrizzle      = Pictogram{Name: "drizzle", Glyph: "🌧️"}
	PictogramRain         = Pictogram{Name: "rain", Glyph: "🌧️"}
	PictogramSnow         = Pictogram{Name: "snow", Glyph: "🌨️"}
	PictogramThunderstorm = Pictogram{Name: "thunderstorm", Glyph: "⛈️"}

	// PictogramDefault is used for codes missing from the table.
	PictogramDefault = Pictogram{Name: "default", Glyph: "🌤️"}
)

// WMO weather interpretation codes as reported by Open-Meteo.
var weatherPictograms = map[int]Pictogram{
	0:  PictogramClear,
	1:  PictogramMainlyClear,
	2:  PictogramPartlyCloudy,
	3:  PictogramOvercast,
	45: PictogramFog,
	48: PictogramFog,
	51: PictogramDrizzle,
	53: PictogramDrizzle,
	55: PictogramDrizzle,
	61: PictogramRain,
	63: PictogramRain,
	65: PictogramRain,
	71: PictogramSnow,
	73: PictogramSnow,
	75: PictogramSnow,
	95: PictogramThunderstorm,
	96: PictogramThunderstorm,
	99: PictogramThunderstorm,
}

// PictogramFor maps a weather code to its pictogram.
func PictogramFor(code int) Pictogram {
	if p, ok := weatherPictograms[code]; ok {
		return p
	}
	return PictogramDefault
}
