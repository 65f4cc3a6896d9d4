package dashboard

import (
	"math"
	"strconv"
	"strings"
)

// PriceRange is an inclusive [Min, Max] bound on close price.
type PriceRange struct {
	Min float64
	Max float64
}

// ParsePriceRange reads user-entered bounds. Unparsable or empty values
// default to 0 and +Inf respectively. Min greater than Max is an input error.
func ParsePriceRange(minRaw, maxRaw string) (PriceRange, error) {
	r := PriceRange{Min: 0, Max: math.Inf(1)}
	if v, ok := parseBound(minRaw); ok {
		r.Min = v
	}
	if v, ok := parseBound(maxRaw); ok {
		r.Max = v
	}
	if r.Min > r.Max {
		return r, InputError("Minimum price cannot be greater than maximum price")
	}
	return r, nil
}

func parseBound(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Contains reports whether price falls in the range.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterByPrice returns the records whose close price is in r, preserving order.
func FilterByPrice(records []StockRecord, r PriceRange) []StockRecord {
	out := make([]StockRecord, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.Price()) {
			out = append(out, rec)
		}
	}
	return out
}
