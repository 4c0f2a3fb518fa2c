package company

import "strings"

// defaultNames are brand names as they appear in logo domains.
var defaultNames = map[string]string{
	"AAPL":  "apple",
	"AMD":   "amd",
	"AMZN":  "amazon",
	"COIN":  "coinbase",
	"GOOG":  "google",
	"GOOGL": "google",
	"META":  "meta",
	"MSFT":  "microsoft",
	"NFLX":  "netflix",
	"NVDA":  "nvidia",
	"PLTR":  "palantir",
	"SPY":   "ssga",
	"TSLA":  "tesla",
}

// Directory resolves tickers to company names from a fixed table.
type Directory struct {
	names map[string]string
}

// New returns a directory seeded with the built-in table. Entries in
// overrides replace or extend it; an empty name removes a ticker.
func New(overrides map[string]string) *Directory {
	names := make(map[string]string, len(defaultNames)+len(overrides))
	for k, v := range defaultNames {
		names[k] = v
	}
	for k, v := range overrides {
		k = normalize(k)
		if v = strings.TrimSpace(v); v == "" {
			delete(names, k)
			continue
		}
		names[k] = v
	}
	return &Directory{names: names}
}

// Lookup is case-insensitive on the ticker.
func (d *Directory) Lookup(ticker string) (string, bool) {
	name, ok := d.names[normalize(ticker)]
	return name, ok
}

func (d *Directory) Len() int { return len(d.names) }

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
