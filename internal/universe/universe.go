// Package universe selects the backfill symbol universe from the
// exchange catalog and 24h ticker stats.
package universe

import (
	"sort"

	"github.com/teodordimeski/das/internal/api"
)

// Criteria is the static eligibility filter plus ranking bounds.
type Criteria struct {
	MinQuoteVolume float64  // 24h quote volume floor
	QuoteAssets    []string // Accepted quote assets
	TopN           int      // Universe size after ranking
}

// Listing is one selected symbol with its catalog metadata.
type Listing struct {
	Symbol      string
	BaseAsset   string
	QuoteAsset  string
	QuoteVolume float64 // 24h, used for ranking
}

// Eligible reports whether a symbol passes the static filter: actively
// trading, a non-zero last price, enough 24h quote volume, and quoted
// in an accepted asset.
func Eligible(info api.SymbolInfo, tk api.Ticker24h, c Criteria) bool {
	if info.Status != "TRADING" {
		return false
	}
	if !containsAsset(c.QuoteAssets, info.QuoteAsset) {
		return false
	}
	if api.ParseDecimal(tk.LastPrice) <= 0 {
		return false
	}
	if api.ParseDecimal(tk.QuoteVolume) < c.MinQuoteVolume {
		return false
	}
	return true
}

// Select ranks eligible symbols by 24h quote volume, descending, and
// returns at most TopN listings.
func Select(info *api.ExchangeInfo, tickers []api.Ticker24h, c Criteria) []Listing {
	bySymbol := make(map[string]api.Ticker24h, len(tickers))
	for _, tk := range tickers {
		bySymbol[tk.Symbol] = tk
	}

	var listings []Listing
	for _, sym := range info.Symbols {
		tk, ok := bySymbol[sym.Symbol]
		if !ok {
			continue
		}
		if !Eligible(sym, tk, c) {
			continue
		}
		listings = append(listings, Listing{
			Symbol:      sym.Symbol,
			BaseAsset:   sym.BaseAsset,
			QuoteAsset:  sym.QuoteAsset,
			QuoteVolume: api.ParseDecimal(tk.QuoteVolume),
		})
	}

	sort.Slice(listings, func(i, j int) bool {
		if listings[i].QuoteVolume != listings[j].QuoteVolume {
			return listings[i].QuoteVolume > listings[j].QuoteVolume
		}
		return listings[i].Symbol < listings[j].Symbol
	})

	if c.TopN > 0 && len(listings) > c.TopN {
		listings = listings[:c.TopN]
	}
	return listings
}

func containsAsset(assets []string, asset string) bool {
	for _, a := range assets {
		if a == asset {
			return true
		}
	}
	return false
}
