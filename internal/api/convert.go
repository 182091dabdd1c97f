package api

import (
	"time"

	"github.com/teodordimeski/das/internal/model"
)

// Bar converts a kline into the domain bar for the given symbol.
// Enrichment fields are left nil; they are populated, if at all, from a
// separate 24h ticker call.
func (k Kline) Bar(symbol string) model.Bar {
	return model.Bar{
		Symbol:      symbol,
		Date:        model.MidnightUTC(time.UnixMilli(k.OpenTime)),
		Open:        k.Open,
		High:        k.High,
		Low:         k.Low,
		Close:       k.Close,
		Volume:      k.Volume,
		QuoteVolume: k.QuoteVolume,
	}
}
