package model

// TickerStats holds the 24h rolling stats used to enrich fetched bars.
type TickerStats struct {
	LastPrice   float64
	Volume      float64
	QuoteVolume float64
	High        float64
	Low         float64
}

// EnrichBars stamps 24h ticker stats onto every bar. Each bar gets its
// own copies so later mutation of one bar cannot leak into another.
func EnrichBars(bars []Bar, stats TickerStats) {
	for i := range bars {
		last, vol, quote, high, low := stats.LastPrice, stats.Volume, stats.QuoteVolume, stats.High, stats.Low
		bars[i].LastPrice24h = &last
		bars[i].Volume24h = &vol
		bars[i].QuoteVolume24h = &quote
		bars[i].High24h = &high
		bars[i].Low24h = &low
	}
}
