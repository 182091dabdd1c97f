package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ExchangeInfo from GET /api/v3/exchangeInfo
type ExchangeInfo struct {
	Symbols []SymbolInfo `json:"symbols"`
}

// SymbolInfo describes one trading pair in the exchange catalog.
type SymbolInfo struct {
	Symbol     string `json:"symbol"`
	Status     string `json:"status"` // "TRADING" when active
	BaseAsset  string `json:"baseAsset"`
	QuoteAsset string `json:"quoteAsset"`
}

// Ticker24h from GET /api/v3/ticker/24hr. Binance serializes all
// decimal fields as strings.
type Ticker24h struct {
	Symbol      string `json:"symbol"`
	LastPrice   string `json:"lastPrice"`
	HighPrice   string `json:"highPrice"`
	LowPrice    string `json:"lowPrice"`
	Volume      string `json:"volume"`
	QuoteVolume string `json:"quoteVolume"`
}

// Kline is one candlestick from GET /api/v3/klines. The API returns a
// fixed-position JSON array per candle:
//
//	[ openTime(ms), open, high, low, close, volume,
//	  closeTime(ms), quoteVolume, trades, ... ]
//
// with prices and volumes as strings.
type Kline struct {
	OpenTime    int64 // ms since epoch
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      float64
	CloseTime   int64 // ms since epoch
	QuoteVolume float64
	Trades      int64
}

// klineFields is the minimum array length we require from the API.
const klineFields = 9

func (k *Kline) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("kline array: %w", err)
	}
	if len(raw) < klineFields {
		return fmt.Errorf("kline array has %d fields, want >= %d", len(raw), klineFields)
	}

	if err := json.Unmarshal(raw[0], &k.OpenTime); err != nil {
		return fmt.Errorf("kline open time: %w", err)
	}
	if err := json.Unmarshal(raw[6], &k.CloseTime); err != nil {
		return fmt.Errorf("kline close time: %w", err)
	}
	if err := json.Unmarshal(raw[8], &k.Trades); err != nil {
		return fmt.Errorf("kline trade count: %w", err)
	}

	decimals := []struct {
		idx  int
		name string
		dst  *float64
	}{
		{1, "open", &k.Open},
		{2, "high", &k.High},
		{3, "low", &k.Low},
		{4, "close", &k.Close},
		{5, "volume", &k.Volume},
		{7, "quote volume", &k.QuoteVolume},
	}
	for _, d := range decimals {
		var s string
		if err := json.Unmarshal(raw[d.idx], &s); err != nil {
			return fmt.Errorf("kline %s: %w", d.name, err)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("kline %s %q: %w", d.name, s, err)
		}
		*d.dst = v
	}

	return nil
}

// ParseDecimal converts a Binance string-encoded decimal to a float64.
// Empty or malformed values yield 0, matching how the upstream treats
// absent ticker fields.
func ParseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
