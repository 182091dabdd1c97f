package universe

import (
	"testing"

	"github.com/teodordimeski/das/internal/api"
)

var criteria = Criteria{
	MinQuoteVolume: 10000,
	QuoteAssets:    []string{"USDT", "USDC"},
	TopN:           1000,
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name string
		info api.SymbolInfo
		tk   api.Ticker24h
		want bool
	}{
		{
			name: "liquid trading pair passes",
			info: api.SymbolInfo{Symbol: "BTCUSDT", Status: "TRADING", QuoteAsset: "USDT"},
			tk:   api.Ticker24h{LastPrice: "43100.99", QuoteVolume: "784512345.12"},
			want: true,
		},
		{
			name: "not trading",
			info: api.SymbolInfo{Symbol: "OLDUSDT", Status: "BREAK", QuoteAsset: "USDT"},
			tk:   api.Ticker24h{LastPrice: "1.0", QuoteVolume: "50000"},
			want: false,
		},
		{
			name: "wrong quote asset",
			info: api.SymbolInfo{Symbol: "ETHBTC", Status: "TRADING", QuoteAsset: "BTC"},
			tk:   api.Ticker24h{LastPrice: "0.05", QuoteVolume: "50000"},
			want: false,
		},
		{
			name: "zero last price",
			info: api.SymbolInfo{Symbol: "DEADUSDT", Status: "TRADING", QuoteAsset: "USDT"},
			tk:   api.Ticker24h{LastPrice: "0.00000000", QuoteVolume: "50000"},
			want: false,
		},
		{
			name: "quote volume below floor",
			info: api.SymbolInfo{Symbol: "THINUSDT", Status: "TRADING", QuoteAsset: "USDT"},
			tk:   api.Ticker24h{LastPrice: "1.0", QuoteVolume: "9999.99"},
			want: false,
		},
		{
			name: "quote volume at floor passes",
			info: api.SymbolInfo{Symbol: "EDGEUSDT", Status: "TRADING", QuoteAsset: "USDT"},
			tk:   api.Ticker24h{LastPrice: "1.0", QuoteVolume: "10000"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eligible(tt.info, tt.tk, criteria); got != tt.want {
				t.Errorf("Eligible(%s) = %v, want %v", tt.info.Symbol, got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	info := &api.ExchangeInfo{
		Symbols: []api.SymbolInfo{
			{Symbol: "BTCUSDT", Status: "TRADING", BaseAsset: "BTC", QuoteAsset: "USDT"},
			{Symbol: "ETHUSDT", Status: "TRADING", BaseAsset: "ETH", QuoteAsset: "USDT"},
			{Symbol: "SOLUSDC", Status: "TRADING", BaseAsset: "SOL", QuoteAsset: "USDC"},
			{Symbol: "OLDUSDT", Status: "BREAK", BaseAsset: "OLD", QuoteAsset: "USDT"},
			{Symbol: "ETHBTC", Status: "TRADING", BaseAsset: "ETH", QuoteAsset: "BTC"},
			{Symbol: "NOTICKERUSDT", Status: "TRADING", BaseAsset: "NOTICKER", QuoteAsset: "USDT"},
		},
	}
	tickers := []api.Ticker24h{
		{Symbol: "BTCUSDT", LastPrice: "43100.99", QuoteVolume: "784512345.12"},
		{Symbol: "ETHUSDT", LastPrice: "2500.00", QuoteVolume: "412345678.90"},
		{Symbol: "SOLUSDC", LastPrice: "95.50", QuoteVolume: "98765432.10"},
		{Symbol: "OLDUSDT", LastPrice: "1.00", QuoteVolume: "50000"},
		{Symbol: "ETHBTC", LastPrice: "0.05", QuoteVolume: "99999999"},
	}

	t.Run("ranks by quote volume descending", func(t *testing.T) {
		got := Select(info, tickers, criteria)
		want := []string{"BTCUSDT", "ETHUSDT", "SOLUSDC"}
		if len(got) != len(want) {
			t.Fatalf("len = %d, want %d: %v", len(got), len(want), got)
		}
		for i, sym := range want {
			if got[i].Symbol != sym {
				t.Errorf("listing[%d] = %q, want %q", i, got[i].Symbol, sym)
			}
		}
		if got[0].BaseAsset != "BTC" || got[0].QuoteAsset != "USDT" {
			t.Errorf("assets = %q/%q, want BTC/USDT", got[0].BaseAsset, got[0].QuoteAsset)
		}
	})

	t.Run("top n caps the universe", func(t *testing.T) {
		c := criteria
		c.TopN = 2
		got := Select(info, tickers, c)
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].Symbol != "BTCUSDT" || got[1].Symbol != "ETHUSDT" {
			t.Errorf("top 2 = %q, %q", got[0].Symbol, got[1].Symbol)
		}
	})

	t.Run("equal volume breaks ties by symbol", func(t *testing.T) {
		tied := []api.Ticker24h{
			{Symbol: "BTCUSDT", LastPrice: "1", QuoteVolume: "50000"},
			{Symbol: "ETHUSDT", LastPrice: "1", QuoteVolume: "50000"},
		}
		got := Select(info, tied, criteria)
		if len(got) != 2 || got[0].Symbol != "BTCUSDT" {
			t.Errorf("tie break order wrong: %v", got)
		}
	})
}
