package store

import (
	"testing"
	"time"

	"github.com/teodordimeski/das/internal/model"
)

func TestBarArgs(t *testing.T) {
	t.Run("unenriched bar maps nil stats and null assets", func(t *testing.T) {
		b := model.Bar{
			Symbol:      "BTCUSDT",
			Date:        time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
			Open:        42850.01,
			High:        43250.00,
			Low:         42500.50,
			Close:       43100.99,
			Volume:      18234.55,
			QuoteVolume: 784512345.12,
		}

		args := barArgs(b)
		if len(args) != 15 {
			t.Fatalf("len(args) = %d, want 15", len(args))
		}
		if args[0] != "BTCUSDT" {
			t.Errorf("symbol = %v, want BTCUSDT", args[0])
		}
		if args[8] != (*float64)(nil) {
			t.Errorf("last_price_24h = %v, want nil", args[8])
		}
		if args[13] != (*string)(nil) {
			t.Errorf("base_asset = %v, want nil", args[13])
		}
	})

	t.Run("date is normalized to midnight UTC", func(t *testing.T) {
		b := model.Bar{
			Symbol: "BTCUSDT",
			Date:   time.Date(2024, 1, 11, 18, 30, 0, 0, time.FixedZone("CET", 3600)),
		}

		args := barArgs(b)
		got, ok := args[1].(time.Time)
		if !ok {
			t.Fatalf("date arg is %T, want time.Time", args[1])
		}
		want := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("date = %v, want %v", got, want)
		}
	})

	t.Run("enriched bar carries stats and assets", func(t *testing.T) {
		last := 43100.99
		b := model.Bar{
			Symbol:       "BTCUSDT",
			Date:         time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
			LastPrice24h: &last,
			BaseAsset:    "BTC",
			QuoteAsset:   "USDT",
		}

		args := barArgs(b)
		if p, ok := args[8].(*float64); !ok || p == nil || *p != 43100.99 {
			t.Errorf("last_price_24h = %v, want 43100.99", args[8])
		}
		if p, ok := args[13].(*string); !ok || p == nil || *p != "BTC" {
			t.Errorf("base_asset = %v, want BTC", args[13])
		}
		if p, ok := args[14].(*string); !ok || p == nil || *p != "USDT" {
			t.Errorf("quote_asset = %v, want USDT", args[14])
		}
	})
}
