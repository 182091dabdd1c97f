package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teodordimeski/das/internal/api"
	"github.com/teodordimeski/das/internal/model"
)

// Fetcher downloads a date range of daily bars for one symbol by
// paginating bounded klines requests.
type Fetcher struct {
	client   *api.Client
	pageSize int
	logger   *slog.Logger
}

// New creates a Fetcher. pageSize is the number of daily points
// requested per page.
func New(client *api.Client, pageSize int, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:   client,
		pageSize: pageSize,
		logger:   logger,
	}
}

// FetchRange fetches bars for [start..end], both inclusive, both
// interpreted as UTC dates. The result is strictly ascending by date
// with no duplicates.
//
// On a request failure the already-fetched prefix is returned alongside
// the error; missing days are never fabricated. A page shorter than the
// requested window signals the end of available history and stops the
// loop without error.
func (f *Fetcher) FetchRange(ctx context.Context, symbol string, start, end time.Time) ([]model.Bar, error) {
	start = model.MidnightUTC(start)
	end = model.MidnightUTC(end)
	if start.After(end) {
		return nil, nil
	}

	var bars []model.Bar
	cursor := start

	for !cursor.After(end) {
		windowEnd := cursor.Add(time.Duration(f.pageSize)*model.Day - time.Millisecond)
		if windowEnd.After(end) {
			windowEnd = end
		}

		page, err := f.client.GetKlines(ctx, api.KlinesOptions{
			Symbol:    symbol,
			StartTime: cursor,
			EndTime:   windowEnd,
			Limit:     f.pageSize,
		})
		if err != nil {
			return bars, fmt.Errorf("fetch range %s from %s: %w",
				symbol, cursor.Format(time.DateOnly), err)
		}
		if len(page) == 0 {
			break
		}

		for _, k := range page {
			bar := k.Bar(symbol)
			if bar.Date.After(end) {
				break
			}
			// Guard against upstream duplicates or out-of-order rows.
			if len(bars) > 0 && !bar.Date.After(bars[len(bars)-1].Date) {
				continue
			}
			bars = append(bars, bar)
		}

		if len(page) < f.pageSize {
			break
		}

		last := model.MidnightUTC(time.UnixMilli(page[len(page)-1].OpenTime))
		cursor = last.Add(model.Day)
	}

	f.logger.Debug("range fetched",
		"symbol", symbol,
		"start", start.Format(time.DateOnly),
		"end", end.Format(time.DateOnly),
		"bars", len(bars),
	)

	return bars, nil
}

// ExchangeInfo fetches the full exchange symbol catalog.
func (f *Fetcher) ExchangeInfo(ctx context.Context) (*api.ExchangeInfo, error) {
	return f.client.GetExchangeInfo(ctx)
}

// AllTickers fetches 24h stats for every symbol on the exchange.
func (f *Fetcher) AllTickers(ctx context.Context) ([]api.Ticker24h, error) {
	return f.client.GetAllTickers(ctx)
}

// TickerStats fetches a symbol's 24h rolling stats for enrichment.
func (f *Fetcher) TickerStats(ctx context.Context, symbol string) (model.TickerStats, error) {
	tk, err := f.client.GetTicker24h(ctx, symbol)
	if err != nil {
		return model.TickerStats{}, err
	}
	return model.TickerStats{
		LastPrice:   api.ParseDecimal(tk.LastPrice),
		Volume:      api.ParseDecimal(tk.Volume),
		QuoteVolume: api.ParseDecimal(tk.QuoteVolume),
		High:        api.ParseDecimal(tk.HighPrice),
		Low:         api.ParseDecimal(tk.LowPrice),
	}, nil
}
