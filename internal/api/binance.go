package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// GetExchangeInfo fetches the full symbol catalog.
func (c *Client) GetExchangeInfo(ctx context.Context) (*ExchangeInfo, error) {
	var resp ExchangeInfo
	if err := c.get(ctx, "/api/v3/exchangeInfo", nil, &resp); err != nil {
		return nil, fmt.Errorf("get exchange info: %w", err)
	}
	return &resp, nil
}

// GetAllTickers fetches 24h rolling stats for every symbol.
func (c *Client) GetAllTickers(ctx context.Context) ([]Ticker24h, error) {
	var resp []Ticker24h
	if err := c.get(ctx, "/api/v3/ticker/24hr", nil, &resp); err != nil {
		return nil, fmt.Errorf("get all tickers: %w", err)
	}
	return resp, nil
}

// GetTicker24h fetches 24h rolling stats for one symbol.
func (c *Client) GetTicker24h(ctx context.Context, symbol string) (*Ticker24h, error) {
	query := url.Values{}
	query.Set("symbol", symbol)

	var resp Ticker24h
	if err := c.get(ctx, "/api/v3/ticker/24hr", query, &resp); err != nil {
		return nil, fmt.Errorf("get ticker %s: %w", symbol, err)
	}
	return &resp, nil
}

// KlinesOptions bounds one klines request.
type KlinesOptions struct {
	Symbol    string
	StartTime time.Time // Inclusive, resolution ms
	EndTime   time.Time // Inclusive, resolution ms
	Limit     int       // Max candles returned
}

// GetKlines fetches one page of daily candlesticks.
func (c *Client) GetKlines(ctx context.Context, opts KlinesOptions) ([]Kline, error) {
	query := url.Values{}
	query.Set("symbol", opts.Symbol)
	query.Set("interval", "1d")
	query.Set("startTime", strconv.FormatInt(opts.StartTime.UnixMilli(), 10))
	query.Set("endTime", strconv.FormatInt(opts.EndTime.UnixMilli(), 10))
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var resp []Kline
	if err := c.get(ctx, "/api/v3/klines", query, &resp); err != nil {
		return nil, fmt.Errorf("get klines %s: %w", opts.Symbol, err)
	}
	return resp, nil
}
