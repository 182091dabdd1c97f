package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/teodordimeski/das/internal/api"
	"github.com/teodordimeski/das/internal/model"
)

const dayMillis = int64(24 * time.Hour / time.Millisecond)

// klineJSON renders one candle in the upstream fixed-position format.
func klineJSON(openMillis int64, price float64) string {
	p := strconv.FormatFloat(price, 'f', 8, 64)
	return fmt.Sprintf(`[%d,"%s","%s","%s","%s","100.0",%d,"5000.0",42,"50.0","2500.0","0"]`,
		openMillis, p, p, p, p, openMillis+dayMillis-1)
}

// klinesHandler simulates the daily klines endpoint: one candle per UTC
// day in [startTime..endTime], capped by limit and by dataEnd.
func klinesHandler(t *testing.T, dataEnd time.Time, requests *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			atomic.AddInt32(requests, 1)
		}
		q := r.URL.Query()
		start, err := strconv.ParseInt(q.Get("startTime"), 10, 64)
		if err != nil {
			t.Errorf("bad startTime %q", q.Get("startTime"))
		}
		end, err := strconv.ParseInt(q.Get("endTime"), 10, 64)
		if err != nil {
			t.Errorf("bad endTime %q", q.Get("endTime"))
		}
		limit, _ := strconv.Atoi(q.Get("limit"))

		var rows []string
		for ts := start; ts <= end && len(rows) < limit; ts += dayMillis {
			if time.UnixMilli(ts).After(dataEnd) {
				break
			}
			rows = append(rows, klineJSON(ts, 100+float64(len(rows))))
		}

		w.Write([]byte("[" + strings.Join(rows, ",") + "]"))
	}
}

func newTestFetcher(serverURL string, pageSize int) *Fetcher {
	client := api.NewClient(serverURL,
		api.WithRetry(1, time.Millisecond, 1.7),
		api.WithRequestPause(0),
	)
	return New(client, pageSize, nil)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFetchRange(t *testing.T) {
	t.Run("single page", func(t *testing.T) {
		var requests int32
		server := httptest.NewServer(klinesHandler(t, date(2030, 1, 1), &requests))
		defer server.Close()

		f := newTestFetcher(server.URL, 1000)
		bars, err := f.FetchRange(context.Background(), "BTCUSDT", date(2024, 1, 11), date(2024, 1, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(bars) != 5 {
			t.Fatalf("len(bars) = %d, want 5", len(bars))
		}
		if requests != 1 {
			t.Errorf("requests = %d, want 1", requests)
		}
		if !bars[0].Date.Equal(date(2024, 1, 11)) {
			t.Errorf("first date = %v, want 2024-01-11", bars[0].Date)
		}
		if !bars[4].Date.Equal(date(2024, 1, 15)) {
			t.Errorf("last date = %v, want 2024-01-15", bars[4].Date)
		}
	})

	t.Run("pagination continuity across 2500 days", func(t *testing.T) {
		var requests int32
		server := httptest.NewServer(klinesHandler(t, date(2030, 1, 1), &requests))
		defer server.Close()

		start := date(2017, 1, 1)
		end := start.AddDate(0, 0, 2499) // 2500 days inclusive

		f := newTestFetcher(server.URL, 1000)
		bars, err := f.FetchRange(context.Background(), "BTCUSDT", start, end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(bars) != 2500 {
			t.Fatalf("len(bars) = %d, want 2500", len(bars))
		}
		if requests != 3 {
			t.Errorf("requests = %d, want 3", requests)
		}
		for i := 1; i < len(bars); i++ {
			if !bars[i].Date.After(bars[i-1].Date) {
				t.Fatalf("bars not strictly ascending at %d: %v then %v", i, bars[i-1].Date, bars[i].Date)
			}
			if bars[i].Date.Sub(bars[i-1].Date) != model.Day {
				t.Fatalf("gap at %d: %v then %v", i, bars[i-1].Date, bars[i].Date)
			}
		}
	})

	t.Run("failure keeps fetched prefix", func(t *testing.T) {
		var requests int32
		inner := klinesHandler(t, date(2030, 1, 1), nil)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&requests, 1) >= 2 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			inner(w, r)
		}))
		defer server.Close()

		start := date(2017, 1, 1)
		end := start.AddDate(0, 0, 2499)

		f := newTestFetcher(server.URL, 1000)
		bars, err := f.FetchRange(context.Background(), "BTCUSDT", start, end)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if len(bars) != 1000 {
			t.Errorf("len(bars) = %d, want 1000 (first page kept)", len(bars))
		}
		if !bars[len(bars)-1].Date.Equal(start.AddDate(0, 0, 999)) {
			t.Errorf("last kept date = %v, want %v", bars[len(bars)-1].Date, start.AddDate(0, 0, 999))
		}
	})

	t.Run("empty page means no new data", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		f := newTestFetcher(server.URL, 1000)
		bars, err := f.FetchRange(context.Background(), "BTCUSDT", date(2024, 1, 11), date(2024, 1, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(bars) != 0 {
			t.Errorf("len(bars) = %d, want 0", len(bars))
		}
	})

	t.Run("short page ends available history", func(t *testing.T) {
		var requests int32
		// Upstream only has data through 2024-01-20.
		server := httptest.NewServer(klinesHandler(t, date(2024, 1, 20), &requests))
		defer server.Close()

		f := newTestFetcher(server.URL, 1000)
		bars, err := f.FetchRange(context.Background(), "NEWCOIN", date(2024, 1, 11), date(2030, 1, 1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(bars) != 10 {
			t.Errorf("len(bars) = %d, want 10", len(bars))
		}
		if requests != 1 {
			t.Errorf("requests = %d, want 1", requests)
		}
	})

	t.Run("start after end is a no-op", func(t *testing.T) {
		f := newTestFetcher("http://unused.invalid", 1000)
		bars, err := f.FetchRange(context.Background(), "BTCUSDT", date(2024, 1, 16), date(2024, 1, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if bars != nil {
			t.Errorf("bars = %v, want nil", bars)
		}
	})

	t.Run("duplicate upstream rows are dropped", func(t *testing.T) {
		d := date(2024, 1, 11)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rows := []string{
				klineJSON(d.UnixMilli(), 100),
				klineJSON(d.UnixMilli(), 101), // same day repeated
				klineJSON(d.Add(model.Day).UnixMilli(), 102),
			}
			w.Write([]byte("[" + strings.Join(rows, ",") + "]"))
		}))
		defer server.Close()

		f := newTestFetcher(server.URL, 1000)
		bars, err := f.FetchRange(context.Background(), "BTCUSDT", d, d.Add(model.Day))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(bars) != 2 {
			t.Fatalf("len(bars) = %d, want 2", len(bars))
		}
		if bars[0].Open != 100 {
			t.Errorf("kept duplicate should be the first occurrence, got open %v", bars[0].Open)
		}
	})
}
