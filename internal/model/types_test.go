package model

import (
	"testing"
	"time"
)

func TestMidnightUTC(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "already midnight UTC",
			in:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "midday truncates",
			in:   time.Date(2024, 1, 15, 13, 45, 12, 999, time.UTC),
			want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non-UTC zone converts first",
			in:   time.Date(2024, 1, 15, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600)),
			want: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MidnightUTC(tt.in); !got.Equal(tt.want) {
				t.Errorf("MidnightUTC(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{
			name:  "same day",
			start: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "five day range",
			start: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			want:  5,
		},
		{
			name:  "start after end",
			start: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "intraday times truncate",
			start: time.Date(2024, 1, 11, 23, 59, 0, 0, time.UTC),
			end:   time.Date(2024, 1, 12, 0, 1, 0, 0, time.UTC),
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.start, tt.end); got != tt.want {
				t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
