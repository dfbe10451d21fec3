package util

import (
	"testing"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "zero bytes", bytes: 0, expected: "0 B"},
		{name: "bytes under kilobyte", bytes: 512, expected: "512 B"},
		{name: "exact kilobyte", bytes: 1024, expected: "1.0 KB"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5 KB"},
		{name: "megabyte", bytes: 1024 * 1024, expected: "1.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatBytes(tt.bytes); got != tt.expected {
				t.Fatalf("FormatBytes(%d) = %s, want %s", tt.bytes, got, tt.expected)
			}
		})
	}
}

func TestFormatFixed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    float64
		decimals int
		expected string
	}{
		{name: "two decimals", value: 12.5, decimals: 2, expected: "12.50"},
		{name: "one decimal rounds", value: 66.666, decimals: 1, expected: "66.7"},
		{name: "zero decimals", value: 3.4, decimals: 0, expected: "3"},
		{name: "negative decimals clamp", value: 3.4, decimals: -1, expected: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatFixed(tt.value, tt.decimals); got != tt.expected {
				t.Fatalf("FormatFixed(%v, %d) = %s, want %s", tt.value, tt.decimals, got, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	if got := Percent(1, 4); got != 25 {
		t.Fatalf("Percent(1, 4) = %v, want 25", got)
	}
	if got := Percent(3, 0); got != 0 {
		t.Fatalf("Percent(3, 0) = %v, want 0", got)
	}
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount   float64
		expected string
	}{
		{amount: 0, expected: "0 so'm"},
		{amount: 999, expected: "999 so'm"},
		{amount: 1000, expected: "1 000 so'm"},
		{amount: 1250000, expected: "1 250 000 so'm"},
		{amount: -45000, expected: "-45 000 so'm"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()

			if got := FormatPrice(tt.amount); got != tt.expected {
				t.Fatalf("FormatPrice(%v) = %s, want %s", tt.amount, got, tt.expected)
			}
		})
	}
}
