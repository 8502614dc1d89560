package usecase

import (
	"encoding/json"
	"math"
	"testing"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{name: "Float", input: 12.5, want: 12.5},
		{name: "JSON number", input: json.Number("19.99"), want: 19.99},
		{name: "Numeric string", input: "19.99", want: 19.99},
		{name: "Padded string", input: "  7 ", want: 7},
		{name: "Empty string", input: "", want: 0},
		{name: "Garbage string", input: "abc", want: 0},
		{name: "NaN string", input: "NaN", want: 0},
		{name: "Infinity string", input: "Inf", want: 0},
		{name: "NaN float", input: math.NaN(), want: 0},
		{name: "Infinite float", input: math.Inf(-1), want: 0},
		{name: "True", input: true, want: 1},
		{name: "False", input: false, want: 0},
		{name: "Nil", input: nil, want: 0},
		{name: "Object", input: map[string]any{"a": 1}, want: 0},
		{name: "Array", input: []any{1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToNumber(tt.input); got != tt.want {
				t.Errorf("ToNumber(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "Lowercase", input: "sar", want: "SAR"},
		{name: "Padded", input: " usd ", want: "USD"},
		{name: "Too long", input: "EURO", want: "SAR"},
		{name: "Too short", input: "EU", want: "SAR"},
		{name: "Empty", input: "", want: "SAR"},
		{name: "Nil", input: nil, want: "SAR"},
		{name: "Number", input: json.Number("123"), want: "SAR"},
		{name: "Non ASCII", input: "€ur", want: "SAR"},
		{name: "Object", input: map[string]any{"code": "USD"}, want: "SAR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCurrency(tt.input, "SAR")
			if got != tt.want {
				t.Errorf("NormalizeCurrency(%v) = %q, want %q", tt.input, got, tt.want)
			}
			if len(got) != 3 {
				t.Errorf("expected 3 characters, got %q", got)
			}
		})
	}
}

func TestNormalizeCurrency_CustomFallback(t *testing.T) {
	if got := NormalizeCurrency("x", "AED"); got != "AED" {
		t.Errorf("expected configured fallback, got %q", got)
	}
}
