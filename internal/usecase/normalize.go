package usecase

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/V4T54L/zid-tiktok-bridge/internal/pkg/fieldpath"
)

// ToNumber coerces a loosely typed JSON value to a finite float64.
// Anything non-numeric, NaN or infinite becomes 0.
func ToNumber(v any) float64 {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case json.Number:
		n = parseFloat(t.String())
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case string:
		n = parseFloat(t)
	case bool:
		if t {
			n = 1
		}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// NormalizeCurrency returns v as an uppercase three letter code, or
// fallback when v is absent or anything else.
func NormalizeCurrency(v any, fallback string) string {
	s, ok := fieldpath.Text(v)
	if !ok {
		return fallback
	}
	s = strings.ToUpper(s)
	if !IsCurrencyCode(s) {
		return fallback
	}
	return s
}

// IsCurrencyCode reports whether s is three uppercase ASCII letters.
func IsCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
