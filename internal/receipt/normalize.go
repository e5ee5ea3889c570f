package receipt

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// NormalizeNumber parses a provider value into a float. It accepts native
// numbers or strings with thousands separators and a leading currency
// symbol. Parsing is best-effort: any failure yields nil, never an error.
func NormalizeNumber(v any) *float64 {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		f := t
		return &f
	case float32:
		f := float64(t)
		return &f
	case int:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(t, ",", ""), "$", ""))
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// RoundMoney rounds to 2 decimal places, half away from zero. The 1e-8
// bias counters binary representation error (10.005 would otherwise round
// down). Nil passes through: nil means "unknown", never zero.
func RoundMoney(x *float64) *float64 {
	if x == nil {
		return nil
	}
	r := math.Round((*x+1e-8)*100) / 100
	return &r
}

// roundMoneyVal is RoundMoney for a known value.
func roundMoneyVal(x float64) float64 {
	return math.Round((x+1e-8)*100) / 100
}

// FormatAddress builds a single-line human-readable address. A unified
// street_address component wins; otherwise house number and road form the
// core, with the unit appended comma-separated. City/state/postal/country
// trail, comma-joined, skipping empty parts. Returns "" only when every
// component is empty.
func FormatAddress(c AddressComponents) string {
	if len(c) == 0 {
		return ""
	}
	core := c[AddrStreetAddress]
	if core == "" {
		core = joinNonEmpty(" ", c[AddrHouseNumber], c[AddrRoad])
		if unit := c[AddrUnit]; unit != "" {
			if core != "" {
				core = core + ", " + unit
			} else {
				core = unit
			}
		}
	}
	tail := joinNonEmpty(", ", c[AddrCity], c[AddrState], c[AddrPostalCode], c[AddrCountryRegion])
	return joinNonEmpty(", ", core, tail)
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeDate parses a provider date string (optionally Z-suffixed) and
// re-serializes it as ISO-8601 UTC with a literal Z suffix. Returns "" on
// any parse failure.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			continue
		}
		return t.UTC().Format(time.RFC3339)
	}
	return ""
}
