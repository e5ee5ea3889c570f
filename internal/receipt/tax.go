package receipt

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Policy holds the thresholds of the tax-resolution and field-inclusion
// logic. The defaults reproduce the behavior the mobile client was tuned
// against; treat them as configuration, not law.
type Policy struct {
	// TaxMinConfidence gates trusting the provider's Tax field.
	TaxMinConfidence float64
	// SubtotalMinConfidence gates including the subtotal in the payload.
	SubtotalMinConfidence float64
	// MinInferredTax is the floor for an arithmetically inferred tax.
	MinInferredTax float64
	// MinImpliedRate and MaxImpliedRate bound the implied tax rate
	// (inferred tax / subtotal) accepted from the arithmetic fallback.
	MinImpliedRate float64
	MaxImpliedRate float64
}

// DefaultPolicy returns the production thresholds: trust the provider tax
// field at confidence >= 0.60, include subtotal at >= 0.80, and accept an
// inferred tax only above one cent at an implied rate of 0.5%-15%.
func DefaultPolicy() Policy {
	return Policy{
		TaxMinConfidence:      0.60,
		SubtotalMinConfidence: 0.80,
		MinInferredTax:        0.01,
		MinImpliedRate:        0.005,
		MaxImpliedRate:        0.15,
	}
}

// Currency-shaped numeric token: optional sign and dollar symbol, digit
// groups optionally comma-separated, optional 2-digit cents.
var taxAmountRe = regexp.MustCompile(`[-+]?\$?\s*(\d{1,3}(?:,\d{3})*|\d+)(?:\.(\d{2}))?`)

// ResolveTax decides the single trusted tax amount for a receipt. Three
// fallbacks are tried in strict priority order; the first non-nil answer
// wins and later ones are not consulted:
//
//  1. the provider's Tax field, when present, minimally confident, and
//     non-zero (providers report spurious 0.00 tax fields with weak
//     evidence);
//  2. a scan of the raw OCR lines for a right-aligned amount on a
//     "tax"-labeled line;
//  3. total minus subtotal, accepted only at a plausible implied rate.
//
// Nil is a valid, non-error outcome meaning the tax is unknown.
func (p Policy) ResolveTax(subtotal *float64, taxField RawField, total *float64, lines []string) *float64 {
	if taxField.Present && taxField.Confidence >= p.TaxMinConfidence {
		if t := NormalizeNumber(taxField.Value); t != nil && math.Abs(*t) > 1e-6 {
			return RoundMoney(t)
		}
	}

	if tax := taxFromLines(lines); tax != nil {
		return tax
	}

	return p.plausibleTax(subtotal, total)
}

// taxFromLines returns the last currency-shaped number on the first line
// containing "tax" but not "taxable" (which labels a base amount, not a
// tax). Tax amounts are conventionally right-aligned after the label, e.g.
// "Sales Tax .......... $10.44", hence the last token.
func taxFromLines(lines []string) *float64 {
	for _, line := range lines {
		l := strings.TrimSpace(line)
		ll := strings.ToLower(l)
		if !strings.Contains(ll, "tax") || strings.Contains(ll, "taxable") {
			continue
		}
		matches := taxAmountRe.FindAllStringSubmatch(l, -1)
		if len(matches) == 0 {
			continue
		}
		m := matches[len(matches)-1]
		whole := strings.ReplaceAll(m[1], ",", "")
		cents := m[2]
		if cents == "" {
			cents = "00"
		}
		f, err := strconv.ParseFloat(whole+"."+cents, 64)
		if err != nil {
			continue
		}
		return RoundMoney(&f)
	}
	return nil
}

// plausibleTax infers tax as total - subtotal, accepted only when the
// difference exceeds the floor and the implied rate falls inside the
// configured band. Rejects differences caused by tips or discounts folded
// into the total.
func (p Policy) plausibleTax(subtotal, total *float64) *float64 {
	if subtotal == nil || total == nil {
		return nil
	}
	cand := roundMoneyVal(*total - *subtotal)
	if cand <= p.MinInferredTax {
		return nil
	}
	if *subtotal > 0 {
		rate := cand / *subtotal
		if rate >= p.MinImpliedRate && rate <= p.MaxImpliedRate {
			return &cand
		}
	}
	return nil
}
