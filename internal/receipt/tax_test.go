package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTaxFieldTrust(t *testing.T) {
	pol := DefaultPolicy()

	// confident provider field wins over a line-scan candidate
	got := pol.ResolveTax(nil,
		RawField{Value: 5.00, Confidence: 0.9, Present: true},
		nil,
		[]string{"Sales Tax ... $9.99"},
	)
	require.NotNil(t, got)
	assert.Equal(t, 5.00, *got)

	// low confidence falls through to the line scan
	got = pol.ResolveTax(nil,
		RawField{Value: 5.00, Confidence: 0.4, Present: true},
		nil,
		[]string{"Sales Tax ... $9.99"},
	)
	require.NotNil(t, got)
	assert.Equal(t, 9.99, *got)

	// zero-valued field is never trusted even at high confidence
	got = pol.ResolveTax(nil,
		RawField{Value: 0.00, Confidence: 0.95, Present: true},
		nil, nil,
	)
	assert.Nil(t, got)

	// absent field, no lines, no subtotal/total: unknown
	assert.Nil(t, pol.ResolveTax(nil, RawField{}, nil, nil))
}

func TestResolveTaxLineScan(t *testing.T) {
	pol := DefaultPolicy()

	got := pol.ResolveTax(nil, RawField{}, nil, []string{
		"Subtotal 20.00",
		"Sales Tax ......... 1.50",
		"Total 21.50",
	})
	require.NotNil(t, got)
	assert.Equal(t, 1.50, *got)

	// last number on the line wins: amounts are right-aligned after labels
	got = pol.ResolveTax(nil, RawField{}, nil, []string{"Tax 8.25% $2.47"})
	require.NotNil(t, got)
	assert.Equal(t, 2.47, *got)

	// thousands separators and bare integers parse
	got = pol.ResolveTax(nil, RawField{}, nil, []string{"GST TAX $1,044.10"})
	require.NotNil(t, got)
	assert.Equal(t, 1044.10, *got)

	// "taxable" lines are base amounts, not taxes
	assert.Nil(t, pol.ResolveTax(nil, RawField{}, nil, []string{
		"Taxable Amount 20.00",
		"Total 20.00",
	}))

	// matching is case-insensitive
	got = pol.ResolveTax(nil, RawField{}, nil, []string{"SALES TAX 0.75"})
	require.NotNil(t, got)
	assert.Equal(t, 0.75, *got)

	// a tax line with no number is skipped, later lines still scanned
	got = pol.ResolveTax(nil, RawField{}, nil, []string{"Tax included", "State Tax 3.10"})
	require.NotNil(t, got)
	assert.Equal(t, 3.10, *got)
}

func TestResolveTaxArithmeticFallback(t *testing.T) {
	pol := DefaultPolicy()

	// 5% implied rate sits inside the plausibility band
	got := pol.ResolveTax(f(100.00), RawField{}, f(105.00), nil)
	require.NotNil(t, got)
	assert.Equal(t, 5.00, *got)

	// 20% exceeds the band: probably a tip or fee folded into the total
	assert.Nil(t, pol.ResolveTax(f(100.00), RawField{}, f(120.00), nil))

	// below the band
	assert.Nil(t, pol.ResolveTax(f(100.00), RawField{}, f(100.20), nil))

	// at most one cent of difference is noise
	assert.Nil(t, pol.ResolveTax(f(100.00), RawField{}, f(100.01), nil))

	// negative difference
	assert.Nil(t, pol.ResolveTax(f(100.00), RawField{}, f(95.00), nil))

	// zero subtotal can't imply a rate
	assert.Nil(t, pol.ResolveTax(f(0), RawField{}, f(5.00), nil))

	// either side unknown
	assert.Nil(t, pol.ResolveTax(nil, RawField{}, f(105.00), nil))
	assert.Nil(t, pol.ResolveTax(f(100.00), RawField{}, nil, nil))
}

func TestResolveTaxPriorityOrder(t *testing.T) {
	pol := DefaultPolicy()

	// line scan outranks the arithmetic fallback
	got := pol.ResolveTax(f(100.00), RawField{}, f(105.00), []string{"Sales Tax 4.50"})
	require.NotNil(t, got)
	assert.Equal(t, 4.50, *got)
}

func TestResolveTaxCustomPolicy(t *testing.T) {
	pol := DefaultPolicy()
	pol.TaxMinConfidence = 0.30

	got := pol.ResolveTax(nil, RawField{Value: "2.00", Confidence: 0.35, Present: true}, nil, nil)
	require.NotNil(t, got)
	assert.Equal(t, 2.00, *got)
}
