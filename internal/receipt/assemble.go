package receipt

// Assemble combines the normalized document fields into the final result,
// applying each field's inclusion policy independently:
//
//   - subtotal requires provider presence, the configured confidence, and a
//     parsed value;
//   - tax is included whenever ResolveTax answers — the resolver already
//     embeds the trust policy, no extra confidence gate;
//   - everything else is included whenever non-null and non-empty;
//   - tip is categorically excluded, a policy choice rather than a parsing
//     limitation.
//
// Null and empty values never appear as keys in the serialized result;
// the struct's omitempty tags make that unconditional.
func (p Policy) Assemble(doc Document) ReceiptResult {
	res := ReceiptResult{
		Provider: ProviderAzure,
		Items:    doc.Items,
		RawLines: doc.Lines,
		Confidences: map[string]float64{
			"merchant": doc.Merchant.Confidence,
			"address":  doc.Address.Confidence,
			"date":     doc.Date.Confidence,
			"subtotal": doc.Subtotal.Confidence,
			"tax":      doc.Tax.Confidence,
			"total":    doc.Total.Confidence,
		},
	}

	if s, ok := doc.Merchant.Value.(string); ok {
		res.Merchant = s
	}

	if len(doc.AddressComponents) > 0 {
		res.Address = FormatAddress(doc.AddressComponents)
		res.AddressComponents = doc.AddressComponents
	} else if s, ok := doc.Address.Value.(string); ok {
		// structured extraction failed upstream; raw coercion fallback
		res.Address = s
	}

	if s, ok := doc.Date.Value.(string); ok {
		res.Date = NormalizeDate(s)
	}

	subtotal := NormalizeNumber(doc.Subtotal.Value)
	total := NormalizeNumber(doc.Total.Value)

	res.Total = RoundMoney(total)
	if doc.Subtotal.Present && doc.Subtotal.Confidence >= p.SubtotalMinConfidence && subtotal != nil {
		res.Subtotal = RoundMoney(subtotal)
	}
	if tax := p.ResolveTax(subtotal, doc.Tax, total, doc.Lines); tax != nil {
		res.Tax = tax
	}

	return res
}
