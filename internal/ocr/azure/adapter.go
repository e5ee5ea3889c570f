package azure

import (
	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/receipt"
)

// ToDocument converts a completed analysis into the provider-agnostic
// receipt document. This is the only boundary where the Azure field model
// is visible; everything past it works on receipt.RawField triples.
func ToDocument(result *AnalyzeResult) receipt.Document {
	var fields map[string]Field
	if len(result.Documents) > 0 {
		fields = result.Documents[0].Fields
	}

	doc := receipt.Document{
		Merchant: fieldInfo(fields, "MerchantName"),
		Address:  fieldInfo(fields, "MerchantAddress"),
		Date:     fieldInfo(fields, "TransactionDate"),
		Subtotal: fieldInfo(fields, "Subtotal"),
		Tax:      fieldInfo(fields, "Tax"),
		Total:    fieldInfo(fields, "Total"),
		// Tip is never read: excluded by policy, not capability.
	}

	if addr, ok := fields["MerchantAddress"]; ok {
		if addr.ValueAddress != nil {
			doc.AddressComponents = addressComponents(addr.ValueAddress)
			doc.Address.Value = nil
		}
		// no structured value: the fallback string in Address.Value stands
	}

	doc.Items = items(fields)
	doc.Lines = pageLines(result.Pages)
	return doc
}

// fieldInfo extracts the (value, confidence, present) triple for a named
// field. A currency amount is preferred over the scalar value slots. The
// presence flag reflects mapped text/region evidence regardless of whether
// a value parsed.
func fieldInfo(fields map[string]Field, name string) receipt.RawField {
	fld, ok := fields[name]
	if !ok {
		return receipt.RawField{}
	}
	return receipt.RawField{
		Value:      fieldValue(fld),
		Confidence: fld.Confidence,
		Present:    fld.Content != "" || len(fld.BoundingRegions) > 0,
	}
}

func fieldValue(fld Field) any {
	switch {
	case fld.ValueCurrency != nil:
		return fld.ValueCurrency.Amount
	case fld.ValueNumber != nil:
		return *fld.ValueNumber
	case fld.ValueDate != "":
		return fld.ValueDate
	case fld.ValueString != "":
		return fld.ValueString
	case fld.Content != "":
		return fld.Content
	default:
		return nil
	}
}

func addressComponents(a *AddressValue) receipt.AddressComponents {
	c := receipt.AddressComponents{}
	put := func(key, val string) {
		if val != "" {
			c[key] = val
		}
	}
	put(receipt.AddrHouseNumber, a.HouseNumber)
	put(receipt.AddrPoBox, a.PoBox)
	put(receipt.AddrRoad, a.Road)
	put(receipt.AddrCity, a.City)
	put(receipt.AddrState, a.State)
	put(receipt.AddrPostalCode, a.PostalCode)
	put(receipt.AddrCountryRegion, a.CountryRegion)
	put(receipt.AddrStreetAddress, a.StreetAddress)
	put(receipt.AddrUnit, a.Unit)
	if len(c) == 0 {
		return nil
	}
	return c
}

func items(fields map[string]Field) []receipt.LineItem {
	itemsFld, ok := fields["Items"]
	if !ok || len(itemsFld.ValueArray) == 0 {
		return nil
	}
	out := make([]receipt.LineItem, 0, len(itemsFld.ValueArray))
	for _, it := range itemsFld.ValueArray {
		obj := it.ValueObject
		item := receipt.LineItem{
			Quantity:  receipt.NormalizeNumber(objValue(obj, "Quantity")),
			UnitPrice: receipt.NormalizeNumber(objValue(obj, "Price")),
			Total:     receipt.NormalizeNumber(objValue(obj, "TotalPrice")),
		}
		if name, ok := objValue(obj, "Description").(string); ok {
			item.Name = name
		}
		out = append(out, item)
	}
	return out
}

func objValue(obj map[string]Field, name string) any {
	fld, ok := obj[name]
	if !ok {
		return nil
	}
	return fieldValue(fld)
}

func pageLines(pages []Page) []string {
	var lines []string
	for _, p := range pages {
		for _, ln := range p.Lines {
			if ln.Content != "" {
				lines = append(lines, ln.Content)
			}
		}
	}
	return lines
}
