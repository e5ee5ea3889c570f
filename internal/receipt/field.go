// Package receipt turns raw provider field data into the final expense
// payload: field normalization, tax resolution, and payload assembly.
// Everything here is pure and per-request; it is safe to call concurrently.
package receipt

// Provider identifier reported in every result.
const ProviderAzure = "azure"

// RawField is a provider-reported field. Present means the provider mapped
// text or region evidence to the field on the page, independent of whether
// a value was parsed out of it.
type RawField struct {
	Value      any
	Confidence float64
	Present    bool
}

// AddressComponents maps address sub-fields to their values. Absent
// components are omitted, never empty-valued.
type AddressComponents map[string]string

// Address component keys, matching the provider's address sub-fields.
const (
	AddrHouseNumber   = "house_number"
	AddrPoBox         = "po_box"
	AddrRoad          = "road"
	AddrCity          = "city"
	AddrState         = "state"
	AddrPostalCode    = "postal_code"
	AddrCountryRegion = "country_region"
	AddrStreetAddress = "street_address"
	AddrUnit          = "unit"
)

// LineItem is one detected receipt line item, in provider detection order.
// Duplicate names are valid.
type LineItem struct {
	Name      string   `json:"name,omitempty"`
	Quantity  *float64 `json:"quantity,omitempty"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
	Total     *float64 `json:"total,omitempty"`
}

// Document is the provider-shaped field bag for a single analyzed receipt.
// The OCR adapter is the only place these are built; nothing downstream
// touches provider SDK shapes.
type Document struct {
	Merchant RawField
	Address  RawField // string fallback when structured extraction failed
	Date     RawField
	Subtotal RawField
	Tax      RawField
	Total    RawField

	// AddressComponents is non-nil when the provider returned a structured
	// address; Address.Value then carries no text of its own.
	AddressComponents AddressComponents

	Items []LineItem
	Lines []string // flattened page lines, provider order
}

// ReceiptResult is the assembled analysis payload. Keys are present only
// when they carry a non-null, non-empty value; omitempty enforces that at
// serialization time.
type ReceiptResult struct {
	Provider          string             `json:"provider"`
	Merchant          string             `json:"merchant,omitempty"`
	Address           string             `json:"address,omitempty"`
	AddressComponents AddressComponents  `json:"address_components,omitempty"`
	Date              string             `json:"date,omitempty"`
	Subtotal          *float64           `json:"subtotal,omitempty"`
	Tax               *float64           `json:"tax,omitempty"`
	Total             *float64           `json:"total,omitempty"`
	Items             []LineItem         `json:"items,omitempty"`
	Confidences       map[string]float64 `json:"confidences,omitempty"`
	RawLines          []string           `json:"raw_lines,omitempty"`

	// Filled in by the classification step, not by Assemble.
	Currency string `json:"currency,omitempty"`
	Category string `json:"category,omitempty"`
}
