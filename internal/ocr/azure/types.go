package azure

// Wire shapes of the Document Intelligence analyze operation, reduced to
// what the prebuilt-receipt model returns and we consume.

type analyzeOperation struct {
	Status        string         `json:"status"` // notStarted | running | succeeded | failed
	Error         *apiError      `json:"error,omitempty"`
	AnalyzeResult *AnalyzeResult `json:"analyzeResult,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AnalyzeResult is a completed prebuilt-receipt analysis.
type AnalyzeResult struct {
	Documents []AnalyzedDocument `json:"documents"`
	Pages     []Page             `json:"pages"`
}

// AnalyzedDocument is one detected receipt with its extracted fields.
type AnalyzedDocument struct {
	DocType    string           `json:"docType"`
	Fields     map[string]Field `json:"fields"`
	Confidence float64          `json:"confidence"`
}

// Field is a single extracted field. Exactly one value* slot is set
// depending on Type; Content and BoundingRegions carry the page evidence.
type Field struct {
	Type            string           `json:"type"`
	ValueString     string           `json:"valueString,omitempty"`
	ValueNumber     *float64         `json:"valueNumber,omitempty"`
	ValueDate       string           `json:"valueDate,omitempty"`
	ValueCurrency   *CurrencyValue   `json:"valueCurrency,omitempty"`
	ValueAddress    *AddressValue    `json:"valueAddress,omitempty"`
	ValueArray      []Field          `json:"valueArray,omitempty"`
	ValueObject     map[string]Field `json:"valueObject,omitempty"`
	Content         string           `json:"content,omitempty"`
	Confidence      float64          `json:"confidence,omitempty"`
	BoundingRegions []BoundingRegion `json:"boundingRegions,omitempty"`
}

// CurrencyValue is a monetary amount with its symbol/code when detected.
type CurrencyValue struct {
	Amount         float64 `json:"amount"`
	CurrencySymbol string  `json:"currencySymbol,omitempty"`
	CurrencyCode   string  `json:"currencyCode,omitempty"`
}

// AddressValue is the structured address breakdown.
type AddressValue struct {
	HouseNumber   string `json:"houseNumber,omitempty"`
	PoBox         string `json:"poBox,omitempty"`
	Road          string `json:"road,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	CountryRegion string `json:"countryRegion,omitempty"`
	StreetAddress string `json:"streetAddress,omitempty"`
	Unit          string `json:"unit,omitempty"`
}

type BoundingRegion struct {
	PageNumber int       `json:"pageNumber"`
	Polygon    []float64 `json:"polygon,omitempty"`
}

type Page struct {
	PageNumber int    `json:"pageNumber"`
	Lines      []Line `json:"lines"`
}

type Line struct {
	Content string `json:"content"`
}
