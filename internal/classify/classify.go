// Package classify assigns a currency symbol and a spending category to an
// analyzed receipt using a generative model, then clamps the answer to the
// closed sets the mobile client understands.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Currencies is the closed set of accepted currency symbols.
var Currencies = []string{"$", "₹", "€", "£"}

// Categories is the closed set of spending categories.
var Categories = []string{
	"Groceries",
	"Food & Drinks",
	"Electronics",
	"Clothing",
	"Entertainment",
	"Utilities",
	"Travel",
	"Office Supplies",
}

// Defaults applied when the model answers outside the closed sets.
const (
	DefaultCurrency = "$"
	DefaultCategory = "Other"
)

// Input is the receipt context handed to the model.
type Input struct {
	Merchant string
	Address  string
	Total    *float64
	Items    []string // item names only
	RawLines []string
}

// Result is a validated classification.
type Result struct {
	Currency string `json:"currency"`
	Category string `json:"category"`
}

// Classifier is the interface the HTTP layer depends on.
type Classifier interface {
	Classify(ctx context.Context, in Input) (Result, error)
}

// responseSchema constrains the model's reply shape. Currency is an enum;
// category stays a free string here because out-of-set categories are
// clamped to the default rather than rejected.
func responseSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"currency": map[string]any{"type": "string", "minLength": 1},
			"category": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"currency", "category"},
	}
}

// ParseResponse turns raw model output into a validated Result. It strips
// markdown code fences, isolates the JSON object, validates it against the
// response schema, and clamps both values to the closed sets.
func ParseResponse(raw string) (Result, error) {
	text := stripCodeFences(raw)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return Result{}, fmt.Errorf("no JSON object in model response")
	}
	text = text[start : end+1]

	if err := validateAgainstSchema(responseSchema(), []byte(text)); err != nil {
		return Result{}, fmt.Errorf("classification response: %w", err)
	}

	var res Result
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		return Result{}, fmt.Errorf("decode classification response: %w", err)
	}

	if !contains(Currencies, res.Currency) {
		res.Currency = DefaultCurrency
	}
	if !contains(Categories, res.Category) {
		res.Category = DefaultCategory
	}
	return res, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// validateAgainstSchema validates data against a schema expressed as a
// generic map.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
