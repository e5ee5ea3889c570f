package classify

import (
	"fmt"
	"strings"
)

// maxPromptLines caps how much OCR text goes into the prompt; the head of
// the receipt carries the merchant, locale, and currency signals.
const maxPromptLines = 15

// BuildPrompt composes the combined currency + category request. One call
// answers both questions to keep model usage (and quota pressure) down.
func BuildPrompt(in Input) string {
	var b strings.Builder

	b.WriteString("Analyze this receipt and return TWO things in JSON format:\n\n")
	b.WriteString("1. CURRENCY: Detect which currency symbol is used\n")
	b.WriteString("   - Look in the OCR text for symbols: " + strings.Join(Currencies, ", ") + "\n")
	b.WriteString("   - Look for currency codes: USD, INR, EUR, GBP, Rs, Rs.\n")
	b.WriteString("   - Check the address/location for clues\n")
	b.WriteString("   - Return ONLY one of these symbols: " + strings.Join(Currencies, ", ") + "\n\n")
	b.WriteString("2. CATEGORY: Classify into exactly ONE category\n")
	b.WriteString("   - Choose from: " + strings.Join(Categories, ", ") + "\n")
	b.WriteString("   - Based on merchant name, items purchased, and receipt context\n\n")

	b.WriteString("Receipt Information:\n")
	b.WriteString("- Merchant: " + orUnknown(in.Merchant) + "\n")
	b.WriteString("- Address: " + in.Address + "\n")
	if in.Total != nil {
		fmt.Fprintf(&b, "- Total: %.2f\n", *in.Total)
	} else {
		b.WriteString("- Total: \n")
	}
	b.WriteString("- Items: " + strings.Join(in.Items, ", ") + "\n")
	fmt.Fprintf(&b, "- OCR Text (first %d lines):\n", maxPromptLines)
	b.WriteString(strings.Join(headLines(in.RawLines, maxPromptLines), "\n"))
	b.WriteString("\n\n")

	b.WriteString("Currency Detection Rules:\n")
	b.WriteString("- If you see $ or USD -> return \"$\"\n")
	b.WriteString("- If you see ₹ or INR or Rs or Rs. or GSTIN -> return \"₹\"\n")
	b.WriteString("- If you see € or EUR or VAT (Europe) -> return \"€\"\n")
	b.WriteString("- If you see £ or GBP -> return \"£\"\n")
	b.WriteString("- If address indicates India -> return \"₹\"\n")
	b.WriteString("- If address indicates UK -> return \"£\"\n")
	b.WriteString("- If address indicates Europe -> return \"€\"\n")
	b.WriteString("- Default to \"$\" if unclear\n\n")

	b.WriteString("Category Rules:\n")
	b.WriteString("- Supermarkets, grocery stores -> \"Groceries\"\n")
	b.WriteString("- Restaurants, cafes, bars -> \"Food & Drinks\"\n")
	b.WriteString("- Best Buy, Apple Store, tech shops -> \"Electronics\"\n")
	b.WriteString("- Clothing stores, fashion -> \"Clothing\"\n")
	b.WriteString("- Movies, games, concerts -> \"Entertainment\"\n")
	b.WriteString("- Electric, water, internet bills -> \"Utilities\"\n")
	b.WriteString("- Hotels, flights, gas stations -> \"Travel\"\n")
	b.WriteString("- Staples, Office Depot -> \"Office Supplies\"\n\n")

	b.WriteString("Return ONLY valid JSON in this EXACT format (no markdown, no extra text):\n")
	b.WriteString(`{"currency": "$", "category": "Groceries"}`)

	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func headLines(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[:n]
}
