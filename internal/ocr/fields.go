// fields.go - Builds structured expense fields from plain OCR text

package ocr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/expenso/expense-extract/internal/prompt"
	"github.com/expenso/expense-extract/internal/schema"
)

// billNoPatterns in preference order: invoice beats receipt beats bill beats
// order beats transaction. The capture keeps the identifier's original
// formatting.
var billNoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\binvoice\s*(?:no\.?|number|num|id)?\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9/\-]*)`),
	regexp.MustCompile(`(?i)\breceipt\s*(?:no\.?|number|num|id)?\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9/\-]*)`),
	regexp.MustCompile(`(?i)\bbill\s*(?:no\.?|number|num|id)?\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9/\-]*)`),
	regexp.MustCompile(`(?i)\border\s*(?:no\.?|number|num|id)?\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9/\-]*)`),
	regexp.MustCompile(`(?i)\btransaction\s*(?:no\.?|number|num|id)?\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9/\-]*)`),
}

// totalPattern matches a labeled total line and captures the printed amount
// including any currency symbol.
var totalPattern = regexp.MustCompile(
	`(?i)\b(?:grand\s+total|total\s+amount|amount\s+(?:payable|due)|net\s+amount|total)\b[^0-9₹$€£]*([₹$€£]?\s?[0-9][0-9,]*(?:\.[0-9]{1,2})?)`)

// labelWords that a bill-no pattern can accidentally capture on lines like
// "Invoice Date: ...".
var labelWords = map[string]bool{
	"date": true, "no": true, "number": true, "num": true, "id": true, "to": true,
}

// FieldsFromText derives the same four expense fields the model produces,
// from local OCR text alone. Pure function: same text, same fields.
func FieldsFromText(text string) *schema.ExpenseFields {
	return &schema.ExpenseFields{
		BillNo:  extractBillNo(text),
		Amount:  extractAmount(text),
		Purpose: prompt.CategorizeText(text),
		RawText: text,
	}
}

func extractBillNo(text string) string {
	for _, pattern := range billNoPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			candidate := m[1]
			if labelWords[strings.ToLower(candidate)] {
				continue
			}
			return candidate
		}
	}
	return schema.BillNoNone
}

func extractAmount(text string) string {
	matches := totalPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return schema.AmountNone
	}

	// Several totals can appear (subtotal, total, grand total); keep the
	// largest. On a numeric tie the later occurrence wins, approximating
	// "final total" placement.
	best := ""
	bestValue := -1.0
	for _, m := range matches {
		printed := strings.TrimSpace(m[1])
		if v, err := parseAmount(printed); err == nil && v >= bestValue {
			best = printed
			bestValue = v
		}
	}
	if best == "" {
		return schema.AmountNone
	}
	return best
}

func parseAmount(printed string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '₹', '$', '€', '£', ',', ' ':
			return -1
		}
		return r
	}, printed)
	if cleaned == "" {
		return 0, fmt.Errorf("no digits in %q", printed)
	}
	return strconv.ParseFloat(cleaned, 64)
}
