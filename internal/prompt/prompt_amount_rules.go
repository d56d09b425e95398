// prompt_amount_rules.go - Amount extraction rules

package prompt

// GetAmountRules returns the rules for extracting the bill amount.
func GetAmountRules() string {
	return `STEP 2: AMOUNT EXTRACTION (field "amount")

Find the FINAL/GRAND TOTAL of the bill:
- Use the final payable total, NOT a subtotal and NOT a line item.
- If several totals appear (subtotal, total, grand total), choose the largest/final one.
- Preserve any currency symbol exactly as printed (e.g. "₹245.00", "$12.50").
- Use ONLY numbers that are explicitly written in the document. NEVER calculate,
  add, subtract, or derive an amount that is not printed.
- If no total can be found, use exactly "0".`
}
