// prompt.go - Assembles the instruction text sent to the model

package prompt

import "strings"

// BuildExtractionPrompt composes the full instruction text for one extraction
// call. The sections are joined in a fixed order so the same image always
// gets the same instructions - categorization must be reproducible across
// calls.
func BuildExtractionPrompt() string {
	sections := []string{
		"You are an expense receipt analyzer. Extract structured data from the receipt, bill, or invoice image.",
		GetRawTextRules(),
		GetBillNoRules(),
		GetAmountRules(),
		GetPurposeRules(),
		GetOutputFormatRules(),
	}
	return strings.Join(sections, "\n\n")
}

// GetOutputFormatRules returns the closing formatting constraints.
func GetOutputFormatRules() string {
	return `OUTPUT FORMAT:
Return ONLY a JSON object with exactly these fields: bill_no, amount, purpose, raw_text.
- All fields are required. Never output null and never omit a field.
- Use the documented sentinel values ("N/A" for bill_no, "0" for amount) when something is not found.
- purpose must be exactly one of the listed categories, spelled exactly as given.`
}
