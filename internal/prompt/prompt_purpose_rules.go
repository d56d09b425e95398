// prompt_purpose_rules.go - Category classification rubric

package prompt

import (
	"strings"

	"github.com/expenso/expense-extract/internal/schema"
)

// GetPurposeRules returns the classification rubric for the purpose field.
// It is generated from the same keyword table the local classifier uses, so
// the model and the local fallback apply one policy.
func GetPurposeRules() string {
	var b strings.Builder
	b.WriteString("STEP 3: CATEGORY CLASSIFICATION (field \"purpose\")\n\n")
	b.WriteString("Choose the single best-fit category from this list, spelled exactly:\n")
	for _, rule := range categoryRules {
		b.WriteString("- ")
		b.WriteString(string(rule.Purpose))
		b.WriteString(": ")
		b.WriteString(rule.Description)
		b.WriteString("\n")
	}
	b.WriteString("- ")
	b.WriteString(string(schema.PurposeOther))
	b.WriteString(": anything not matching the above\n")
	b.WriteString("\nIf the merchant context is ambiguous or two categories fit equally well, choose \"Other\" rather than guessing.")
	return b.String()
}
