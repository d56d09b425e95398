// prompt_billno_rules.go - Bill number extraction rules

package prompt

// GetBillNoRules returns the rules for extracting the bill identifier.
func GetBillNoRules() string {
	return `STEP 1: BILL NUMBER EXTRACTION (field "bill_no")

Search for a document identifier, in this preference order:
1. Invoice number
2. Receipt number
3. Bill number
4. Order number
5. Transaction number / transaction ID

Rules:
- Preserve the original formatting exactly: do not change case, do not strip
  leading zeros, do not remove separators.
- If no identifier of any kind is visible, use exactly "N/A".`
}
