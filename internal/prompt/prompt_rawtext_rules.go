// prompt_rawtext_rules.go - Full transcription rules

package prompt

// GetRawTextRules returns the rules for the raw_text transcription field.
func GetRawTextRules() string {
	return `STEP 0: FULL TRANSCRIPTION (field "raw_text")

Transcribe EVERY visible text span on the document:
- Read top to bottom, left to right, approximating the document's reading order.
- Include headers, line items, footers, notes, and fine print.
- Correct only unambiguous OCR artifacts (digit/letter confusions like 0/O or
  1/l) when the surrounding context makes the intended character obvious.
- Do not summarize, reorder, or analyze - just transcribe.`
}
