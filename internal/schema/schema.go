// schema.go - The extraction output contract and its validator

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Sentinel values standing in for "field not found". The contract never uses
// empty strings for absence.
const (
	BillNoNone = "N/A"
	AmountNone = "0"
)

// ExpenseFields is the structured output the model must produce for one
// receipt image.
type ExpenseFields struct {
	BillNo  string  `json:"bill_no"`
	Amount  string  `json:"amount"`
	Purpose Purpose `json:"purpose"`
	RawText string  `json:"raw_text"`
}

// ValidationError reports a model response that failed the output contract.
// The gateway maps it to a malformed-output failure; it is never coerced or
// defaulted away.
type ValidationError struct {
	Detail string
	Cause  error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction output invalid: %s: %v", e.Detail, e.Cause)
	}
	return "extraction output invalid: " + e.Detail
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// BuildExtractionJSONSchema returns the output contract as a JSON-Schema
// (draft 2020-12 subset) generic map. The same map is compiled locally for
// validation, so the model is held to exactly what it was asked for.
func BuildExtractionJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"bill_no": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"amount": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"purpose": map[string]any{
				"type": "string",
				"enum": PurposeNames(),
			},
			"raw_text": map[string]any{
				"type": "string",
			},
		},
		"required": []string{"bill_no", "amount", "purpose", "raw_text"},
	}
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		b, err := json.Marshal(BuildExtractionJSONSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("extraction.json", bytes.NewReader(b)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile("extraction.json")
	})
	return compiledSchema, compileErr
}

// ValidateExtraction checks a raw model response against the output contract
// and decodes it. Every model response goes through here before being
// treated as trustworthy data - the model is an untrusted producer even
// though it was asked to emit schema-conformant output.
func ValidateExtraction(raw []byte) (*ExpenseFields, error) {
	sch, err := compiled()
	if err != nil {
		return nil, fmt.Errorf("compile extraction schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &ValidationError{Detail: "response is not valid JSON", Cause: err}
	}
	if err := sch.Validate(v); err != nil {
		return nil, &ValidationError{Detail: "response does not match extraction schema", Cause: err}
	}

	var fields ExpenseFields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &ValidationError{Detail: "decode extraction fields", Cause: err}
	}

	// The schema already enforces these, but a contract violation here must
	// never slip through as a zero value.
	if fields.BillNo == "" || fields.Amount == "" {
		return nil, &ValidationError{Detail: "bill_no and amount must use sentinels, not empty strings"}
	}
	if !fields.Purpose.IsValid() {
		return nil, &ValidationError{Detail: fmt.Sprintf("purpose %q is not an allowed category", fields.Purpose)}
	}

	return &fields, nil
}
