// categorize.go - Deterministic keyword classifier mirroring the model rubric

package prompt

import (
	"regexp"
	"strings"

	"github.com/expenso/expense-extract/internal/schema"
)

// categoryRule associates a category with the merchant/keyword context that
// selects it. The same table drives the prompt rubric and CategorizeText.
type categoryRule struct {
	Purpose     schema.Purpose
	Description string
	Keywords    []string
}

var categoryRules = []categoryRule{
	{
		Purpose:     schema.PurposeConveyance,
		Description: "taxi, auto, rideshare, parking, and other local transport",
		Keywords: []string{
			"taxi", "cab", "uber", "ola", "lyft", "rideshare",
			"rickshaw", "auto fare", "parking", "toll",
		},
	},
	{
		Purpose:     schema.PurposeTrain,
		Description: "railway, metro, and rail booking charges",
		Keywords: []string{
			"train", "railway", "rail", "irctc", "metro",
		},
	},
	{
		Purpose:     schema.PurposeBus,
		Description: "bus and shuttle fares",
		Keywords: []string{
			"bus", "shuttle", "redbus",
		},
	},
	{
		Purpose:     schema.PurposeFood,
		Description: "restaurant, cafe, food delivery, and meal charges",
		Keywords: []string{
			"restaurant", "cafe", "food", "meal", "dining", "canteen",
			"swiggy", "zomato",
		},
	},
	{
		Purpose:     schema.PurposeHotel,
		Description: "accommodation, lodging, and room charges",
		Keywords: []string{
			"hotel", "lodge", "lodging", "accommodation", "room charge",
			"resort", "inn", "oyo",
		},
	},
	{
		Purpose:     schema.PurposeProjectExpense,
		Description: "office supplies, equipment, software, tools, and materials",
		Keywords: []string{
			"office supplies", "stationery", "equipment", "software",
			"license", "hardware", "tools", "materials",
		},
	},
}

// keywordPatterns holds one compiled word-boundary pattern per category, in
// rule order. Compiled once; matching is case-insensitive. Boundaries matter:
// "business" must not count as a bus fare.
var keywordPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(categoryRules))
	for i, rule := range categoryRules {
		quoted := make([]string, len(rule.Keywords))
		for j, kw := range rule.Keywords {
			quoted[j] = regexp.QuoteMeta(kw)
		}
		patterns[i] = regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
	}
	return patterns
}()

// CategorizeText classifies merchant/receipt text into a purpose category
// using the rubric's keyword associations. It is a pure function: the same
// text always yields the same category. Ties and contexts matching nothing
// resolve to Other rather than guessing.
func CategorizeText(text string) schema.Purpose {
	best := schema.PurposeOther
	bestCount := 0
	tied := false

	for i, rule := range categoryRules {
		count := len(keywordPatterns[i].FindAllStringIndex(text, -1))
		if count == 0 {
			continue
		}
		switch {
		case count > bestCount:
			best = rule.Purpose
			bestCount = count
			tied = false
		case count == bestCount:
			tied = true
		}
	}

	if bestCount == 0 || tied {
		return schema.PurposeOther
	}
	return best
}
