// purpose.go - Closed set of expense categories and their display metadata

package schema

// Purpose is the expense category assigned to an extracted receipt.
// It is a closed enum: the model contract restricts "purpose" to exactly
// these seven literals and the validator rejects anything else.
type Purpose string

const (
	PurposeConveyance     Purpose = "Conveyance"
	PurposeTrain          Purpose = "Train"
	PurposeBus            Purpose = "Bus"
	PurposeFood           Purpose = "Food"
	PurposeHotel          Purpose = "Hotel"
	PurposeProjectExpense Purpose = "Project Expense"
	PurposeOther          Purpose = "Other"
)

// AllPurposes lists every valid category, in the order shown to the model.
var AllPurposes = []Purpose{
	PurposeConveyance,
	PurposeTrain,
	PurposeBus,
	PurposeFood,
	PurposeHotel,
	PurposeProjectExpense,
	PurposeOther,
}

// IsValid reports whether p is one of the seven enumerated categories.
func (p Purpose) IsValid() bool {
	switch p {
	case PurposeConveyance, PurposeTrain, PurposeBus, PurposeFood,
		PurposeHotel, PurposeProjectExpense, PurposeOther:
		return true
	}
	return false
}

// PurposeNames returns the categories as plain strings, for building the
// JSON-Schema enum and prompt rubric.
func PurposeNames() []string {
	names := make([]string, 0, len(AllPurposes))
	for _, p := range AllPurposes {
		names = append(names, string(p))
	}
	return names
}

// Display holds UI metadata for a category.
type Display struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Display returns the icon/color pair for the category. Unknown values fall
// back to the Other appearance so a stale client never renders blank.
func (p Purpose) Display() Display {
	switch p {
	case PurposeConveyance:
		return Display{Icon: "car", Color: "#2563eb"}
	case PurposeTrain:
		return Display{Icon: "train", Color: "#7c3aed"}
	case PurposeBus:
		return Display{Icon: "bus", Color: "#0891b2"}
	case PurposeFood:
		return Display{Icon: "utensils", Color: "#ea580c"}
	case PurposeHotel:
		return Display{Icon: "bed", Color: "#db2777"}
	case PurposeProjectExpense:
		return Display{Icon: "briefcase", Color: "#059669"}
	default:
		return Display{Icon: "receipt", Color: "#6b7280"}
	}
}
