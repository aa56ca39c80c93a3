package domain

// CategoryType discriminates the two disjoint category namespaces.
// A category id is only meaningful paired with a type.
type CategoryType string

const (
	Income  CategoryType = "INCOME"
	Expense CategoryType = "EXPENSE"
)

// Valid reports whether t is one of the two known category types.
func (t CategoryType) Valid() bool {
	return t == Income || t == Expense
}

// Category represents a user-defined label partitioned by transaction type.
// Names are unique per type under case-insensitive comparison.
type Category struct {
	CategoryID  string       `json:"categoryID"` // Primary Key (UUID), scoped to Type
	Type        CategoryType `json:"type"`       // INCOME or EXPENSE namespace
	Name        string       `json:"name"`
	Description string       `json:"description"`
	AuditFields
}
