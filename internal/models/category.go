package models

// Category represents a row in the categories table. CategoryType
// discriminates the income and expense namespaces sharing the table.
type Category struct {
	CategoryID   string `db:"category_id"`
	CategoryType string `db:"category_type"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	AuditFields
}
