package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
)

func TestCategoryNameTakenQuery_CreateOmitsExclusion(t *testing.T) {
	// On create there is no id to exclude. category_id is a uuid column, so
	// the query must not bind an empty string against it.
	query, args := categoryNameTakenQuery(string(domain.Income), "Salary", "")

	assert.NotContains(t, query, "$3")
	assert.Equal(t, []any{string(domain.Income), "Salary"}, args)
}

func TestCategoryNameTakenQuery_UpdateExcludesOwnRow(t *testing.T) {
	id := "9f2e3a1c-6a0f-4f0b-9c40-0d1f2a3b4c5d"

	query, args := categoryNameTakenQuery(string(domain.Expense), "Food", id)

	assert.Contains(t, query, "category_id <> $3")
	assert.Equal(t, []any{string(domain.Expense), "Food", id}, args)
}

func TestIsInvalidTextRepresentation(t *testing.T) {
	malformed := &pgconn.PgError{Code: "22P02"}

	assert.True(t, isInvalidTextRepresentation(malformed))
	assert.True(t, isInvalidTextRepresentation(fmt.Errorf("query failed: %w", malformed)))
	assert.False(t, isInvalidTextRepresentation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isInvalidTextRepresentation(errors.New("connection reset")))
	assert.False(t, isInvalidTextRepresentation(nil))
}
