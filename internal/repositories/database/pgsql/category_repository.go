package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pfa-dev/personal_finance_app/internal/apperrors"
	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	portsrepo "github.com/pfa-dev/personal_finance_app/internal/core/ports/repositories"
	"github.com/pfa-dev/personal_finance_app/internal/models"
	"github.com/pfa-dev/personal_finance_app/internal/utils/mapping"
)

const categoryColumns = "category_id, category_type, name, description, created_at, last_updated_at"

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) *PgxCategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.CategoryType,
		&m.Name,
		&m.Description,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveCategory inserts a new category. The case-insensitive uniqueness check
// and the insert share one transaction; the partial unique index on
// (category_type, lower(name)) backstops races.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	taken, err := r.nameTaken(ctx, tx, m.CategoryType, m.Name, "")
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: category name %q already exists for type %s", apperrors.ErrConflict, m.Name, m.CategoryType)
	}

	query := `
		INSERT INTO categories (category_id, category_type, name, description, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, query,
		m.CategoryID,
		m.CategoryType,
		m.Name,
		m.Description,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category name %q already exists for type %s", apperrors.ErrConflict, m.Name, m.CategoryType)
		}
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindCategoryByID retrieves a category within the given namespace.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryType domain.CategoryType, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_type = $1 AND category_id = $2;`

	m, err := scanCategory(r.Pool.QueryRow(ctx, query, string(categoryType), categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, fmt.Errorf("%w: %s category %s", apperrors.ErrNotFound, categoryType, categoryID)
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	d := mapping.ToDomainCategory(m)
	return &d, nil
}

// ListCategories retrieves all categories of one type ordered by name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, categoryType domain.CategoryType) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_type = $1 ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, string(categoryType))
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating category rows: %w", err)
	}
	return categories, nil
}

// UpdateCategory updates a category's name and description. The uniqueness
// check excludes the record itself.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	taken, err := r.nameTaken(ctx, tx, m.CategoryType, m.Name, m.CategoryID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: category name %q already exists for type %s", apperrors.ErrConflict, m.Name, m.CategoryType)
	}

	query := `
		UPDATE categories
		SET name = $3, description = $4, last_updated_at = $5
		WHERE category_type = $1 AND category_id = $2;
	`
	ct, err := tx.Exec(ctx, query,
		m.CategoryType,
		m.CategoryID,
		m.Name,
		m.Description,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", m.CategoryID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s category %s", apperrors.ErrNotFound, m.CategoryType, m.CategoryID)
	}

	return r.Commit(ctx, tx)
}

// DeleteCategory removes a category unless a transaction of the matching
// type still references it.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryType domain.CategoryType, categoryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var referenced bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE category_id = $1 AND transaction_type = $2);`,
		categoryID, string(categoryType),
	).Scan(&referenced)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return fmt.Errorf("%w: %s category %s", apperrors.ErrNotFound, categoryType, categoryID)
		}
		return fmt.Errorf("failed to check category references for %s: %w", categoryID, err)
	}
	if referenced {
		return fmt.Errorf("%w: category %s is referenced by transactions", apperrors.ErrConflict, categoryID)
	}

	ct, err := tx.Exec(ctx,
		`DELETE FROM categories WHERE category_type = $1 AND category_id = $2;`,
		string(categoryType), categoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s category %s", apperrors.ErrNotFound, categoryType, categoryID)
	}

	return r.Commit(ctx, tx)
}

// categoryNameTakenQuery builds the uniqueness probe. category_id is a uuid
// column, so the exclusion clause only appears when there is an id to
// exclude; an empty string does not bind as a uuid parameter.
func categoryNameTakenQuery(categoryType, name, excludeID string) (string, []any) {
	if excludeID == "" {
		query := `
			SELECT EXISTS (
				SELECT 1 FROM categories
				WHERE category_type = $1 AND LOWER(name) = LOWER($2)
			);
		`
		return query, []any{categoryType, name}
	}
	query := `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE category_type = $1 AND LOWER(name) = LOWER($2) AND category_id <> $3
		);
	`
	return query, []any{categoryType, name, excludeID}
}

// nameTaken reports whether another category of the same type already uses
// name under case-insensitive comparison.
func (r *PgxCategoryRepository) nameTaken(ctx context.Context, tx pgx.Tx, categoryType, name, excludeID string) (bool, error) {
	query, args := categoryNameTakenQuery(categoryType, name, excludeID)
	var taken bool
	if err := tx.QueryRow(ctx, query, args...).Scan(&taken); err != nil {
		return false, fmt.Errorf("failed to check category name uniqueness: %w", err)
	}
	return taken, nil
}
