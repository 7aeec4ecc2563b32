package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socioges/treasury_backend/internal/apperrors"
	"github.com/socioges/treasury_backend/internal/core/domain"
	portsrepo "github.com/socioges/treasury_backend/internal/core/ports/repositories"
	"github.com/socioges/treasury_backend/internal/models"
	"github.com/socioges/treasury_backend/internal/utils/mapping"
)

const categoryColumns = `category_id, name, kind, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category and transfer type data.
func newPgxCategoryRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool, LockTimeout: lockTimeout}}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepositoryFacade
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&m.Kind,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.Name,
		m.Kind,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, mapPgError(err))
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("category %s not found", categoryID))
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}

	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// ListCategories retrieves categories, optionally filtered by entry kind.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, kind *domain.EntryKind) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE ($1::text IS NULL OR kind = $1) ORDER BY name;`

	var kindArg *string
	if kind != nil {
		k := string(*kind)
		kindArg = &k
	}

	rows, err := r.Pool.Query(ctx, query, kindArg)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating categories: %w", err)
	}
	return result, nil
}

// FindTransferTypeByID retrieves a transfer type tag by its ID.
func (r *PgxCategoryRepository) FindTransferTypeByID(ctx context.Context, transferTypeID string) (*domain.TransferType, error) {
	query := `SELECT transfer_type_id, name FROM transfer_types WHERE transfer_type_id = $1;`

	var m models.TransferType
	if err := r.Pool.QueryRow(ctx, query, transferTypeID).Scan(&m.TransferTypeID, &m.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transfer type %s not found", transferTypeID))
		}
		return nil, fmt.Errorf("failed to find transfer type %s: %w", transferTypeID, err)
	}

	tt := mapping.ToDomainTransferType(m)
	return &tt, nil
}

// ListTransferTypes retrieves every transfer type tag.
func (r *PgxCategoryRepository) ListTransferTypes(ctx context.Context) ([]domain.TransferType, error) {
	rows, err := r.Pool.Query(ctx, `SELECT transfer_type_id, name FROM transfer_types ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfer types: %w", err)
	}
	defer rows.Close()

	var result []domain.TransferType
	for rows.Next() {
		var m models.TransferType
		if err := rows.Scan(&m.TransferTypeID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan transfer type: %w", err)
		}
		result = append(result, mapping.ToDomainTransferType(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transfer types: %w", err)
	}
	return result, nil
}
