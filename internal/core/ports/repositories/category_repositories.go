package repositories

import (
	"context"

	"github.com/socioges/treasury_backend/internal/core/domain"
)

// CategoryRepositoryFacade defines storage operations for entry categories
// and transfer type tags.
type CategoryRepositoryFacade interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, kind *domain.EntryKind) ([]domain.Category, error)

	FindTransferTypeByID(ctx context.Context, transferTypeID string) (*domain.TransferType, error)
	ListTransferTypes(ctx context.Context) ([]domain.TransferType, error)
}
