package services

import (
	"context"

	"github.com/socioges/treasury_backend/internal/core/domain"
	"github.com/socioges/treasury_backend/internal/dto"
)

// CategorySvcFacade defines category and transfer-type lookups.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	ListCategories(ctx context.Context, kind *domain.EntryKind) ([]domain.Category, error)
	ListTransferTypes(ctx context.Context) ([]domain.TransferType, error)
}
