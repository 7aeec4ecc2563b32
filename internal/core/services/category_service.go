package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/socioges/treasury_backend/internal/core/domain"
	portsrepo "github.com/socioges/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/socioges/treasury_backend/internal/core/ports/services"
	"github.com/socioges/treasury_backend/internal/dto"
	"github.com/socioges/treasury_backend/internal/middleware"
)

// categoryService manages entry categories and transfer type tags.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

// Ensure categoryService implements the portssvc.CategorySvcFacade interface
var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		Kind:       req.Kind,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	logger.Info("Category created", slog.String("categoryID", category.CategoryID), slog.String("kind", string(category.Kind)))
	return &category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, kind *domain.EntryKind) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) ListTransferTypes(ctx context.Context) ([]domain.TransferType, error) {
	transferTypes, err := s.categoryRepo.ListTransferTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfer types: %w", err)
	}
	return transferTypes, nil
}
