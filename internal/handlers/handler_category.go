package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socioges/treasury_backend/internal/core/domain"
	portssvc "github.com/socioges/treasury_backend/internal/core/ports/services"
	"github.com/socioges/treasury_backend/internal/dto"
	"github.com/socioges/treasury_backend/internal/middleware"
)

// categoryHandler handles HTTP requests for categories and transfer types.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

// registerCategoryRoutes registers category and transfer type routes.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := &categoryHandler{categoryService: categoryService}

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
	}
	rg.GET("/transfer-types", h.listTransferTypes)
}

func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create category", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

func (h *categoryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var kind *domain.EntryKind
	if kindStr := c.Query("kind"); kindStr != "" {
		k := domain.EntryKind(kindStr)
		if k != domain.Expense && k != domain.Income {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be EXPENSE or INCOME"})
			return
		}
		kind = &k
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), kind)
	if err != nil {
		logger.Error("Failed to list categories", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}

func (h *categoryHandler) listTransferTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	transferTypes, err := h.categoryService.ListTransferTypes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list transfer types", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transfer types"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferTypeResponses(transferTypes))
}
