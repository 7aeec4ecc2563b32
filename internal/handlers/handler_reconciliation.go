package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/socioges/treasury_backend/internal/apperrors"
	portssvc "github.com/socioges/treasury_backend/internal/core/ports/services"
	"github.com/socioges/treasury_backend/internal/core/services"
	"github.com/socioges/treasury_backend/internal/dto"
	"github.com/socioges/treasury_backend/internal/middleware"
)

// reconciliationHandler handles HTTP requests related to cash reconciliations.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// registerReconciliationRoutes registers routes related to reconciliations.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := &reconciliationHandler{reconciliationService: reconciliationService}

	reconciliations := rg.Group("/reconciliations")
	{
		reconciliations.GET("/expected-balance", h.getExpectedBalance)
		reconciliations.POST("", h.createReconciliation)
		reconciliations.GET("/:id", h.getReconciliation)
		reconciliations.GET("", h.listReconciliations)
		reconciliations.PUT("/:id", h.updateReconciliation)
	}
}

func (h *reconciliationHandler) getExpectedBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID := c.Query("accountID")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID query parameter is required"})
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter must be YYYY-MM-DD"})
		return
	}

	expected, err := h.reconciliationService.CalculateExpectedBalance(c.Request.Context(), accountID, date)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to calculate expected balance", slog.String("accountID", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate expected balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpectedBalanceResponse(expected))
}

func (h *reconciliationHandler) createReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rec, err := h.reconciliationService.CreateReconciliation(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateReconciliation):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create reconciliation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reconciliation"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(rec))
}

func (h *reconciliationHandler) getReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reconciliationID := c.Param("id")

	rec, err := h.reconciliationService.GetReconciliationByID(c.Request.Context(), reconciliationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reconciliation not found"})
		} else {
			logger.Error("Failed to get reconciliation", slog.String("reconciliationID", reconciliationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reconciliation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}

func (h *reconciliationHandler) listReconciliations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID := c.Query("accountID")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID query parameter is required"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	recs, err := h.reconciliationService.ListReconciliationsByAccount(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list reconciliations", slog.String("accountID", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reconciliations"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponses(recs))
}

func (h *reconciliationHandler) updateReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reconciliationID := c.Param("id")

	var req dto.UpdateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rec, err := h.reconciliationService.UpdateReconciliation(c.Request.Context(), reconciliationID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reconciliation not found"})
		} else {
			logger.Error("Failed to update reconciliation", slog.String("reconciliationID", reconciliationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reconciliation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}
