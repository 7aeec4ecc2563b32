package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socioges/treasury_backend/internal/apperrors"
	"github.com/socioges/treasury_backend/internal/core/domain"
	portssvc "github.com/socioges/treasury_backend/internal/core/ports/services"
	"github.com/socioges/treasury_backend/internal/core/services"
	"github.com/socioges/treasury_backend/internal/dto"
	"github.com/socioges/treasury_backend/internal/middleware"
)

// entryHandler serves both /expenses and /incomes; the kind is fixed per
// route group so the payloads never carry it.
type entryHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	kind          domain.EntryKind
}

// registerEntryRoutes registers the expense and income route groups.
func registerEntryRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	for path, kind := range map[string]domain.EntryKind{
		"/expenses": domain.Expense,
		"/incomes":  domain.Income,
	} {
		h := &entryHandler{ledgerService: ledgerService, kind: kind}
		group := rg.Group(path)
		{
			group.POST("", h.createEntry)
			group.GET("/:id", h.getEntry)
			group.GET("", h.listEntries)
			group.PUT("/:id", h.updateEntry)
			group.DELETE("/:id", h.deleteEntry)
		}
	}
}

// respondLedgerError maps service errors from ledger mutations onto HTTP
// statuses. Conflicts carry a retryable flag so clients know a replay of the
// same request may succeed.
func respondLedgerError(c *gin.Context, logger *slog.Logger, err error, failMsg string) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrSameAccount),
		errors.Is(err, services.ErrAccountInactive),
		errors.Is(err, services.ErrCategoryMismatch),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccountNotFound), errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": true})
	case errors.Is(err, apperrors.ErrConstraint), errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
	}
}

func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), h.kind, req, creatorUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), h.kind, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			logger.Error("Failed to get entry", slog.String("entryID", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.ledgerService.ListEntriesByAccount(c.Request.Context(), h.kind, params)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}

func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.UpdateEntry(c.Request.Context(), h.kind, entryID, req, userID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to update entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), h.kind, entryID, userID); err != nil {
		respondLedgerError(c, logger, err, "Failed to delete entry")
		return
	}

	c.Status(http.StatusNoContent)
}
