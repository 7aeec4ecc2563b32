package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/socioges/treasury_backend/internal/apperrors"
	portssvc "github.com/socioges/treasury_backend/internal/core/ports/services"
	"github.com/socioges/treasury_backend/internal/dto"
	"github.com/socioges/treasury_backend/internal/middleware"
)

// transferHandler handles HTTP requests related to transfers.
type transferHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// registerTransferRoutes registers routes related to transfers.
func registerTransferRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &transferHandler{ledgerService: ledgerService}

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.GET("/:id", h.getTransfer)
		transfers.GET("", h.listTransfers)
		transfers.PUT("/:id", h.updateTransfer)
		transfers.DELETE("/:id", h.deleteTransfer)
	}
}

func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transfer, err := h.ledgerService.CreateTransfer(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to create transfer")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

func (h *transferHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	transfer, err := h.ledgerService.GetTransferByID(c.Request.Context(), transferID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
		} else {
			logger.Error("Failed to get transfer", slog.String("transferID", transferID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transfer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

func (h *transferHandler) listTransfers(c *gin.Context) {
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

	transfers, err := h.ledgerService.ListTransfersByAccount(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to list transfers")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponses(transfers))
}

func (h *transferHandler) updateTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	var req dto.UpdateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transfer, err := h.ledgerService.UpdateTransfer(c.Request.Context(), transferID, req, userID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to update transfer")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

func (h *transferHandler) deleteTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.ledgerService.DeleteTransfer(c.Request.Context(), transferID, userID); err != nil {
		respondLedgerError(c, logger, err, "Failed to delete transfer")
		return
	}

	c.Status(http.StatusNoContent)
}
