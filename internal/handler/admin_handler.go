package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dcastano/partnerscope/internal/storage"
)

// AdminHandler serves provider-call statistics for cost monitoring.
type AdminHandler struct {
	calls  storage.CallRepository
	logger *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(calls storage.CallRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{calls: calls, logger: logger}
}

// Stats returns provider call counts, total and per tool.
// Route: GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := h.calls.Count(ctx)
	if err != nil {
		h.logger.Error("counting provider calls", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	failed, err := h.calls.CountFailed(ctx)
	if err != nil {
		h.logger.Error("counting failed provider calls", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	byTool := gin.H{}
	for _, tool := range []string{"find_contracted_companies", "check_public_trading_status", "get_company_financial_metrics"} {
		count, err := h.calls.CountByTool(ctx, tool)
		if err != nil {
			h.logger.Error("counting provider calls by tool",
				zap.String("tool", tool),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		byTool[tool] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"total_calls":  total,
		"failed_calls": failed,
		"by_tool":      byTool,
	})
}

// RecentCalls returns the most recent provider calls.
// Route: GET /api/v1/admin/calls?limit=20
func (h *AdminHandler) RecentCalls(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 500 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 500"})
		return
	}

	calls, err := h.calls.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("listing recent provider calls", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"calls": calls})
}
