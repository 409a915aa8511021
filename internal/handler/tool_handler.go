package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dcastano/partnerscope/internal/model"
	"github.com/dcastano/partnerscope/internal/service"
)

// ToolHandler exposes the tool operations over HTTP. Each endpoint
// returns the Result Envelope as JSON: 200 for success envelopes, 400
// for error envelopes (invalid input or provider failure — the envelope
// body carries the diagnostic either way).
type ToolHandler struct {
	finder   *service.PartnerFinder
	checker  *service.TradingChecker
	metrics  *service.MetricsReporter
	analyzer *service.Analyzer
	registry *service.Registry
	logger   *zap.Logger
}

// NewToolHandler creates a ToolHandler over the tool operations.
func NewToolHandler(
	finder *service.PartnerFinder,
	checker *service.TradingChecker,
	metrics *service.MetricsReporter,
	analyzer *service.Analyzer,
	registry *service.Registry,
	logger *zap.Logger,
) *ToolHandler {
	return &ToolHandler{
		finder:   finder,
		checker:  checker,
		metrics:  metrics,
		analyzer: analyzer,
		registry: registry,
		logger:   logger,
	}
}

type partnersRequest struct {
	CompanyName string `json:"company_name"`
}

type tradingStatusRequest struct {
	CompanyNames string `json:"company_names"`
}

type metricsRequest struct {
	Ticker string `json:"ticker"`
}

// Partners runs a partner search.
// Route: POST /api/v1/partners
func (h *ToolHandler) Partners(c *gin.Context) {
	var req partnersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	h.respond(c, h.finder.Find(c.Request.Context(), req.CompanyName))
}

// TradingStatus classifies a comma-separated company list.
// Route: POST /api/v1/trading-status
func (h *ToolHandler) TradingStatus(c *gin.Context) {
	var req tradingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	h.respond(c, h.checker.Check(c.Request.Context(), req.CompanyNames))
}

// Metrics fetches fundamentals for one ticker.
// Route: POST /api/v1/metrics
func (h *ToolHandler) Metrics(c *gin.Context) {
	var req metricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	h.respond(c, h.metrics.Report(c.Request.Context(), req.Ticker))
}

// Analyze runs the combined pipeline.
// Route: POST /api/v1/analyze
func (h *ToolHandler) Analyze(c *gin.Context) {
	var req partnersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	h.respond(c, h.analyzer.Analyze(c.Request.Context(), req.CompanyName))
}

// ListTools returns the tool catalog for the agent shell.
// Route: GET /api/v1/tools
func (h *ToolHandler) ListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": h.registry.List()})
}

// DispatchTool runs a tool by name with a flat argument map.
// Route: POST /api/v1/tools/:name
func (h *ToolHandler) DispatchTool(c *gin.Context) {
	var args map[string]string
	if err := c.ShouldBindJSON(&args); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	env, err := h.registry.Dispatch(c.Request.Context(), c.Param("name"), args)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	h.respond(c, env)
}

func (h *ToolHandler) respond(c *gin.Context, env *model.Envelope) {
	if !env.OK() {
		h.logger.Warn("tool operation failed",
			zap.String("path", c.FullPath()),
			zap.String("error", env.ErrorMessage),
		)
		c.JSON(http.StatusBadRequest, env)
		return
	}
	c.JSON(http.StatusOK, env)
}
