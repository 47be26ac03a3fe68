package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	financeapp "github.com/liquiplan/backend/internal/application/finance"
)

// FinanceHandler handles transaction, split and liquidity API endpoints
type FinanceHandler struct {
	BaseHandler
	splitService     *financeapp.SplitService
	liquidityService *financeapp.LiquidityService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(splitService *financeapp.SplitService, liquidityService *financeapp.LiquidityService) *FinanceHandler {
	return &FinanceHandler{
		splitService:     splitService,
		liquidityService: liquidityService,
	}
}

// RegisterRoutes registers finance routes on the given router group
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	finance := rg.Group("/finance")
	{
		finance.POST("/transactions", h.RecordTransaction)
		finance.GET("/transactions/:id/split", h.GetSplit)
		finance.POST("/splits", h.CreateSplit)
		finance.POST("/splits/sale-preview", h.PreviewSaleSplit)
		finance.GET("/liquidity/projection", h.Project)
		finance.DELETE("/liquidity/projection/:year", h.InvalidateProjection)
	}
}

// RecordTransaction records an actual bank transaction
func (h *FinanceHandler) RecordTransaction(c *gin.Context) {
	var req financeapp.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.splitService.RecordTransaction(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CreateSplit splits an inflow transaction into its reserved shares
func (h *FinanceHandler) CreateSplit(c *gin.Context) {
	var req financeapp.CreateSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.splitService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetSplit returns the split recorded against a transaction
func (h *FinanceHandler) GetSplit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	resp, err := h.splitService.GetByTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PreviewSaleSplit computes a sale split breakdown without persisting anything
func (h *FinanceHandler) PreviewSaleSplit(c *gin.Context) {
	var req financeapp.SaleSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.splitService.PreviewSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Project returns the monthly liquidity projection for a year
func (h *FinanceHandler) Project(c *gin.Context) {
	var req financeapp.ProjectionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.liquidityService.Project(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// InvalidateProjection drops the cached projection for a year
func (h *FinanceHandler) InvalidateProjection(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1970 || year > 2200 {
		h.BadRequest(c, "year must be a valid calendar year")
		return
	}

	h.liquidityService.Invalidate(c.Request.Context(), year)
	h.NoContent(c)
}
