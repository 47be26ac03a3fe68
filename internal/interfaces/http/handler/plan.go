package handler

import (
	"github.com/gin-gonic/gin"
	debtapp "github.com/liquiplan/backend/internal/application/debt"
)

// PlanHandler handles amortization plan API endpoints
type PlanHandler struct {
	BaseHandler
	planService *debtapp.PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService *debtapp.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// ExtendPlanRequest adds an amount to a plan's outstanding total
type ExtendPlanRequest struct {
	AmountCents int64 `json:"amount_cents" binding:"required,gt=0"`
}

// RegisterRoutes registers plan routes on the given router group
func (h *PlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/debt/plans")
	{
		plans.POST("", h.Create)
		plans.GET("", h.List)
		plans.POST("/won-sale", h.RecordWonSale)
		plans.GET("/:id", h.Get)
		plans.POST("/:id/regenerate", h.Regenerate)
		plans.POST("/:id/extend", h.Extend)
		plans.DELETE("/:id", h.Delete)
	}
	installments := rg.Group("/debt/installments")
	{
		installments.POST("/:id/pay", h.Pay)
		installments.POST("/:id/unpay", h.Unpay)
	}
}

// Create creates an amortization plan with its installment schedule
func (h *PlanHandler) Create(c *gin.Context) {
	var req debtapp.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.planService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a plan with its installments
func (h *PlanHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	resp, err := h.planService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns plans matching the query filter
func (h *PlanHandler) List(c *gin.Context) {
	var filter debtapp.PlanListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.planService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Regenerate rebuilds a plan's installment schedule
func (h *PlanHandler) Regenerate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	var req debtapp.RegeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.planService.Regenerate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Extend adds an amount to the plan total and rebuilds the unpaid tail
func (h *PlanHandler) Extend(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	var req ExtendPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.planService.Extend(c.Request.Context(), id, req.AmountCents)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Pay marks an installment as paid
func (h *PlanHandler) Pay(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid installment ID")
		return
	}

	var req debtapp.PayInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.planService.Pay(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Unpay reverts an installment payment
func (h *PlanHandler) Unpay(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid installment ID")
		return
	}

	resp, err := h.planService.Unpay(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordWonSale generates the receivable schedule for a won sale opportunity
func (h *PlanHandler) RecordWonSale(c *gin.Context) {
	var req debtapp.WonSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.planService.RecordWonSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Delete soft-deletes a plan
func (h *PlanHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	if err := h.planService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
