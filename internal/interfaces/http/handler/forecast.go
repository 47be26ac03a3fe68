package handler

import (
	"github.com/gin-gonic/gin"
	planningapp "github.com/liquiplan/backend/internal/application/planning"
)

// ForecastHandler handles forecast entry API endpoints
type ForecastHandler struct {
	BaseHandler
	forecastService *planningapp.ForecastService
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(forecastService *planningapp.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService}
}

// RegisterRoutes registers forecast entry routes on the given router group
func (h *ForecastHandler) RegisterRoutes(rg *gin.RouterGroup) {
	entries := rg.Group("/planning/entries")
	{
		entries.POST("", h.Create)
		entries.GET("", h.List)
		entries.GET("/:id", h.Get)
		entries.PATCH("/:id", h.Patch)
		entries.POST("/:id/promote", h.Promote)
		entries.DELETE("/:id", h.Delete)
	}
}

// Create adds a manual forecast entry
func (h *ForecastHandler) Create(c *gin.Context) {
	var req planningapp.CreateManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.forecastService.CreateManual(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a single forecast entry
func (h *ForecastHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	resp, err := h.forecastService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns active entries within a date range
func (h *ForecastHandler) List(c *gin.Context) {
	var filter planningapp.EntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.forecastService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Patch edits the cosmetic fields of an entry
func (h *ForecastHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	var req planningapp.PatchEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.forecastService.Patch(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Promote converts an expense entry into an amortization plan
func (h *ForecastHandler) Promote(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	var req planningapp.PromoteEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.forecastService.Promote(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete soft-deletes a forecast entry
func (h *ForecastHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.forecastService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
