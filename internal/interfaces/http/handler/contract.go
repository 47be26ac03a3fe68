package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	planningapp "github.com/liquiplan/backend/internal/application/planning"
)

// ContractHandler handles recurring contract API endpoints
type ContractHandler struct {
	BaseHandler
	contractService *planningapp.ContractService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService *planningapp.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// RegisterRoutes registers contract routes on the given router group
func (h *ContractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/planning/contracts")
	{
		contracts.POST("", h.Create)
		contracts.GET("", h.List)
		contracts.POST("/resync", h.ResyncAll)
		contracts.GET("/:id", h.Get)
		contracts.GET("/:id/schedule", h.GetSchedule)
		contracts.PUT("/:id", h.Update)
		contracts.POST("/:id/reschedule", h.Reschedule)
		contracts.POST("/:id/terminate", h.Terminate)
		contracts.POST("/:id/resync", h.Resync)
		contracts.DELETE("/:id", h.Delete)
	}
}

// Create creates a recurring contract and materializes its forecast entries
func (h *ContractHandler) Create(c *gin.Context) {
	var req planningapp.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	refDate, err := referenceDate(c)
	if err != nil {
		h.BadRequest(c, "reference_date must be formatted as YYYY-MM-DD")
		return
	}

	resp, err := h.contractService.Create(c.Request.Context(), req, refDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a single contract
func (h *ContractHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	resp, err := h.contractService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns contracts matching the query filter
func (h *ContractHandler) List(c *gin.Context) {
	var filter planningapp.ContractListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.contractService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetSchedule previews a contract's occurrence schedule for a year
func (h *ContractHandler) GetSchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1970 || year > 2200 {
		h.BadRequest(c, "year must be a valid calendar year")
		return
	}

	resp, err := h.contractService.GetSchedule(c.Request.Context(), id, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update changes contract fields that leave the schedule untouched
func (h *ContractHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	var req planningapp.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	refDate, err := referenceDate(c)
	if err != nil {
		h.BadRequest(c, "reference_date must be formatted as YYYY-MM-DD")
		return
	}

	resp, err := h.contractService.Update(c.Request.Context(), id, req, refDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reschedule changes a contract's occurrence schedule and regenerates
// its future forecast entries
func (h *ContractHandler) Reschedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	var req planningapp.RescheduleContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	refDate, err := referenceDate(c)
	if err != nil {
		h.BadRequest(c, "reference_date must be formatted as YYYY-MM-DD")
		return
	}

	resp, err := h.contractService.Reschedule(c.Request.Context(), id, req, refDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Terminate ends a contract as of an effective date
func (h *ContractHandler) Terminate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	var req planningapp.TerminateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.contractService.Terminate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Resync regenerates the derived forecast entries of one contract
func (h *ContractHandler) Resync(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	refDate, err := referenceDate(c)
	if err != nil {
		h.BadRequest(c, "reference_date must be formatted as YYYY-MM-DD")
		return
	}

	if err := h.contractService.Resync(c.Request.Context(), id, refDate); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ResyncAll regenerates the derived forecast entries of every active contract
func (h *ContractHandler) ResyncAll(c *gin.Context) {
	refDate, err := referenceDate(c)
	if err != nil {
		h.BadRequest(c, "reference_date must be formatted as YYYY-MM-DD")
		return
	}

	if err := h.contractService.ResyncAll(c.Request.Context(), refDate); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete soft-deletes a contract and its derived forecast entries
func (h *ContractHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	if err := h.contractService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
