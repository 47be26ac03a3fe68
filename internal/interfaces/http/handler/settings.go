package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/liquiplan/backend/internal/domain/liquidity"
	"github.com/liquiplan/backend/internal/domain/settings"
)

// SettingsHandler exposes the liquidity policy settings
type SettingsHandler struct {
	BaseHandler
	settingsRepo settings.Repository
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsRepo settings.Repository) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo}
}

// LiquidityPolicyResponse represents the stored liquidity policy
type LiquidityPolicyResponse struct {
	OpeningBalanceCents int64 `json:"opening_balance_cents"`
	AttackFloorCents    int64 `json:"attack_floor_cents"`
	GrowthFloorCents    int64 `json:"growth_floor_cents"`
}

// UpdateLiquidityPolicyRequest updates the stored liquidity policy.
// Omitted fields keep their current value.
type UpdateLiquidityPolicyRequest struct {
	OpeningBalanceCents *int64 `json:"opening_balance_cents"`
	AttackFloorCents    *int64 `json:"attack_floor_cents" binding:"omitempty,gte=0"`
	GrowthFloorCents    *int64 `json:"growth_floor_cents" binding:"omitempty,gte=0"`
}

// RegisterRoutes registers settings routes on the given router group
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings/liquidity-policy", h.GetLiquidityPolicy)
	rg.PUT("/settings/liquidity-policy", h.UpdateLiquidityPolicy)
}

// GetLiquidityPolicy returns the stored policy with defaults filled in
func (h *SettingsHandler) GetLiquidityPolicy(c *gin.Context) {
	ctx := c.Request.Context()

	defaults := liquidity.DefaultThresholds()
	opening, err := settings.GetInt64(ctx, h.settingsRepo, settings.KeyOpeningBalanceCents, 0)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	attack, err := settings.GetInt64(ctx, h.settingsRepo, settings.KeyAttackFloorCents, defaults.AttackFloor.Cents())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	growth, err := settings.GetInt64(ctx, h.settingsRepo, settings.KeyGrowthFloorCents, defaults.GrowthFloor.Cents())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LiquidityPolicyResponse{
		OpeningBalanceCents: opening,
		AttackFloorCents:    attack,
		GrowthFloorCents:    growth,
	})
}

// UpdateLiquidityPolicy stores the provided policy fields
func (h *SettingsHandler) UpdateLiquidityPolicy(c *gin.Context) {
	var req UpdateLiquidityPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	if req.OpeningBalanceCents == nil && req.AttackFloorCents == nil && req.GrowthFloorCents == nil {
		h.BadRequest(c, "At least one policy field must be provided")
		return
	}

	ctx := c.Request.Context()
	updates := map[string]*int64{
		settings.KeyOpeningBalanceCents: req.OpeningBalanceCents,
		settings.KeyAttackFloorCents:    req.AttackFloorCents,
		settings.KeyGrowthFloorCents:    req.GrowthFloorCents,
	}
	for key, value := range updates {
		if value == nil {
			continue
		}
		if err := h.settingsRepo.Set(ctx, key, strconv.FormatInt(*value, 10)); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	h.GetLiquidityPolicy(c)
}
