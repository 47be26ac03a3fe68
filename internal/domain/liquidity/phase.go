package liquidity

import "github.com/liquiplan/backend/internal/domain/shared/valueobject"

// Phase is the coarse liquidity-health classification of the business
type Phase string

const (
	PhaseDefense Phase = "DEFENSE" // projected balance below zero
	PhaseAttack  Phase = "ATTACK"  // positive but below the growth floor
	PhaseGrowth  Phase = "GROWTH"  // at or above the growth floor
)

// IsValid checks if the phase is valid
func (p Phase) IsValid() bool {
	switch p {
	case PhaseDefense, PhaseAttack, PhaseGrowth:
		return true
	}
	return false
}

// String returns the string representation
func (p Phase) String() string {
	return string(p)
}

// Thresholds are the balance boundaries of the phase policy. They come
// from the settings store; the zero defense boundary is fixed.
type Thresholds struct {
	AttackFloor valueobject.Money // stabilization target between defense and growth
	GrowthFloor valueobject.Money // running balance that marks the growth phase
}

// DefaultThresholds returns the default phase policy: stabilization at
// 5 000.00 and growth at 7 000.00.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AttackFloor: valueobject.NewMoney(500000),
		GrowthFloor: valueobject.NewMoney(700000),
	}
}

// ClassifyPhase maps a projected running balance to its operating phase.
// Negative balances are defense, balances at or above the growth floor are
// growth, everything in between is attack.
func ClassifyPhase(balance valueobject.Money, t Thresholds) Phase {
	if balance.IsNegative() {
		return PhaseDefense
	}
	if balance.GreaterThanOrEqual(t.GrowthFloor) {
		return PhaseGrowth
	}
	return PhaseAttack
}
