package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
)

// IncomeSplit records the decomposition of one gross receipt into its
// beneficiary shares. It is one-to-one with the transaction it splits:
// created once from the calculator's breakdown, deletable, never patched.
type IncomeSplit struct {
	shared.BaseAggregateRoot
	TransactionID   uuid.UUID
	Gross           valueobject.Money
	Net             valueobject.Money
	OwnerShare      valueobject.Money
	ReserveShare    valueobject.Money
	OperationsShare valueobject.Money
	TaxShare        valueobject.Money
	State           shared.Lifecycle
	DeletedAt       *time.Time
}

// NewIncomeSplit creates the split record for a transaction from a
// computed breakdown
func NewIncomeSplit(transactionID uuid.UUID, breakdown IncomeBreakdown) (*IncomeSplit, error) {
	if transactionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRANSACTION", "Transaction reference is required")
	}

	split := &IncomeSplit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TransactionID:     transactionID,
		Gross:             breakdown.Gross,
		Net:               breakdown.Net,
		OwnerShare:        breakdown.OwnerShare,
		ReserveShare:      breakdown.ReserveShare,
		OperationsShare:   breakdown.OperationsShare,
		TaxShare:          breakdown.TaxShare,
		State:             shared.LifecycleActive,
	}

	split.AddDomainEvent(NewIncomeSplitCreatedEvent(split))

	return split, nil
}

// SoftDelete marks the split as deleted
func (s *IncomeSplit) SoftDelete() {
	now := time.Now()
	s.State = shared.LifecycleDeleted
	s.DeletedAt = &now
	s.UpdatedAt = now
}

// IncomeSplitCreatedEvent is raised when a receipt is split
type IncomeSplitCreatedEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID `json:"transaction_id"`
	GrossCents    int64     `json:"gross_cents"`
	NetCents      int64     `json:"net_cents"`
}

// NewIncomeSplitCreatedEvent creates a new IncomeSplitCreatedEvent
func NewIncomeSplitCreatedEvent(s *IncomeSplit) *IncomeSplitCreatedEvent {
	return &IncomeSplitCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("finance.income_split.created", "IncomeSplit", s.ID),
		TransactionID:   s.TransactionID,
		GrossCents:      s.Gross.Cents(),
		NetCents:        s.Net.Cents(),
	}
}
