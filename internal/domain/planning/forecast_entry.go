package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
)

// SourceType identifies the kind of record a forecast entry derives from
type SourceType string

const (
	SourceTypeContract SourceType = "CONTRACT"
)

// Reliability tags how certain a projected event is
type Reliability string

const (
	ReliabilityConfirmed Reliability = "CONFIRMED"
	ReliabilityLikely    Reliability = "LIKELY"
	ReliabilityUncertain Reliability = "UNCERTAIN"
)

// IsValid checks if the reliability is a valid Reliability
func (r Reliability) IsValid() bool {
	switch r {
	case ReliabilityConfirmed, ReliabilityLikely, ReliabilityUncertain:
		return true
	}
	return false
}

// ForecastEntry represents one projected ledger line: a derived occurrence
// of a recurring contract, or a manually added expected event. Entries
// derived from a contract are owned by the synchronizer - callers may patch
// cosmetic fields or soft-delete them, never change the source linkage.
type ForecastEntry struct {
	shared.BaseAggregateRoot
	Date        time.Time
	FlowType    FlowType
	Amount      valueobject.Money
	Description string
	SourceType  *SourceType // nil for manual entries
	SourceID    *uuid.UUID  // nil for manual entries
	Reliability Reliability
	State       shared.Lifecycle
	DeletedAt   *time.Time
}

// NewContractEntry creates a forecast entry derived from a contract occurrence
func NewContractEntry(contract *RecurringContract, date time.Time) *ForecastEntry {
	sourceType := SourceTypeContract
	sourceID := contract.ID
	return &ForecastEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		FlowType:          contract.FlowType,
		Amount:            contract.Amount,
		Description:       contract.Name,
		SourceType:        &sourceType,
		SourceID:          &sourceID,
		Reliability:       ReliabilityLikely,
		State:             shared.LifecycleActive,
	}
}

// NewManualEntry creates a manually added forecast entry
func NewManualEntry(date time.Time, flowType FlowType, amount valueobject.Money, description string, reliability Reliability) (*ForecastEntry, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Entry date is required")
	}
	if !flowType.IsValid() {
		return nil, shared.NewDomainError("INVALID_FLOW_TYPE", "Flow type must be INCOME or EXPENSE")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if reliability == "" {
		reliability = ReliabilityUncertain
	}
	if !reliability.IsValid() {
		return nil, shared.NewDomainError("INVALID_RELIABILITY", "Reliability tag is not valid")
	}

	return &ForecastEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		FlowType:          flowType,
		Amount:            amount,
		Description:       description,
		Reliability:       reliability,
		State:             shared.LifecycleActive,
	}, nil
}

// IsManual returns true if the entry was added by hand rather than derived
func (e *ForecastEntry) IsManual() bool {
	return e.SourceID == nil
}

// BelongsTo returns true if the entry derives from the given contract
func (e *ForecastEntry) BelongsTo(contractID uuid.UUID) bool {
	return e.SourceID != nil && *e.SourceID == contractID
}

// Patch updates the cosmetic fields of the entry (date, amount,
// description, reliability). Source linkage is never touched.
func (e *ForecastEntry) Patch(date time.Time, amount valueobject.Money, description string, reliability Reliability) error {
	if !e.State.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot patch an entry that is not active")
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Entry date is required")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !reliability.IsValid() {
		return shared.NewDomainError("INVALID_RELIABILITY", "Reliability tag is not valid")
	}

	e.Date = date
	e.Amount = amount
	e.Description = description
	e.Reliability = reliability
	e.UpdatedAt = time.Now()

	return nil
}

// Refresh aligns a derived entry's amount and description with its source
// contract. Used for field-only contract updates on future entries.
func (e *ForecastEntry) Refresh(contract *RecurringContract) {
	e.Amount = contract.Amount
	e.Description = contract.Name
	e.UpdatedAt = time.Now()
}

// SoftDelete marks the entry as deleted while keeping it for audit
func (e *ForecastEntry) SoftDelete() {
	now := time.Now()
	e.State = shared.LifecycleDeleted
	e.DeletedAt = &now
	e.UpdatedAt = now
}

// SignedAmount returns the entry amount under the system-wide sign
// convention: incomes positive, expenses negative.
func (e *ForecastEntry) SignedAmount() valueobject.Money {
	if e.FlowType == FlowTypeExpense {
		return e.Amount.Negate()
	}
	return e.Amount
}
