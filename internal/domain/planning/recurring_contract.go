package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
)

// RecurringContract represents an expected income or expense aggregate root.
// It is the source record from which forecast entries are derived: a client
// retainer, a rent bill, an insurance premium. The contract itself never
// appears in the ledger; the synchronizer projects it into occurrences.
type RecurringContract struct {
	shared.BaseAggregateRoot
	Name       string
	FlowType   FlowType
	CenterID   *uuid.UUID // optional cost/revenue center reference
	Amount     valueobject.Money
	Frequency  Frequency
	DayOfMonth int
	StartDate  time.Time
	EndDate    *time.Time // inclusive; nil = open-ended
	State      shared.Lifecycle
	DeletedAt  *time.Time
	Notes      string
}

// NewRecurringContract creates a new recurring contract
func NewRecurringContract(
	name string,
	flowType FlowType,
	amount valueobject.Money,
	frequency Frequency,
	dayOfMonth int,
	startDate time.Time,
	endDate *time.Time,
) (*RecurringContract, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Contract name cannot be empty")
	}
	if !flowType.IsValid() {
		return nil, shared.NewDomainError("INVALID_FLOW_TYPE", "Flow type must be INCOME or EXPENSE")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !frequency.IsValid() {
		return nil, shared.NewDomainError("INVALID_FREQUENCY", "Frequency is not valid")
	}
	if startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_START_DATE", "Start date is required")
	}
	if dayOfMonth == 0 {
		dayOfMonth = startDate.Day()
	}
	if dayOfMonth < 1 || dayOfMonth > 31 {
		return nil, shared.NewDomainError("INVALID_DAY", "Day of month must be between 1 and 31")
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_END_DATE", "End date cannot precede start date")
	}

	contract := &RecurringContract{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		FlowType:          flowType,
		Amount:            amount,
		Frequency:         frequency,
		DayOfMonth:        dayOfMonth,
		StartDate:         startDate,
		EndDate:           endDate,
		State:             shared.LifecycleActive,
	}

	contract.AddDomainEvent(NewContractCreatedEvent(contract))

	return contract, nil
}

// UpdateDetails changes fields that do not affect the occurrence schedule
// (amount, name, notes, center). Schedule-affecting changes go through
// Reschedule so callers can tell the two apart.
func (c *RecurringContract) UpdateDetails(name string, amount valueobject.Money, notes string, centerID *uuid.UUID) error {
	if !c.State.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a contract that is not active")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Contract name cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	c.Name = name
	c.Amount = amount
	c.Notes = notes
	c.CenterID = centerID
	c.UpdatedAt = time.Now()

	return nil
}

// Reschedule changes the occurrence schedule (frequency, day, start or end
// date). The synchronizer regenerates future entries after this succeeds.
func (c *RecurringContract) Reschedule(frequency Frequency, dayOfMonth int, startDate time.Time, endDate *time.Time) error {
	if !c.State.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot reschedule a contract that is not active")
	}
	if !frequency.IsValid() {
		return shared.NewDomainError("INVALID_FREQUENCY", "Frequency is not valid")
	}
	if startDate.IsZero() {
		return shared.NewDomainError("INVALID_START_DATE", "Start date is required")
	}
	if dayOfMonth == 0 {
		dayOfMonth = startDate.Day()
	}
	if dayOfMonth < 1 || dayOfMonth > 31 {
		return shared.NewDomainError("INVALID_DAY", "Day of month must be between 1 and 31")
	}
	if endDate != nil && endDate.Before(startDate) {
		return shared.NewDomainError("INVALID_END_DATE", "End date cannot precede start date")
	}

	c.Frequency = frequency
	c.DayOfMonth = dayOfMonth
	c.StartDate = startDate
	c.EndDate = endDate
	c.UpdatedAt = time.Now()

	c.AddDomainEvent(NewContractRescheduledEvent(c))

	return nil
}

// TerminationOutcome tells the caller how a termination was resolved
type TerminationOutcome string

const (
	// TerminationEnded means the contract was end-dated and keeps its history
	TerminationEnded TerminationOutcome = "ENDED"
	// TerminationDeleted means the contract never became active before the
	// effective date and was soft-deleted entirely
	TerminationDeleted TerminationOutcome = "DELETED"
)

// Terminate ends the contract as of the given effective date. The end date
// becomes the last day of the month preceding the effective date, so the
// month of termination no longer produces an occurrence. When that computed
// end date falls before the contract's own start the contract never had an
// active window and is soft-deleted instead.
func (c *RecurringContract) Terminate(effectiveDate time.Time) (TerminationOutcome, error) {
	if !c.State.IsActive() {
		return "", shared.NewDomainError("INVALID_STATE", "Cannot terminate a contract that is not active")
	}
	if effectiveDate.IsZero() {
		return "", shared.NewDomainError("INVALID_DATE", "Termination date is required")
	}

	newEnd := LastDayOfPrecedingMonth(effectiveDate)
	if newEnd.Before(c.StartDate) {
		c.softDelete()
		return TerminationDeleted, nil
	}

	c.EndDate = &newEnd
	c.State = shared.LifecycleEnded
	c.UpdatedAt = time.Now()
	c.AddDomainEvent(NewContractTerminatedEvent(c, effectiveDate))

	return TerminationEnded, nil
}

// Delete soft-deletes the contract unconditionally
func (c *RecurringContract) Delete() error {
	if c.State.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Contract is already deleted")
	}
	c.softDelete()
	return nil
}

func (c *RecurringContract) softDelete() {
	now := time.Now()
	c.State = shared.LifecycleDeleted
	c.DeletedAt = &now
	c.UpdatedAt = now
	c.AddDomainEvent(NewContractDeletedEvent(c))
}

// IsActive returns true if the contract is still generating occurrences
func (c *RecurringContract) IsActive() bool {
	return c.State.IsActive()
}

// LastDayOfPrecedingMonth returns the last day of the month before the
// given date, at midnight UTC.
func LastDayOfPrecedingMonth(date time.Time) time.Time {
	firstOfMonth := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 0, -1)
}
