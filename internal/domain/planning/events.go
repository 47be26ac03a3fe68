package planning

import (
	"time"

	"github.com/liquiplan/backend/internal/domain/shared"
)

// Event types for the planning context
const (
	EventContractCreated     = "planning.contract.created"
	EventContractRescheduled = "planning.contract.rescheduled"
	EventContractTerminated  = "planning.contract.terminated"
	EventContractDeleted     = "planning.contract.deleted"
	EventForecastRegenerated = "planning.forecast.regenerated"
)

const aggregateTypeContract = "RecurringContract"

// ContractCreatedEvent is raised when a recurring contract is created
type ContractCreatedEvent struct {
	shared.BaseDomainEvent
	Name      string    `json:"name"`
	FlowType  FlowType  `json:"flow_type"`
	Frequency Frequency `json:"frequency"`
	StartDate time.Time `json:"start_date"`
}

// NewContractCreatedEvent creates a new ContractCreatedEvent
func NewContractCreatedEvent(c *RecurringContract) *ContractCreatedEvent {
	return &ContractCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContractCreated, aggregateTypeContract, c.ID),
		Name:            c.Name,
		FlowType:        c.FlowType,
		Frequency:       c.Frequency,
		StartDate:       c.StartDate,
	}
}

// ContractRescheduledEvent is raised when schedule parameters change
type ContractRescheduledEvent struct {
	shared.BaseDomainEvent
	Frequency Frequency  `json:"frequency"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// NewContractRescheduledEvent creates a new ContractRescheduledEvent
func NewContractRescheduledEvent(c *RecurringContract) *ContractRescheduledEvent {
	return &ContractRescheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContractRescheduled, aggregateTypeContract, c.ID),
		Frequency:       c.Frequency,
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
	}
}

// ContractTerminatedEvent is raised when a contract is end-dated
type ContractTerminatedEvent struct {
	shared.BaseDomainEvent
	EffectiveDate time.Time  `json:"effective_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

// NewContractTerminatedEvent creates a new ContractTerminatedEvent
func NewContractTerminatedEvent(c *RecurringContract, effectiveDate time.Time) *ContractTerminatedEvent {
	return &ContractTerminatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContractTerminated, aggregateTypeContract, c.ID),
		EffectiveDate:   effectiveDate,
		EndDate:         c.EndDate,
	}
}

// ForecastRegeneratedEvent is raised when the derived entries of a
// contract are rebuilt from a given date on
type ForecastRegeneratedEvent struct {
	shared.BaseDomainEvent
	From       time.Time `json:"from"`
	EntryCount int       `json:"entry_count"`
}

// NewForecastRegeneratedEvent creates a new ForecastRegeneratedEvent
func NewForecastRegeneratedEvent(c *RecurringContract, from time.Time, entryCount int) *ForecastRegeneratedEvent {
	return &ForecastRegeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventForecastRegenerated, aggregateTypeContract, c.ID),
		From:            from,
		EntryCount:      entryCount,
	}
}

// ContractDeletedEvent is raised when a contract is soft-deleted
type ContractDeletedEvent struct {
	shared.BaseDomainEvent
}

// NewContractDeletedEvent creates a new ContractDeletedEvent
func NewContractDeletedEvent(c *RecurringContract) *ContractDeletedEvent {
	return &ContractDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContractDeleted, aggregateTypeContract, c.ID),
	}
}
