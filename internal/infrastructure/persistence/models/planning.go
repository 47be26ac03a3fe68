package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/planning"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
)

// RecurringContractModel is the persistence model for the RecurringContract aggregate root.
type RecurringContractModel struct {
	AggregateModel
	Name       string                 `gorm:"type:varchar(200);not null"`
	FlowType   planning.FlowType      `gorm:"type:varchar(10);not null;index"`
	CenterID   *uuid.UUID             `gorm:"type:uuid;index"`
	Amount     valueobject.Money      `gorm:"type:bigint;not null"`
	Frequency  planning.Frequency     `gorm:"type:varchar(15);not null"`
	DayOfMonth int                    `gorm:"not null"`
	StartDate  time.Time              `gorm:"not null;index"`
	EndDate    *time.Time             `gorm:"index"`
	State      shared.Lifecycle       `gorm:"type:varchar(10);not null;default:'ACTIVE';index"`
	DeletedAt  *time.Time             `gorm:"index"`
	Notes      string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RecurringContractModel) TableName() string {
	return "recurring_contracts"
}

// ToDomain converts the persistence model to a domain RecurringContract entity.
func (m *RecurringContractModel) ToDomain() *planning.RecurringContract {
	return &planning.RecurringContract{
		BaseAggregateRoot: m.aggregateRoot(),
		Name:              m.Name,
		FlowType:          m.FlowType,
		CenterID:          m.CenterID,
		Amount:            m.Amount,
		Frequency:         m.Frequency,
		DayOfMonth:        m.DayOfMonth,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		State:             m.State,
		DeletedAt:         m.DeletedAt,
		Notes:             m.Notes,
	}
}

// RecurringContractModelFromDomain builds a persistence model from a domain contract.
func RecurringContractModelFromDomain(c *planning.RecurringContract) *RecurringContractModel {
	m := &RecurringContractModel{}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.FlowType = c.FlowType
	m.CenterID = c.CenterID
	m.Amount = c.Amount
	m.Frequency = c.Frequency
	m.DayOfMonth = c.DayOfMonth
	m.StartDate = c.StartDate
	m.EndDate = c.EndDate
	m.State = c.State
	m.DeletedAt = c.DeletedAt
	m.Notes = c.Notes
	return m
}

// ForecastEntryModel is the persistence model for the ForecastEntry aggregate root.
type ForecastEntryModel struct {
	AggregateModel
	Date        time.Time            `gorm:"not null;index"`
	FlowType    planning.FlowType    `gorm:"type:varchar(10);not null"`
	Amount      valueobject.Money    `gorm:"type:bigint;not null"`
	Description string               `gorm:"type:varchar(500)"`
	SourceType  *planning.SourceType `gorm:"type:varchar(20);index"`
	SourceID    *uuid.UUID           `gorm:"type:uuid;index"`
	Reliability planning.Reliability `gorm:"type:varchar(10);not null;default:'UNCERTAIN'"`
	State       shared.Lifecycle     `gorm:"type:varchar(10);not null;default:'ACTIVE';index"`
	DeletedAt   *time.Time           `gorm:"index"`
}

// TableName returns the table name for GORM
func (ForecastEntryModel) TableName() string {
	return "forecast_entries"
}

// ToDomain converts the persistence model to a domain ForecastEntry entity.
func (m *ForecastEntryModel) ToDomain() *planning.ForecastEntry {
	return &planning.ForecastEntry{
		BaseAggregateRoot: m.aggregateRoot(),
		Date:              m.Date,
		FlowType:          m.FlowType,
		Amount:            m.Amount,
		Description:       m.Description,
		SourceType:        m.SourceType,
		SourceID:          m.SourceID,
		Reliability:       m.Reliability,
		State:             m.State,
		DeletedAt:         m.DeletedAt,
	}
}

// ForecastEntryModelFromDomain builds a persistence model from a domain entry.
func ForecastEntryModelFromDomain(e *planning.ForecastEntry) *ForecastEntryModel {
	m := &ForecastEntryModel{}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Date = e.Date
	m.FlowType = e.FlowType
	m.Amount = e.Amount
	m.Description = e.Description
	m.SourceType = e.SourceType
	m.SourceID = e.SourceID
	m.Reliability = e.Reliability
	m.State = e.State
	m.DeletedAt = e.DeletedAt
	return m
}
