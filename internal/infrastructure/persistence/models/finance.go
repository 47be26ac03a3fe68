package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/finance"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
)

// TransactionModel is the persistence model for the Transaction aggregate root.
type TransactionModel struct {
	AggregateModel
	Date        time.Time         `gorm:"not null;index"`
	Amount      valueobject.Money `gorm:"type:bigint;not null"`
	Description string            `gorm:"type:varchar(500)"`
	Transfer    bool              `gorm:"not null;index"`
	State       shared.Lifecycle  `gorm:"type:varchar(10);not null;default:'ACTIVE';index"`
	DeletedAt   *time.Time        `gorm:"index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *finance.Transaction {
	return &finance.Transaction{
		BaseAggregateRoot: m.aggregateRoot(),
		Date:              m.Date,
		Amount:            m.Amount,
		Description:       m.Description,
		Transfer:          m.Transfer,
		State:             m.State,
		DeletedAt:         m.DeletedAt,
	}
}

// TransactionModelFromDomain builds a persistence model from a domain transaction.
func TransactionModelFromDomain(t *finance.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Date = t.Date
	m.Amount = t.Amount
	m.Description = t.Description
	m.Transfer = t.Transfer
	m.State = t.State
	m.DeletedAt = t.DeletedAt
	return m
}

// IncomeSplitModel is the persistence model for the IncomeSplit aggregate root.
type IncomeSplitModel struct {
	AggregateModel
	TransactionID   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	Gross           valueobject.Money `gorm:"type:bigint;not null"`
	Net             valueobject.Money `gorm:"type:bigint;not null"`
	OwnerShare      valueobject.Money `gorm:"type:bigint;not null"`
	ReserveShare    valueobject.Money `gorm:"type:bigint;not null"`
	OperationsShare valueobject.Money `gorm:"type:bigint;not null"`
	TaxShare        valueobject.Money `gorm:"type:bigint;not null"`
	State           shared.Lifecycle  `gorm:"type:varchar(10);not null;default:'ACTIVE';index"`
	DeletedAt       *time.Time        `gorm:"index"`
}

// TableName returns the table name for GORM
func (IncomeSplitModel) TableName() string {
	return "income_splits"
}

// ToDomain converts the persistence model to a domain IncomeSplit entity.
func (m *IncomeSplitModel) ToDomain() *finance.IncomeSplit {
	return &finance.IncomeSplit{
		BaseAggregateRoot: m.aggregateRoot(),
		TransactionID:     m.TransactionID,
		Gross:             m.Gross,
		Net:               m.Net,
		OwnerShare:        m.OwnerShare,
		ReserveShare:      m.ReserveShare,
		OperationsShare:   m.OperationsShare,
		TaxShare:          m.TaxShare,
		State:             m.State,
		DeletedAt:         m.DeletedAt,
	}
}

// IncomeSplitModelFromDomain builds a persistence model from a domain split.
func IncomeSplitModelFromDomain(s *finance.IncomeSplit) *IncomeSplitModel {
	m := &IncomeSplitModel{}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.TransactionID = s.TransactionID
	m.Gross = s.Gross
	m.Net = s.Net
	m.OwnerShare = s.OwnerShare
	m.ReserveShare = s.ReserveShare
	m.OperationsShare = s.OperationsShare
	m.TaxShare = s.TaxShare
	m.State = s.State
	m.DeletedAt = s.DeletedAt
	return m
}
