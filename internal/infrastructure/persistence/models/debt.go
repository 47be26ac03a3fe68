package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/debt"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
)

// AmortizationPlanModel is the persistence model for the AmortizationPlan aggregate root.
type AmortizationPlanModel struct {
	AggregateModel
	Counterparty         string            `gorm:"type:varchar(200);not null"`
	Kind                 debt.PlanKind     `gorm:"type:varchar(10);not null;index"`
	TotalAmount          valueobject.Money `gorm:"type:bigint;not null"`
	InstallmentAmount    valueobject.Money `gorm:"type:bigint;not null"`
	InstallmentCount     int               `gorm:"not null"`
	PaidInstallmentCount int               `gorm:"not null;default:0"`
	StartDate            time.Time         `gorm:"not null"`
	CadenceMonths        int               `gorm:"not null;default:1"`
	// No column default on booleans: GORM omits zero-valued fields that
	// carry one, so false would silently persist as the default.
	Active               bool              `gorm:"not null;index"`
	SourceID             *uuid.UUID        `gorm:"type:uuid;uniqueIndex:idx_plan_source,where:source_id IS NOT NULL"`
	State                shared.Lifecycle  `gorm:"type:varchar(10);not null;default:'ACTIVE';index"`
	DeletedAt            *time.Time        `gorm:"index"`
}

// TableName returns the table name for GORM
func (AmortizationPlanModel) TableName() string {
	return "amortization_plans"
}

// ToDomain converts the persistence model to a domain AmortizationPlan entity.
func (m *AmortizationPlanModel) ToDomain() *debt.AmortizationPlan {
	return &debt.AmortizationPlan{
		BaseAggregateRoot:    m.aggregateRoot(),
		Counterparty:         m.Counterparty,
		Kind:                 m.Kind,
		TotalAmount:          m.TotalAmount,
		InstallmentAmount:    m.InstallmentAmount,
		InstallmentCount:     m.InstallmentCount,
		PaidInstallmentCount: m.PaidInstallmentCount,
		StartDate:            m.StartDate,
		CadenceMonths:        m.CadenceMonths,
		Active:               m.Active,
		SourceID:             m.SourceID,
		State:                m.State,
		DeletedAt:            m.DeletedAt,
	}
}

// AmortizationPlanModelFromDomain builds a persistence model from a domain plan.
func AmortizationPlanModelFromDomain(p *debt.AmortizationPlan) *AmortizationPlanModel {
	m := &AmortizationPlanModel{}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Counterparty = p.Counterparty
	m.Kind = p.Kind
	m.TotalAmount = p.TotalAmount
	m.InstallmentAmount = p.InstallmentAmount
	m.InstallmentCount = p.InstallmentCount
	m.PaidInstallmentCount = p.PaidInstallmentCount
	m.StartDate = p.StartDate
	m.CadenceMonths = p.CadenceMonths
	m.Active = p.Active
	m.SourceID = p.SourceID
	m.State = p.State
	m.DeletedAt = p.DeletedAt
	return m
}

// InstallmentModel is the persistence model for the Installment entity.
type InstallmentModel struct {
	BaseModel
	PlanID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_installment_plan_seq,priority:1"`
	Sequence      int               `gorm:"not null;uniqueIndex:idx_installment_plan_seq,priority:2"`
	DueDate       time.Time         `gorm:"not null;index"`
	Amount        valueobject.Money `gorm:"type:bigint;not null"`
	Paid          bool              `gorm:"not null;index"`
	PaidDate      *time.Time
	TransactionID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (InstallmentModel) TableName() string {
	return "installments"
}

// ToDomain converts the persistence model to a domain Installment entity.
func (m *InstallmentModel) ToDomain() *debt.Installment {
	return &debt.Installment{
		BaseEntity:    m.BaseModel.ToDomain(),
		PlanID:        m.PlanID,
		Sequence:      m.Sequence,
		DueDate:       m.DueDate,
		Amount:        m.Amount,
		Paid:          m.Paid,
		PaidDate:      m.PaidDate,
		TransactionID: m.TransactionID,
	}
}

// InstallmentModelFromDomain builds a persistence model from a domain installment.
func InstallmentModelFromDomain(i *debt.Installment) *InstallmentModel {
	m := &InstallmentModel{}
	m.FromDomainBaseEntity(i.BaseEntity)
	m.PlanID = i.PlanID
	m.Sequence = i.Sequence
	m.DueDate = i.DueDate
	m.Amount = i.Amount
	m.Paid = i.Paid
	m.PaidDate = i.PaidDate
	m.TransactionID = i.TransactionID
	return m
}
