package persistence

import (
	"context"

	appdebt "github.com/liquiplan/backend/internal/application/debt"
	"github.com/liquiplan/backend/internal/domain/debt"
	"gorm.io/gorm"
)

// GormDebtTransactionScope implements the debt transaction scope using
// GORM transactions.
type GormDebtTransactionScope struct {
	db *gorm.DB
}

// NewGormDebtTransactionScope creates a new GormDebtTransactionScope
func NewGormDebtTransactionScope(db *gorm.DB) *GormDebtTransactionScope {
	return &GormDebtTransactionScope{db: db}
}

// Execute runs fn inside a database transaction, handing it repositories
// bound to that transaction.
func (s *GormDebtTransactionScope) Execute(ctx context.Context, fn func(repos appdebt.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(gormDebtTransactionalRepositories{tx: tx})
	})
}

type gormDebtTransactionalRepositories struct {
	tx *gorm.DB
}

func (r gormDebtTransactionalRepositories) Plans() debt.PlanRepository {
	return NewGormPlanRepository(r.tx)
}

func (r gormDebtTransactionalRepositories) Installments() debt.InstallmentRepository {
	return NewGormInstallmentRepository(r.tx)
}

var _ appdebt.TransactionScope = (*GormDebtTransactionScope)(nil)
