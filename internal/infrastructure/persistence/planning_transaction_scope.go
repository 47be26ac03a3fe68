package persistence

import (
	"context"

	appplanning "github.com/liquiplan/backend/internal/application/planning"
	"github.com/liquiplan/backend/internal/domain/debt"
	"github.com/liquiplan/backend/internal/domain/planning"
	"gorm.io/gorm"
)

// GormPlanningTransactionScope implements the planning transaction scope
// using GORM transactions.
type GormPlanningTransactionScope struct {
	db *gorm.DB
}

// NewGormPlanningTransactionScope creates a new GormPlanningTransactionScope
func NewGormPlanningTransactionScope(db *gorm.DB) *GormPlanningTransactionScope {
	return &GormPlanningTransactionScope{db: db}
}

// Execute runs fn inside a database transaction, handing it repositories
// bound to that transaction.
func (s *GormPlanningTransactionScope) Execute(ctx context.Context, fn func(repos appplanning.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(gormPlanningTransactionalRepositories{tx: tx})
	})
}

type gormPlanningTransactionalRepositories struct {
	tx *gorm.DB
}

func (r gormPlanningTransactionalRepositories) Entries() planning.EntryRepository {
	return NewGormEntryRepository(r.tx)
}

func (r gormPlanningTransactionalRepositories) Plans() debt.PlanRepository {
	return NewGormPlanRepository(r.tx)
}

func (r gormPlanningTransactionalRepositories) Installments() debt.InstallmentRepository {
	return NewGormInstallmentRepository(r.tx)
}

var _ appplanning.TransactionScope = (*GormPlanningTransactionScope)(nil)
