package planning

import (
	"context"

	"github.com/liquiplan/backend/internal/domain/debt"
	"github.com/liquiplan/backend/internal/domain/planning"
)

// TransactionalRepositories exposes the repositories a planning write
// sequence touches, bound to one database transaction. The debt
// repositories are included because promoting a forecast entry writes the
// entry and the resulting plan together.
type TransactionalRepositories interface {
	Entries() planning.EntryRepository
	Plans() debt.PlanRepository
	Installments() debt.InstallmentRepository
}

// TransactionScope runs a function against transactional repositories.
// Everything written inside fn commits or rolls back as a unit.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope hands out the plain repositories without any
// transaction boundary. For tests.
type NoOpTransactionScope struct {
	EntryRepo       planning.EntryRepository
	PlanRepo        debt.PlanRepository
	InstallmentRepo debt.InstallmentRepository
}

// Execute runs fn directly against the wrapped repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Entries returns the forecast entry repository
func (s *NoOpTransactionScope) Entries() planning.EntryRepository {
	return s.EntryRepo
}

// Plans returns the plan repository
func (s *NoOpTransactionScope) Plans() debt.PlanRepository {
	return s.PlanRepo
}

// Installments returns the installment repository
func (s *NoOpTransactionScope) Installments() debt.InstallmentRepository {
	return s.InstallmentRepo
}
