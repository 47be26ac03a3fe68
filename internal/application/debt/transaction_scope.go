package debt

import (
	"context"

	"github.com/liquiplan/backend/internal/domain/debt"
)

// TransactionalRepositories exposes the debt repositories bound to one
// database transaction.
type TransactionalRepositories interface {
	Plans() debt.PlanRepository
	Installments() debt.InstallmentRepository
}

// TransactionScope runs a function against transactional repositories.
// Everything written inside fn commits or rolls back as a unit, so a
// schedule is never left half deleted and half rewritten.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope hands out the plain repositories without any
// transaction boundary. For tests.
type NoOpTransactionScope struct {
	PlanRepo        debt.PlanRepository
	InstallmentRepo debt.InstallmentRepository
}

// Execute runs fn directly against the wrapped repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Plans returns the plan repository
func (s *NoOpTransactionScope) Plans() debt.PlanRepository {
	return s.PlanRepo
}

// Installments returns the installment repository
func (s *NoOpTransactionScope) Installments() debt.InstallmentRepository {
	return s.InstallmentRepo
}
