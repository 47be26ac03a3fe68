package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TransactionRepository reads and writes actual transactions. The feed is
// mostly produced outside the core (CSV import, manual entry); the core
// reads ranges for projection and writes only split-derived transfers.
type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Transaction, error)
	Save(ctx context.Context, tx *Transaction) error
}

// SplitRepository persists income splits
type SplitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*IncomeSplit, error)
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*IncomeSplit, error)
	FindAll(ctx context.Context) ([]IncomeSplit, error)
	Save(ctx context.Context, split *IncomeSplit) error
}
