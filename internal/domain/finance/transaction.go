package finance

import (
	"time"

	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
)

// Transaction represents an actual cash movement on the business account.
// Amounts are signed: inflows positive, outflows negative - the one sign
// convention of the system, normalized here at the boundary. Transactions
// arrive from CSV import or manual entry; the core only ever creates the
// transfer transactions derived from income splits.
type Transaction struct {
	shared.BaseAggregateRoot
	Date        time.Time
	Amount      valueobject.Money
	Description string
	Transfer    bool // internal movement, excluded from inflow/outflow totals
	State       shared.Lifecycle
	DeletedAt   *time.Time
}

// NewTransaction creates a new transaction
func NewTransaction(date time.Time, amount valueobject.Money, description string, transfer bool) (*Transaction, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Transaction date is required")
	}
	if amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount cannot be zero")
	}

	return &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		Amount:            amount,
		Description:       description,
		Transfer:          transfer,
		State:             shared.LifecycleActive,
	}, nil
}

// IsInflow returns true for positive amounts
func (t *Transaction) IsInflow() bool {
	return t.Amount.IsPositive()
}

// SoftDelete marks the transaction as deleted
func (t *Transaction) SoftDelete() {
	now := time.Now()
	t.State = shared.LifecycleDeleted
	t.DeletedAt = &now
	t.UpdatedAt = now
}
