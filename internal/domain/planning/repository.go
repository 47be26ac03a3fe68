package planning

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ContractRepository persists recurring contracts
type ContractRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RecurringContract, error)
	FindAll(ctx context.Context, filter ContractFilter) ([]RecurringContract, error)
	Save(ctx context.Context, contract *RecurringContract) error
}

// ContractFilter defines query options for contract lookups
type ContractFilter struct {
	FlowType       FlowType   // empty = both
	CenterID       *uuid.UUID
	ActiveOnly     bool
	OverlapsYear   int  // 0 = no year constraint
	IncludeDeleted bool
}

// EntryRepository persists forecast entries. Entries are keyed by their own
// id; derived entries are additionally reachable by (sourceID, date), which
// the synchronizer relies on to keep occurrences unique per contract.
type EntryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ForecastEntry, error)
	FindBySource(ctx context.Context, sourceID uuid.UUID, from *time.Time) ([]ForecastEntry, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]ForecastEntry, error)
	Save(ctx context.Context, entry *ForecastEntry) error
	SaveAll(ctx context.Context, entries []*ForecastEntry) error
	// SoftDeleteBySource marks all derived entries of a contract as deleted,
	// restricted to entries dated on or after from when from is non-nil.
	SoftDeleteBySource(ctx context.Context, sourceID uuid.UUID, from *time.Time) error
}
