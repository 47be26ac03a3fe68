package integration

import (
	"context"
	"testing"
	"time"

	"github.com/liquiplan/backend/internal/domain/planning"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
	"github.com/liquiplan/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContract(t *testing.T, name string, startDate time.Time) *planning.RecurringContract {
	t.Helper()
	contract, err := planning.NewRecurringContract(
		name,
		planning.FlowTypeExpense,
		valueobject.NewMoney(120000),
		planning.FrequencyMonthly,
		1,
		startDate,
		nil,
	)
	require.NoError(t, err)
	return contract
}

func TestContractRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := persistence.NewGormContractRepository(testDB.DB)
	ctx := context.Background()

	t.Run("Save and FindByID", func(t *testing.T) {
		contract := newTestContract(t, "Office rent", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

		require.NoError(t, repo.Save(ctx, contract))

		found, err := repo.FindByID(ctx, contract.ID)
		require.NoError(t, err)
		assert.Equal(t, contract.ID, found.ID)
		assert.Equal(t, "Office rent", found.Name)
		assert.Equal(t, int64(120000), found.Amount.Cents())
		assert.Equal(t, planning.FrequencyMonthly, found.Frequency)
		assert.Equal(t, shared.LifecycleActive, found.State)
	})

	t.Run("FindByID unknown returns not found", func(t *testing.T) {
		contract := newTestContract(t, "Ghost", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		_, err := repo.FindByID(ctx, contract.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindAll filters deleted contracts", func(t *testing.T) {
		testDB := NewTestDB(t)
		repo := persistence.NewGormContractRepository(testDB.DB)

		kept := newTestContract(t, "Kept", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		removed := newTestContract(t, "Removed", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, removed.Delete())

		require.NoError(t, repo.Save(ctx, kept))
		require.NoError(t, repo.Save(ctx, removed))

		found, err := repo.FindAll(ctx, planning.ContractFilter{})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Kept", found[0].Name)

		all, err := repo.FindAll(ctx, planning.ContractFilter{IncludeDeleted: true})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("FindAll with year overlap", func(t *testing.T) {
		testDB := NewTestDB(t)
		repo := persistence.NewGormContractRepository(testDB.DB)

		endDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
		ended, err := planning.NewRecurringContract(
			"Ended in 2025",
			planning.FlowTypeExpense,
			valueobject.NewMoney(50000),
			planning.FrequencyMonthly,
			1,
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			&endDate,
		)
		require.NoError(t, err)
		open := newTestContract(t, "Open ended", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

		require.NoError(t, repo.Save(ctx, ended))
		require.NoError(t, repo.Save(ctx, open))

		in2026, err := repo.FindAll(ctx, planning.ContractFilter{OverlapsYear: 2026})
		require.NoError(t, err)
		require.Len(t, in2026, 1)
		assert.Equal(t, "Open ended", in2026[0].Name)

		in2025, err := repo.FindAll(ctx, planning.ContractFilter{OverlapsYear: 2025})
		require.NoError(t, err)
		assert.Len(t, in2025, 2)
	})
}

func TestEntryRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	contractRepo := persistence.NewGormContractRepository(testDB.DB)
	repo := persistence.NewGormEntryRepository(testDB.DB)
	ctx := context.Background()

	contract := newTestContract(t, "Hosting", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, contractRepo.Save(ctx, contract))

	entries := make([]*planning.ForecastEntry, 0, 4)
	for month := 1; month <= 4; month++ {
		date := time.Date(2026, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		entries = append(entries, planning.NewContractEntry(contract, date))
	}
	require.NoError(t, repo.SaveAll(ctx, entries))

	t.Run("FindBySource returns ordered entries", func(t *testing.T) {
		found, err := repo.FindBySource(ctx, contract.ID, nil)
		require.NoError(t, err)
		require.Len(t, found, 4)
		assert.Equal(t, time.Month(1), found[0].Date.Month())
		assert.Equal(t, time.Month(4), found[3].Date.Month())
	})

	t.Run("FindBySource with from restricts to future entries", func(t *testing.T) {
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		found, err := repo.FindBySource(ctx, contract.ID, &from)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, time.Month(3), found[0].Date.Month())
	})

	t.Run("FindByDateRange skips entries outside the window", func(t *testing.T) {
		found, err := repo.FindByDateRange(ctx,
			time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("SoftDeleteBySource hides future entries only", func(t *testing.T) {
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, repo.SoftDeleteBySource(ctx, contract.ID, &from))

		remaining, err := repo.FindBySource(ctx, contract.ID, nil)
		require.NoError(t, err)
		require.Len(t, remaining, 2)
		assert.Equal(t, time.Month(2), remaining[1].Date.Month())

		// Deleted entries stay readable by ID for audit.
		deleted, err := repo.FindByID(ctx, entries[2].ID)
		require.NoError(t, err)
		assert.Equal(t, shared.LifecycleDeleted, deleted.State)
		assert.NotNil(t, deleted.DeletedAt)
	})

	t.Run("SoftDeleteBySource without from hides everything", func(t *testing.T) {
		require.NoError(t, repo.SoftDeleteBySource(ctx, contract.ID, nil))

		remaining, err := repo.FindBySource(ctx, contract.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("manual entry roundtrip keeps nil source", func(t *testing.T) {
		manual, err := planning.NewManualEntry(
			time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
			planning.FlowTypeIncome,
			valueobject.NewMoney(500000),
			"Expected grant",
			planning.ReliabilityUncertain,
		)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, manual))

		found, err := repo.FindByID(ctx, manual.ID)
		require.NoError(t, err)
		assert.Nil(t, found.SourceID)
		assert.Nil(t, found.SourceType)
		assert.True(t, found.IsManual())
	})
}
