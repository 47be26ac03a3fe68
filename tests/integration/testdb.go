// Package integration exercises the GORM repositories against a real
// database. SQLite runs in-memory so the suite needs no external services.
package integration

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/liquiplan/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// TestDB wraps an isolated in-memory database for one test
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB opens a fresh in-memory database and migrates the full schema.
// Each call gets its own database, so tests stay independent.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	err = db.AutoMigrate(
		&models.RecurringContractModel{},
		&models.ForecastEntryModel{},
		&models.AmortizationPlanModel{},
		&models.InstallmentModel{},
		&models.TransactionModel{},
		&models.IncomeSplitModel{},
		&models.SettingModel{},
	)
	require.NoError(t, err, "Failed to migrate test schema")

	return &TestDB{DB: db}
}
