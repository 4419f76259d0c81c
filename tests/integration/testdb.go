// Package integration runs the store against a real PostgreSQL started with
// testcontainers. The schema comes from the embedded migrations.
package integration

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/infrastructure/migration"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is a migrated database in its own container
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB starts a fresh PostgreSQL container and applies every migration
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("store_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), SkipDefaultTransaction: true, TranslateError: true}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(10)

	m, err := migration.New(sqlDB, zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")

	tdb := &TestDB{DB: db, SqlDB: sqlDB, Container: container, DSN: dsn, t: t}
	t.Cleanup(tdb.Close)
	return tdb
}

// Close closes the connection and terminates the container
func (tdb *TestDB) Close() {
	if tdb.SqlDB != nil {
		_ = tdb.SqlDB.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			tdb.t.Logf("Warning: failed to terminate container: %v", err)
		}
	}
}

// CreateStudent inserts an ACTIVE student in grade
func (tdb *TestDB) CreateStudent(tenantID uuid.UUID, name, grade string, classroomID *uuid.UUID) uuid.UUID {
	tdb.t.Helper()
	id := uuid.New()
	err := tdb.DB.Exec(`
		INSERT INTO students (id, tenant_id, name, grade, classroom_id, status)
		VALUES (?, ?, ?, ?, ?, 'ACTIVE')
	`, id, tenantID, name, grade, classroomID).Error
	require.NoError(tdb.t, err, "Failed to create student")
	return id
}

// CreateActivePeriod opens a financial period covering the current year
func (tdb *TestDB) CreateActivePeriod(tenantID uuid.UUID) uuid.UUID {
	tdb.t.Helper()
	id := uuid.New()
	now := time.Now()
	start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	err := tdb.DB.Exec(`
		INSERT INTO financial_periods (id, tenant_id, name, start_date, end_date, is_active)
		VALUES (?, ?, ?, ?, ?, TRUE)
	`, id, tenantID, "FY", start, start.AddDate(1, 0, -1)).Error
	require.NoError(tdb.t, err, "Failed to create financial period")
	return id
}

// CountLedgerRows counts ledger transactions referencing orderID
func (tdb *TestDB) CountLedgerRows(tenantID, orderID uuid.UUID) int64 {
	tdb.t.Helper()
	var n int64
	err := tdb.DB.Table("ledger_transactions").
		Where("tenant_id = ? AND reference_id = ?", tenantID, orderID).
		Count(&n).Error
	require.NoError(tdb.t, err)
	return n
}

// FeeStatus returns the status of a fee
func (tdb *TestDB) FeeStatus(feeID uuid.UUID) string {
	tdb.t.Helper()
	var status string
	err := tdb.DB.Raw(`SELECT status FROM fees WHERE id = ?`, feeID).Scan(&status).Error
	require.NoError(tdb.t, err)
	return status
}
