package tenant

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type itemRow struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid"`
	Name     string
}

func (itemRow) TableName() string { return "store_catalog_items" }

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestScope(t *testing.T) {
	tenantID := uuid.New()

	t.Run("adds tenant filter", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "store_catalog_items" WHERE tenant_id = $1`)).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}).
				AddRow(uuid.New(), tenantID, "Ruler"))

		var rows []itemRow
		err := db.Scopes(Scope(context.Background(), tenantID)).Find(&rows).Error
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("accepts matching request tenant", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE tenant_id = $1`)).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

		ctx := logger.WithIdentity(context.Background(), tenantID.String(), "clerk")
		var rows []itemRow
		require.NoError(t, db.Scopes(Scope(ctx, tenantID)).Find(&rows).Error)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects mismatched request tenant", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		ctx := logger.WithIdentity(context.Background(), uuid.NewString(), "clerk")
		var rows []itemRow
		err := db.Scopes(Scope(ctx, tenantID)).Find(&rows).Error
		assert.ErrorIs(t, err, ErrTenantMismatch)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects nil tenant", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		var rows []itemRow
		err := db.Scopes(Scope(context.Background(), uuid.Nil)).Find(&rows).Error
		assert.ErrorIs(t, err, ErrTenantIDRequired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestScopeColumn_QualifiedColumn(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()
	tenantID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE o.tenant_id = $1`)).
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	var count int64
	err := db.Table("store_orders AS o").
		Scopes(ScopeColumn(context.Background(), "o.tenant_id", tenantID)).
		Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheck(t *testing.T) {
	tenantID := uuid.New()
	assert.NoError(t, Check(context.Background(), tenantID))
	assert.NoError(t, Check(logger.WithIdentity(context.Background(), tenantID.String(), ""), tenantID))
	assert.ErrorIs(t, Check(context.Background(), uuid.Nil), ErrTenantIDRequired)
	assert.ErrorIs(t, Check(logger.WithIdentity(context.Background(), "other", ""), tenantID), ErrTenantMismatch)
}
