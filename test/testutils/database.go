// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/nutrino/kitchen/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDatabase is a migrated in-memory catalog closed at test cleanup
type TestDatabase struct {
	GormDB *gorm.DB
	DB     *sql.DB
	t      *testing.T
}

// SetupTestDatabase opens an in-memory SQLite catalog with the schema applied
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	gormDB, err := sqlite.SetupDatabase("", logger.Silent, zap.NewNop())
	require.NoError(t, err, "failed to set up test database")

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)

	td := &TestDatabase{GormDB: gormDB, DB: sqlDB, t: t}
	t.Cleanup(td.Cleanup)
	return td
}

// CountRecords returns the row count of table
func (td *TestDatabase) CountRecords(table string) int {
	td.t.Helper()

	var count int
	err := td.DB.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
	require.NoError(td.t, err)
	return count
}

// TruncateAllTables empties the catalog tables
func (td *TestDatabase) TruncateAllTables() {
	td.t.Helper()

	_, err := td.DB.Exec("DELETE FROM ingredients")
	require.NoError(td.t, err)
}

// Cleanup closes the connection
func (td *TestDatabase) Cleanup() {
	if td.DB != nil {
		_ = td.DB.Close()
	}
}
