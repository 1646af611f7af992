package testutil

import (
	"database/sql"
	"testing"

	"github.com/avelichko/fabplan/internal/db"
)

// NewTestDB opens a migrated in-memory preference database that is
// torn down with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory preference db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}
