package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell-be/internal/database"
	"github.com/inkwell-app/inkwell-be/internal/models"
)

// newTestDB opens a migrated in-memory database. A single connection is
// shared so every query sees the same memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, username, email string) models.User {
	t.Helper()

	user, err := NewUserService(db).Register(username, email, "password123")
	require.NoError(t, err)
	return user
}
