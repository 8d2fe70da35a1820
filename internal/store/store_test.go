package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/bizness/internal/db"
	"github.com/Simplici0/bizness/internal/migrations"
	"github.com/Simplici0/bizness/internal/validation"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "store-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = migrations.Up(ctx, database)
	require.NoError(t, err)

	s, err := New(database)
	require.NoError(t, err)
	return s
}

func seedUser(t *testing.T, database *sql.DB, id, name, email string) {
	t.Helper()

	_, err := database.Exec(`
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES (?, ?, ?, 'x', 'user')
	`, id, name, email)
	require.NoError(t, err)
}

func seedBusiness(t *testing.T, s *Store, ownerID, name string) Business {
	t.Helper()

	b, err := s.CreateBusiness(context.Background(), ownerID, validation.BusinessInput{Name: name, Category: "Food & Beverage", Logo: "☕"})
	require.NoError(t, err)
	return b
}
