// Package store persists businesses and everything that belongs to them.
// It is the single state container the HTTP shell reads and mutates; the
// pricing engine never depends on it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Simplici0/bizness/internal/metrics"
	"github.com/Simplici0/bizness/internal/validation"
)

var (
	// ErrNotFound is returned when a record does not exist or is not visible
	// to the caller.
	ErrNotFound = errors.New("store: not found")

	// ErrNoCurrentBusiness is returned when a user has not picked a business.
	ErrNoCurrentBusiness = errors.New("store: no current business selected")
)

// currentCacheSize bounds how many users' current-business selections are
// remembered.
const currentCacheSize = 4096

// Store is backed by SQLite. Selections of the current business are kept
// in memory per user.
type Store struct {
	db      *sql.DB
	current *lru.Cache[string, string]
	newID   func() string
}

// New wraps an open, migrated database.
func New(db *sql.DB) (*Store, error) {
	current, err := lru.New[string, string](currentCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create current business cache: %w", err)
	}
	return &Store{db: db, current: current, newID: uuid.NewString}, nil
}

// DB exposes the underlying handle for packages that share the schema.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (s *Store) requireBusiness(ctx context.Context, businessID string) error {
	ok, err := s.exists(ctx, `SELECT EXISTS(SELECT 1 FROM businesses WHERE id = ?)`, businessID)
	if err != nil {
		return fmt.Errorf("check business existence: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// rejected records a validation failure for kind and passes err through.
func rejected(kind string, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		metrics.ValidationRejections.WithLabelValues(kind).Inc()
	}
	return err
}

func affectedOne(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
