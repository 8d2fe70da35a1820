package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/bizness/internal/validation"
)

// Business is a workspace owned by one user.
type Business struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Logo      string `json:"logo,omitempty"`
	CreatedAt string `json:"created_at"`
}

const businessColumns = `id, owner_id, name, category, logo, created_at`

func scanBusiness(row interface{ Scan(...any) error }) (Business, error) {
	var b Business
	err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Category, &b.Logo, &b.CreatedAt)
	return b, err
}

// CreateBusiness validates in and stores a new business for ownerID.
func (s *Store) CreateBusiness(ctx context.Context, ownerID string, in validation.BusinessInput) (Business, error) {
	in, err := validation.ValidateBusiness(in)
	if err != nil {
		return Business{}, rejected("business", err)
	}

	id := s.newID()
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO businesses (id, owner_id, name, category, logo)
		VALUES (?, ?, ?, ?, ?)
	`, id, ownerID, in.Name, in.Category, in.Logo); err != nil {
		return Business{}, fmt.Errorf("insert business: %w", err)
	}

	return s.GetBusiness(ctx, id)
}

// GetBusiness returns the business with id or ErrNotFound.
func (s *Store) GetBusiness(ctx context.Context, id string) (Business, error) {
	b, err := scanBusiness(s.db.QueryRowContext(ctx, `
		SELECT `+businessColumns+`
		FROM businesses
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Business{}, ErrNotFound
	}
	if err != nil {
		return Business{}, fmt.Errorf("query business: %w", err)
	}
	return b, nil
}

// ListBusinesses returns the businesses owned by ownerID, oldest first.
// An empty ownerID lists every business.
func (s *Store) ListBusinesses(ctx context.Context, ownerID string) ([]Business, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+businessColumns+`
		FROM businesses
		WHERE (? = '' OR owner_id = ?)
		ORDER BY created_at, rowid
	`, ownerID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query businesses: %w", err)
	}
	defer rows.Close()

	businesses := make([]Business, 0)
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		businesses = append(businesses, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}

	return businesses, nil
}

// UpdateBusiness replaces the editable fields of a business.
func (s *Store) UpdateBusiness(ctx context.Context, id string, in validation.BusinessInput) (Business, error) {
	in, err := validation.ValidateBusiness(in)
	if err != nil {
		return Business{}, rejected("business", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE businesses
		SET
			name = ?,
			category = ?,
			logo = ?
		WHERE id = ?
	`, in.Name, in.Category, in.Logo, id)
	if err != nil {
		return Business{}, fmt.Errorf("update business: %w", err)
	}
	if err := affectedOne(result); err != nil {
		return Business{}, err
	}

	return s.GetBusiness(ctx, id)
}

// DeleteBusiness removes a business together with its products, files,
// transactions and scans, and clears it as anyone's current business.
func (s *Store) DeleteBusiness(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM businesses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	if err := affectedOne(result); err != nil {
		return err
	}

	for _, userID := range s.current.Keys() {
		if selected, ok := s.current.Peek(userID); ok && selected == id {
			s.current.Remove(userID)
		}
	}
	return nil
}

// SetCurrentBusiness selects the business a user is working in. Only the
// owner may select it.
func (s *Store) SetCurrentBusiness(ctx context.Context, userID, businessID string) (Business, error) {
	b, err := s.GetBusiness(ctx, businessID)
	if err != nil {
		return Business{}, err
	}
	if b.OwnerID != userID {
		return Business{}, ErrNotFound
	}

	s.current.Add(userID, b.ID)
	return b, nil
}

// CurrentBusiness returns the business selected by userID.
func (s *Store) CurrentBusiness(ctx context.Context, userID string) (Business, error) {
	id, ok := s.current.Get(userID)
	if !ok {
		return Business{}, ErrNoCurrentBusiness
	}

	b, err := s.GetBusiness(ctx, id)
	if errors.Is(err, ErrNotFound) {
		s.current.Remove(userID)
		return Business{}, ErrNoCurrentBusiness
	}
	return b, err
}

// ClearCurrentBusiness forgets the selection of userID.
func (s *Store) ClearCurrentBusiness(userID string) {
	s.current.Remove(userID)
}
