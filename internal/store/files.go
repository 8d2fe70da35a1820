package store

import (
	"context"
	"fmt"

	"github.com/Simplici0/bizness/internal/validation"
)

// File is one entry of a business file tree. Root entries have no parent.
type File struct {
	ID         string  `json:"id"`
	BusinessID string  `json:"business_id"`
	ParentID   *string `json:"parent_id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Size       *int64  `json:"size,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

const fileColumns = `id, business_id, parent_id, name, type, size, created_at`

// scanFile reads nullable parent_id and size into nil pointers.
func scanFile(row interface{ Scan(...any) error }) (File, error) {
	var f File
	err := row.Scan(&f.ID, &f.BusinessID, &f.ParentID, &f.Name, &f.Type, &f.Size, &f.CreatedAt)
	return f, err
}

// CreateFile adds a file or folder. A parent must be a folder of the same
// business.
func (s *Store) CreateFile(ctx context.Context, businessID string, in validation.FileInput) (File, error) {
	in, err := validation.ValidateFile(in)
	if err != nil {
		return File{}, rejected("file", err)
	}
	if err := s.requireBusiness(ctx, businessID); err != nil {
		return File{}, err
	}
	if in.ParentID != nil {
		ok, err := s.exists(ctx, `
			SELECT EXISTS(SELECT 1 FROM files WHERE id = ? AND business_id = ? AND type = 'folder')
		`, *in.ParentID, businessID)
		if err != nil {
			return File{}, fmt.Errorf("check parent folder: %w", err)
		}
		if !ok {
			return File{}, rejected("file", validation.Errors{{Field: "parent_id", Message: "Parent folder not found"}})
		}
	}

	id := s.newID()
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO files (id, business_id, parent_id, name, type, size)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, businessID, in.ParentID, in.Name, in.Type, in.Size); err != nil {
		return File{}, fmt.Errorf("insert file: %w", err)
	}

	f, err := scanFile(s.db.QueryRowContext(ctx, `
		SELECT `+fileColumns+`
		FROM files
		WHERE id = ?
	`, id))
	if err != nil {
		return File{}, fmt.Errorf("query file: %w", err)
	}
	return f, nil
}

// ListFiles returns the whole file tree of businessID, folders first.
func (s *Store) ListFiles(ctx context.Context, businessID string) ([]File, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+fileColumns+`
		FROM files
		WHERE business_id = ?
		ORDER BY type <> 'folder', created_at, rowid
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	files := make([]File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}

// DeleteFile removes an entry; children of a folder go with it.
func (s *Store) DeleteFile(ctx context.Context, businessID, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM files WHERE business_id = ? AND id = ?`, businessID, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return affectedOne(result)
}
