package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Simplici0/bizness/internal/validation"
)

// Scan is one stored receipt extraction. Accepted is false when the
// upstream extraction was unusable and the default document was stored.
type Scan struct {
	ID         string                 `json:"id"`
	BusinessID string                 `json:"business_id"`
	Document   validation.OCRDocument `json:"document"`
	Accepted   bool                   `json:"accepted"`
	CreatedAt  string                 `json:"created_at"`
}

// SaveScan appends doc to the scan history of businessID.
func (s *Store) SaveScan(ctx context.Context, businessID string, doc validation.OCRDocument, accepted bool) (Scan, error) {
	if err := s.requireBusiness(ctx, businessID); err != nil {
		return Scan{}, err
	}

	items, err := json.Marshal(doc.Items)
	if err != nil {
		return Scan{}, fmt.Errorf("encode scan items: %w", err)
	}

	id := s.newID()
	var createdAt string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO ocr_scans (id, business_id, document_id, date, vendor, items_json, total, accepted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at
	`, id, businessID, doc.ID, doc.Date, doc.Vendor, string(items), doc.Total, accepted).Scan(&createdAt)
	if err != nil {
		return Scan{}, fmt.Errorf("insert scan: %w", err)
	}

	return Scan{ID: id, BusinessID: businessID, Document: doc, Accepted: accepted, CreatedAt: createdAt}, nil
}

// ListScans returns the scan history of businessID, newest first.
func (s *Store) ListScans(ctx context.Context, businessID string) ([]Scan, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, business_id, document_id, date, vendor, items_json, total, accepted, created_at
		FROM ocr_scans
		WHERE business_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	defer rows.Close()

	scans := make([]Scan, 0)
	for rows.Next() {
		var (
			sc    Scan
			items string
		)
		if err := rows.Scan(
			&sc.ID,
			&sc.BusinessID,
			&sc.Document.ID,
			&sc.Document.Date,
			&sc.Document.Vendor,
			&items,
			&sc.Document.Total,
			&sc.Accepted,
			&sc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ocr scan: %w", err)
		}
		sc.Document.Items = []validation.OCRItem{}
		if err := json.Unmarshal([]byte(items), &sc.Document.Items); err != nil {
			return nil, fmt.Errorf("decode scan items: %w", err)
		}
		scans = append(scans, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scans: %w", err)
	}

	return scans, nil
}
