package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Simplici0/bizness/internal/pricing"
	"github.com/Simplici0/bizness/internal/validation"
)

// Product is a catalog entry of a business. MarginPercent is derived from
// HPP and SellingPrice and never stored.
type Product struct {
	ID            string  `json:"id"`
	BusinessID    string  `json:"business_id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	HPP           float64 `json:"hpp"`
	SellingPrice  float64 `json:"selling_price"`
	Stock         int64   `json:"stock"`
	MarginPercent float64 `json:"margin_percent"`
}

const productColumns = `id, business_id, name, category, hpp, selling_price, stock`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	if err := row.Scan(&p.ID, &p.BusinessID, &p.Name, &p.Category, &p.HPP, &p.SellingPrice, &p.Stock); err != nil {
		return Product{}, err
	}
	p.MarginPercent = pricing.MarginPercent(p.HPP, p.SellingPrice)
	return p, nil
}

// CreateProduct validates in and adds it to the catalog of businessID.
// Invalid input is rejected with validation.Errors.
func (s *Store) CreateProduct(ctx context.Context, businessID string, in validation.ProductInput) (Product, error) {
	p, err := validation.ValidateProduct(in)
	if err != nil {
		return Product{}, rejected("product", err)
	}
	if err := s.requireBusiness(ctx, businessID); err != nil {
		return Product{}, err
	}

	id := s.newID()
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, business_id, name, category, hpp, selling_price, stock)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, businessID, p.Name, p.Category, p.HPP, p.SellingPrice, p.Stock); err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}

	return s.GetProduct(ctx, businessID, id)
}

// GetProduct returns one product of businessID.
func (s *Store) GetProduct(ctx context.Context, businessID, id string) (Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE business_id = ? AND id = ?
	`, businessID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

// ListProducts returns the catalog of businessID in insertion order. A
// non-empty query keeps products whose name or category contains it,
// ignoring case.
func (s *Store) ListProducts(ctx context.Context, businessID, query string) ([]Product, error) {
	query = strings.ToLower(strings.TrimSpace(query))

	// Literal substring match: % and _ are not wildcards.
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE business_id = ?
			AND (? = '' OR instr(lower(name), ?) > 0 OR instr(lower(category), ?) > 0)
		ORDER BY rowid
	`, businessID, query, query, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

// UpdateProduct validates in and replaces the product fields.
func (s *Store) UpdateProduct(ctx context.Context, businessID, id string, in validation.ProductInput) (Product, error) {
	p, err := validation.ValidateProduct(in)
	if err != nil {
		return Product{}, rejected("product", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET
			name = ?,
			category = ?,
			hpp = ?,
			selling_price = ?,
			stock = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE business_id = ? AND id = ?
	`, p.Name, p.Category, p.HPP, p.SellingPrice, p.Stock, businessID, id)
	if err != nil {
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	if err := affectedOne(result); err != nil {
		return Product{}, err
	}

	return s.GetProduct(ctx, businessID, id)
}

// DeleteProduct removes one product of businessID.
func (s *Store) DeleteProduct(ctx context.Context, businessID, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE business_id = ? AND id = ?`, businessID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return affectedOne(result)
}
