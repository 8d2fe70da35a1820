package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Simplici0/bizness/internal/auth"
)

const (
	adminName = "Admin User"
	demoName  = "Sarah Johnson"
	demoEmail = "sarah@bizness.com"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
	// DemoPassword enables the demo account. Empty skips the demo data.
	DemoPassword  string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(ctx, tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := seedDemo(ctx, tx, cfg.DemoPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(ctx context.Context, tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var role string
	err := tx.QueryRowContext(ctx, `SELECT role FROM users WHERE email = ?`, email).Scan(&role)
	switch {
	case err == nil:
		if role == auth.RoleAdmin {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `UPDATE users SET role = ? WHERE email = ?`, auth.RoleAdmin, email); err != nil {
			return fmt.Errorf("promote admin user: %w", err)
		}
		stats.Updates++
		return nil
	case err != sql.ErrNoRows:
		return fmt.Errorf("check admin user existence: %w", err)
	}

	_, err = insertUser(ctx, tx, adminName, email, password, auth.RoleAdmin, "2024-01-15")
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func insertUser(ctx context.Context, tx *sql.Tx, name, email, password, role, joined string) (string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, name, email, hash, role, joined); err != nil {
		return "", err
	}
	return id, nil
}

func seedDemo(ctx context.Context, tx *sql.Tx, password string, stats *Stats) error {
	if password == "" {
		return nil
	}

	var ownerID string
	err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE email = ?`, demoEmail).Scan(&ownerID)
	switch {
	case err == sql.ErrNoRows:
		ownerID, err = insertUser(ctx, tx, demoName, demoEmail, password, auth.RoleUser, "2024-03-20")
		if err != nil {
			return fmt.Errorf("insert demo user: %w", err)
		}
		stats.Inserts++
	case err != nil:
		return fmt.Errorf("check demo user existence: %w", err)
	}

	for _, b := range demoBusinesses {
		if err := ensureBusiness(ctx, tx, ownerID, b, stats); err != nil {
			return err
		}
	}
	return nil
}

// ensureBusiness inserts b with all of its records unless the owner already
// has a business with the same name.
func ensureBusiness(ctx context.Context, tx *sql.Tx, ownerID string, b demoBusiness, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM businesses WHERE owner_id = ? AND name = ? LIMIT 1)
	`, ownerID, b.name).Scan(&exists); err != nil {
		return fmt.Errorf("check business %q existence: %w", b.name, err)
	}
	if exists {
		return nil
	}

	businessID := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO businesses (id, owner_id, name, category, logo, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, businessID, ownerID, b.name, b.category, b.logo, b.createdAt); err != nil {
		return fmt.Errorf("insert business %q: %w", b.name, err)
	}
	stats.Inserts++

	for _, p := range b.products {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, business_id, name, category, hpp, selling_price, stock)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), businessID, p.name, p.category, p.hpp, p.sellingPrice, p.stock); err != nil {
			return fmt.Errorf("insert product %q: %w", p.name, err)
		}
		stats.Inserts++
	}

	// Folders precede their children in the demo data.
	ids := make(map[string]string, len(b.files))
	for _, f := range b.files {
		id := uuid.NewString()
		ids[f.key] = id

		var parentID *string
		if f.parent != "" {
			pid, ok := ids[f.parent]
			if !ok {
				return fmt.Errorf("file %q: unknown parent %q", f.name, f.parent)
			}
			parentID = &pid
		}
		var size *int64
		if f.size > 0 {
			size = &f.size
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO files (id, business_id, parent_id, name, type, size, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, businessID, parentID, f.name, f.fileType, size, f.createdAt); err != nil {
			return fmt.Errorf("insert file %q: %w", f.name, err)
		}
		stats.Inserts++
	}

	for _, t := range b.transactions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (id, business_id, type, description, amount, date)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), businessID, t.kind, t.description, t.amount, t.date); err != nil {
			return fmt.Errorf("insert transaction %q: %w", t.description, err)
		}
		stats.Inserts++
	}

	return nil
}
