package store

import (
	"context"
	"fmt"
	"strings"
)

// UserSummary is a row of the admin user table.
type UserSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	JoinDate      string `json:"join_date"`
	BusinessCount int    `json:"business_count"`
}

// ListUserSummaries returns every user with the number of businesses they
// own. A non-empty query keeps users whose name or email contains it,
// ignoring case.
func (s *Store) ListUserSummaries(ctx context.Context, query string) ([]UserSummary, error) {
	query = strings.ToLower(strings.TrimSpace(query))

	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.email, u.role, u.created_at, COUNT(b.id)
		FROM users u
		LEFT JOIN businesses b ON b.owner_id = u.id
		WHERE (? = '' OR instr(lower(u.name), ?) > 0 OR instr(lower(u.email), ?) > 0)
		GROUP BY u.id
		ORDER BY u.created_at, u.email
	`, query, query, query)
	if err != nil {
		return nil, fmt.Errorf("query user summaries: %w", err)
	}
	defer rows.Close()

	users := make([]UserSummary, 0)
	for rows.Next() {
		var u UserSummary
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.JoinDate, &u.BusinessCount); err != nil {
			return nil, fmt.Errorf("scan user summary: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user summaries: %w", err)
	}

	return users, nil
}
