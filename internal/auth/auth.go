package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/bizness/internal/validation"
)

// Roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrMissingSecret      = errors.New("auth: session secret is empty")
)

// User is an authenticated account.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	JoinDate string `json:"join_date"`
}

// IsAdmin reports whether u may use the admin pages.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Service authenticates users against the users table and issues session
// cookies and bearer tokens.
type Service struct {
	db            *sql.DB
	sessionSecret []byte
	jwtSecret     []byte
	tokenTTL      time.Duration
	now           func() time.Time
}

// NewService returns a Service. An empty jwtSecret reuses sessionSecret; an
// empty sessionSecret is rejected with ErrMissingSecret.
func NewService(db *sql.DB, sessionSecret, jwtSecret string) (*Service, error) {
	if sessionSecret == "" {
		return nil, ErrMissingSecret
	}
	if jwtSecret == "" {
		jwtSecret = sessionSecret
	}
	return &Service{
		db:            db,
		sessionSecret: []byte(sessionSecret),
		jwtSecret:     []byte(jwtSecret),
		tokenTTL:      24 * time.Hour,
		now:           time.Now,
	}, nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

const userColumns = `id, name, email, role, created_at`

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.JoinDate)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user whose email and password match.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var (
		u            User
		passwordHash string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`, password_hash
		FROM users
		WHERE email = ?
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.JoinDate, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, fmt.Errorf("query user credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Register creates an account with role. Invalid input is rejected with
// validation.Errors.
func (s *Service) Register(ctx context.Context, in validation.Registration, role string) (User, error) {
	in, err := validation.ValidateRegistration(in)
	if err != nil {
		return User{}, err
	}
	if role != RoleAdmin {
		role = RoleUser
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, in.Email).Scan(&exists); err != nil {
		return User{}, fmt.Errorf("check user existence: %w", err)
	}
	if exists {
		return User{}, ErrEmailTaken
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES (?, ?, ?, ?, ?)
	`, id, in.Name, in.Email, hash, role); err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}

	return s.UserByID(ctx, id)
}

// UserByID loads a user.
func (s *Service) UserByID(ctx context.Context, id string) (User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}
