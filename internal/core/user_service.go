package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User links a verified identity to a tenant. The company id is an explicit
// stored mapping created at signup and looked up thereafter, never derived
// from the user id.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CompanyID *string   `json:"company_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserService provides identity-to-tenant mapping lookups.
type UserService interface {
	// Get returns a user by id.
	Get(ctx context.Context, userID string) (*User, error)

	// CompanyForUser returns the tenant id associated with a user, or empty
	// string when the user has no company. Absence is a normal outcome.
	CompanyForUser(ctx context.Context, userID string) (string, error)

	// Create inserts a user record and returns its id.
	Create(ctx context.Context, email, name, role string, companyID string) (string, error)

	// AssignCompany sets a user's company and role. Used when a user creates
	// their own business profile for the first time.
	AssignCompany(ctx context.Context, userID, companyID, role string) error
}

type userService struct {
	pool *pgxpool.Pool
}

// NewUserService constructs a UserService backed by the document store.
func NewUserService(pool *pgxpool.Pool) UserService {
	return &userService{pool: pool}
}

func (s *userService) Get(ctx context.Context, userID string) (*User, error) {
	u := &User{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, name, role, company_id, created_at
		FROM users
		WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CompanyID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("user %s not found: %w", userID, err)
	}
	return u, nil
}

func (s *userService) CompanyForUser(ctx context.Context, userID string) (string, error) {
	var companyID *string
	err := s.pool.QueryRow(ctx,
		`SELECT company_id FROM users WHERE id = $1`, userID,
	).Scan(&companyID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve company for user %s: %w", userID, err)
	}
	if companyID == nil {
		return "", nil
	}
	return *companyID, nil
}

func (s *userService) Create(ctx context.Context, email, name, role string, companyID string) (string, error) {
	id := uuid.NewString()
	var cid *string
	if companyID != "" {
		cid = &companyID
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, email, name, role, company_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`,
		id, email, name, role, cid,
	)
	if err != nil {
		return "", fmt.Errorf("create user %q: %w", email, err)
	}
	return id, nil
}

func (s *userService) AssignCompany(ctx context.Context, userID, companyID, role string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET company_id = $2, role = $3 WHERE id = $1`,
		userID, companyID, role,
	)
	if err != nil {
		return fmt.Errorf("assign company to user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", userID)
	}
	return nil
}
