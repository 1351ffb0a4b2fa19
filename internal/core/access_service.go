package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccessRequest is a pending request linking a user to a tenant.
type AccessRequest struct {
	ID        string              `json:"id"`
	CompanyID string              `json:"company_id"`
	UserID    string              `json:"user_id"`
	Status    AccessRequestStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}

// AccessRequestService manages tenant membership requests. Approval mutates
// both the request and the user's role as one all-or-nothing write: a
// concurrent reader never observes one without the other.
type AccessRequestService interface {
	// Create records a pending access request.
	Create(ctx context.Context, companyID, userID string) (string, error)

	// ListPending returns pending requests for a company, newest first.
	ListPending(ctx context.Context, companyID string) ([]AccessRequest, error)

	// Approve atomically sets the request to approved and the user's role to
	// member with the company assignment.
	Approve(ctx context.Context, companyID, requestID string) error

	// Reject sets the request to rejected. The user record is untouched.
	Reject(ctx context.Context, companyID, requestID string) error
}

type accessRequestService struct {
	pool *pgxpool.Pool
}

// NewAccessRequestService constructs an AccessRequestService backed by the document store.
func NewAccessRequestService(pool *pgxpool.Pool) AccessRequestService {
	return &accessRequestService{pool: pool}
}

func (s *accessRequestService) Create(ctx context.Context, companyID, userID string) (string, error) {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO access_requests (id, company_id, user_id, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())`,
		id, companyID, userID, string(AccessRequestPending),
	)
	if err != nil {
		return "", fmt.Errorf("create access request: %w", err)
	}
	return id, nil
}

func (s *accessRequestService) ListPending(ctx context.Context, companyID string) ([]AccessRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, user_id, status, created_at
		FROM access_requests
		WHERE company_id = $1 AND status = $2
		ORDER BY created_at DESC`,
		companyID, string(AccessRequestPending),
	)
	if err != nil {
		return nil, fmt.Errorf("list access requests: %w", err)
	}
	defer rows.Close()

	var out []AccessRequest
	for rows.Next() {
		var r AccessRequest
		if err := rows.Scan(&r.ID, &r.CompanyID, &r.UserID, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan access request: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *accessRequestService) Approve(ctx context.Context, companyID, requestID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID string
	err = tx.QueryRow(ctx, `
		UPDATE access_requests SET status = $3
		WHERE company_id = $1 AND id = $2 AND status = $4
		RETURNING user_id`,
		companyID, requestID, string(AccessRequestApproved), string(AccessRequestPending),
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("access request %s not pending: %w", requestID, err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE users SET role = 'member', company_id = $2
		WHERE id = $1`,
		userID, companyID,
	)
	if err != nil {
		return fmt.Errorf("assign user %s to company: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", userID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit approval: %w", err)
	}
	return nil
}

func (s *accessRequestService) Reject(ctx context.Context, companyID, requestID string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE access_requests SET status = $3
		WHERE company_id = $1 AND id = $2 AND status = $4`,
		companyID, requestID, string(AccessRequestRejected), string(AccessRequestPending),
	)
	if err != nil {
		return fmt.Errorf("reject access request %s: %w", requestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("access request %s not pending", requestID)
	}
	return nil
}
