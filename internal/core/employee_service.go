package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// prefixSentinel is the high Unicode sentinel used for lexicographic
// prefix-range queries: name_lower >= q AND name_lower <= q + sentinel.
const prefixSentinel = "\uf8ff"

const prefixSearchLimit = 10

type employeeService struct {
	pool *pgxpool.Pool
}

// NewEmployeeService constructs an EmployeeService backed by the document store.
func NewEmployeeService(pool *pgxpool.Pool) EmployeeService {
	return &employeeService{pool: pool}
}

const employeeColumns = `id, company_id, name, name_lower, position, salary, description, created_by, created_at, updated_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	e := &Employee{}
	err := row.Scan(&e.ID, &e.CompanyID, &e.Name, &e.NameLower, &e.Position,
		&e.Salary, &e.Description, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *employeeService) List(ctx context.Context, companyID string) ([]Employee, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE company_id = $1
		ORDER BY created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *employeeService) Add(ctx context.Context, companyID string, input EmployeeInput) (string, error) {
	if input.Name == "" {
		return "", fmt.Errorf("employee name is required")
	}

	id := uuid.NewString()
	var createdBy *string
	if input.CreatedBy != "" {
		createdBy = &input.CreatedBy
	}
	var description *string
	if input.Description != "" {
		description = &input.Description
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO employees (id, company_id, name, name_lower, position, salary, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`,
		id, companyID, input.Name, strings.ToLower(input.Name),
		input.Position, input.Salary, description, createdBy,
	)
	if err != nil {
		return "", fmt.Errorf("add employee %q: %w", input.Name, err)
	}
	return id, nil
}

func (s *employeeService) FindByName(ctx context.Context, companyID, name string) (*Employee, error) {
	e, err := scanEmployee(s.pool.QueryRow(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE company_id = $1 AND name = $2
		LIMIT 1`,
		companyID, name,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find employee %q: %w", name, err)
	}
	return e, nil
}

func (s *employeeService) Update(ctx context.Context, companyID, employeeID string, input EmployeeInput) error {
	var description *string
	if input.Description != "" {
		description = &input.Description
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE employees
		SET name = $3, name_lower = $4, position = $5, salary = $6, description = $7, updated_at = NOW()
		WHERE company_id = $1 AND id = $2`,
		companyID, employeeID, input.Name, strings.ToLower(input.Name),
		input.Position, input.Salary, description,
	)
	if err != nil {
		return fmt.Errorf("update employee %s: %w", employeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s not found", employeeID)
	}
	return nil
}

func (s *employeeService) SearchPrefix(ctx context.Context, companyID, q string) ([]Employee, error) {
	term := strings.ToLower(strings.TrimSpace(q))
	rows, err := s.pool.Query(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE company_id = $1 AND name_lower >= $2 AND name_lower <= $3
		ORDER BY name_lower ASC
		LIMIT $4`,
		companyID, term, term+prefixSentinel, prefixSearchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
