package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a staff record scoped to a company.
type Employee struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Name        string          `json:"name"`
	NameLower   string          `json:"-"`
	Position    string          `json:"position"`
	Salary      decimal.Decimal `json:"salary"`
	Description *string         `json:"description,omitempty"`
	CreatedBy   *string         `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EmployeeInput holds the fields required to create or update an employee.
type EmployeeInput struct {
	Name        string
	Position    string
	Salary      decimal.Decimal
	Description string
	CreatedBy   string
}

// EmployeeService provides tenant-scoped employee operations.
// There is no delete path for employees.
type EmployeeService interface {
	// List returns all employees for a company, newest first.
	List(ctx context.Context, companyID string) ([]Employee, error)

	// Add creates an employee and returns its new id. The lowercase name
	// field used for prefix search is maintained on every write.
	Add(ctx context.Context, companyID string, input EmployeeInput) (string, error)

	// FindByName returns the employee with the exact given name, or nil when
	// no employee matches. Absence is a normal outcome, not an error.
	FindByName(ctx context.Context, companyID, name string) (*Employee, error)

	// Update replaces the mutable fields of an employee by id.
	Update(ctx context.Context, companyID, employeeID string, input EmployeeInput) error

	// SearchPrefix returns up to 10 employees whose name starts with q
	// (case-insensitive), ordered by the lowercase name field ascending.
	SearchPrefix(ctx context.Context, companyID, q string) ([]Employee, error)
}
