package web

import (
	"net/http"

	"github.com/RoshanKumar487/profitlens/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// listEmployees handles GET /api/employees. With ?q= it runs the prefix
// search (at most 10 results); without it, the full newest-first listing.
func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var (
		employees []core.Employee
		err       error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		employees, err = h.svc.Employees().SearchPrefix(r.Context(), companyID, q)
	} else {
		employees, err = h.svc.Employees().List(r.Context(), companyID)
	}
	if err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}
	if employees == nil {
		employees = []core.Employee{}
	}
	writeJSON(w, employees)
}

type employeeBody struct {
	Name        string          `json:"name"`
	Position    string          `json:"position"`
	Salary      decimal.Decimal `json:"salary"`
	Description string          `json:"description"`
}

// addEmployee handles POST /api/employees.
// Body: { name, position, salary, description? }
func (h *Handler) addEmployee(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var body employeeBody
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.Salary.IsNegative() {
		writeError(w, r, "salary must not be negative", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	claims := authFromContext(r.Context())
	id, err := h.svc.Employees().Add(r.Context(), companyID, core.EmployeeInput{
		Name:        body.Name,
		Position:    body.Position,
		Salary:      body.Salary,
		Description: body.Description,
		CreatedBy:   claims.UserID,
	})
	if err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}

	type response struct {
		ID string `json:"id"`
	}
	writeJSONStatus(w, http.StatusCreated, response{ID: id})
}

// updateEmployee handles PUT /api/employees/{id}.
func (h *Handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "id")

	var body employeeBody
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.Salary.IsNegative() {
		writeError(w, r, "salary must not be negative", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	err := h.svc.Employees().Update(r.Context(), companyID, employeeID, core.EmployeeInput{
		Name:        body.Name,
		Position:    body.Position,
		Salary:      body.Salary,
		Description: body.Description,
	})
	if err != nil {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}

	type response struct {
		Updated bool `json:"updated"`
	}
	writeJSON(w, response{Updated: true})
}
