package web

import (
	"net/http"

	"github.com/RoshanKumar487/profitlens/internal/core"

	"github.com/shopspring/decimal"
)

// listExpenses handles GET /api/expenses.
func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	expenses, err := h.svc.Expenses().List(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	writeJSON(w, expenses)
}

// addExpense handles POST /api/expenses.
// Body: { date?, amount, category, vendor?, description? }
func (h *Handler) addExpense(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var body struct {
		Date        string          `json:"date"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Vendor      string          `json:"vendor"`
		Description string          `json:"description"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if !body.Amount.IsPositive() {
		writeError(w, r, "amount must be positive", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if !core.ValidExpenseCategory(body.Category) {
		writeError(w, r, "invalid expense category: "+body.Category, "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	date, ok := parseDate(w, r, "date", body.Date, true)
	if !ok {
		return
	}

	claims := authFromContext(r.Context())
	id, err := h.svc.Expenses().Add(r.Context(), companyID, core.ExpenseInput{
		Date:        date,
		Amount:      body.Amount,
		Category:    body.Category,
		Vendor:      body.Vendor,
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

// deleteMostRecentExpense handles DELETE /api/expenses/most-recent.
func (h *Handler) deleteMostRecentExpense(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	deleted, err := h.svc.Expenses().DeleteMostRecent(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}
	if !deleted {
		writeError(w, r, "no expenses to delete", "NOT_FOUND", http.StatusNotFound)
		return
	}

	type response struct {
		Deleted bool `json:"deleted"`
	}
	writeJSON(w, response{Deleted: true})
}
