package web

import (
	"net/http"

	"github.com/RoshanKumar487/profitlens/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// listRevenue handles GET /api/revenue.
func (h *Handler) listRevenue(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.Revenue().List(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []core.RevenueEntry{}
	}
	writeJSON(w, entries)
}

type revenueBody struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	Description string          `json:"description"`
}

// addRevenue handles POST /api/revenue.
// Body: { date?, amount, source, description? }
func (h *Handler) addRevenue(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var body revenueBody
	if !decodeJSON(w, r, &body) {
		return
	}
	if !body.Amount.IsPositive() {
		writeError(w, r, "amount must be positive", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	date, ok := parseDate(w, r, "date", body.Date, true)
	if !ok {
		return
	}

	claims := authFromContext(r.Context())
	id, err := h.svc.Revenue().Add(r.Context(), companyID, core.RevenueInput{
		Date:        date,
		Amount:      body.Amount,
		Source:      body.Source,
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

// updateRevenue handles PUT /api/revenue/{id}.
func (h *Handler) updateRevenue(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var body revenueBody
	if !decodeJSON(w, r, &body) {
		return
	}
	if !body.Amount.IsPositive() {
		writeError(w, r, "amount must be positive", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	date, ok := parseDate(w, r, "date", body.Date, true)
	if !ok {
		return
	}

	err := h.svc.Revenue().Update(r.Context(), companyID, chi.URLParam(r, "id"), core.RevenueInput{
		Date:        date,
		Amount:      body.Amount,
		Source:      body.Source,
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

// deleteRevenue handles DELETE /api/revenue/{id}.
func (h *Handler) deleteRevenue(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	err := h.svc.Revenue().Delete(r.Context(), companyID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}

	type response struct {
		Deleted bool `json:"deleted"`
	}
	writeJSON(w, response{Deleted: true})
}

// listQuickRevenue handles GET /api/revenue-entries. Only the five most
// recent entries from the secondary store are returned.
func (h *Handler) listQuickRevenue(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.QuickRevenue().Recent(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []core.QuickRevenueEntry{}
	}
	writeJSON(w, entries)
}

// addQuickRevenue handles POST /api/revenue-entries.
// Body: { amount, source?, note? }
func (h *Handler) addQuickRevenue(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var body struct {
		Amount decimal.Decimal `json:"amount"`
		Source string          `json:"source"`
		Note   string          `json:"note"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if !body.Amount.IsPositive() {
		writeError(w, r, "amount must be positive", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	id, err := h.svc.QuickRevenue().Add(r.Context(), companyID, body.Amount, body.Source, body.Note)
	if err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}

	type response struct {
		ID string `json:"id"`
	}
	writeJSONStatus(w, http.StatusCreated, response{ID: id})
}
