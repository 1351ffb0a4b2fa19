package web

import (
	"net/http"
	"time"

	"github.com/RoshanKumar487/profitlens/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// listInvoices handles GET /api/invoices. ?status= filters to one status.
func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !core.ValidInvoiceStatus(status) {
		writeError(w, r, "invalid invoice status: "+status, "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	invoices, err := h.svc.Invoices().List(r.Context(), companyID, status)
	if err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}
	if invoices == nil {
		invoices = []core.Invoice{}
	}
	writeJSON(w, invoices)
}

// createInvoice handles POST /api/invoices.
// Body: { invoice_number, client_name, client_email?, client_address?,
//         items: [{description, quantity, unit_price}], discount?, tax?,
//         status?, issued_date, due_date? }
func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var body struct {
		InvoiceNumber string             `json:"invoice_number"`
		ClientName    string             `json:"client_name"`
		ClientEmail   string             `json:"client_email"`
		ClientAddress string             `json:"client_address"`
		Items         []core.InvoiceItem `json:"items"`
		Discount      decimal.Decimal    `json:"discount"`
		Tax           decimal.Decimal    `json:"tax"`
		Status        string             `json:"status"`
		IssuedDate    string             `json:"issued_date"`
		DueDate       string             `json:"due_date"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.InvoiceNumber == "" {
		writeError(w, r, "invoice_number is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.ClientName == "" {
		writeError(w, r, "client_name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if len(body.Items) == 0 {
		writeError(w, r, "at least one line item is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.Status != "" && !core.ValidInvoiceStatus(body.Status) {
		writeError(w, r, "invalid invoice status: "+body.Status, "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	issued, ok := parseDate(w, r, "issued_date", body.IssuedDate, true)
	if !ok {
		return
	}
	var due *time.Time
	if body.DueDate != "" {
		d, ok := parseDate(w, r, "due_date", body.DueDate, false)
		if !ok {
			return
		}
		due = &d
	}

	id, err := h.svc.Invoices().Create(r.Context(), companyID, core.InvoiceInput{
		InvoiceNumber: body.InvoiceNumber,
		ClientName:    body.ClientName,
		ClientEmail:   body.ClientEmail,
		ClientAddress: body.ClientAddress,
		Items:         body.Items,
		Discount:      body.Discount,
		Tax:           body.Tax,
		Status:        core.InvoiceStatus(body.Status),
		IssuedDate:    issued,
		DueDate:       due,
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

// getInvoice handles GET /api/invoices/{id}.
func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	inv, err := h.svc.Invoices().Get(r.Context(), companyID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, inv)
}

// updateInvoiceStatus handles PATCH /api/invoices/{number}/status.
// Body: { status }
func (h *Handler) updateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}
	number := chi.URLParam(r, "number")

	var body struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if !core.ValidInvoiceStatus(body.Status) {
		writeError(w, r, "invalid invoice status: "+body.Status, "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	updated, err := h.svc.Invoices().UpdateStatusByNumber(r.Context(), companyID, number, core.InvoiceStatus(body.Status))
	if err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}
	if !updated {
		writeError(w, r, "invoice "+number+" not found", "NOT_FOUND", http.StatusNotFound)
		return
	}

	type response struct {
		Updated bool `json:"updated"`
	}
	writeJSON(w, response{Updated: true})
}

// parseDate parses a YYYY-MM-DD body field. When defaultToday is set an empty
// value resolves to today's UTC date instead of a validation error.
func parseDate(w http.ResponseWriter, r *http.Request, field, value string, defaultToday bool) (time.Time, bool) {
	if value == "" {
		if defaultToday {
			return time.Now().UTC().Truncate(24 * time.Hour), true
		}
		writeError(w, r, field+" is required", "BAD_REQUEST", http.StatusBadRequest)
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		writeError(w, r, field+" must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return time.Time{}, false
	}
	return t, true
}
