package web

import (
	"net/http"

	"github.com/RoshanKumar487/profitlens/internal/core"

	"github.com/go-chi/chi/v5"
)

// searchCompanies handles GET /api/companies?q=. The endpoint is public so
// that new users can look up a business to request access to; it returns at
// most 10 matches.
func (h *Handler) searchCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.svc.Companies().SearchPrefix(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}
	if companies == nil {
		companies = []core.Company{}
	}
	writeJSON(w, companies)
}

// companyDetails handles GET /api/company-details.
func (h *Handler) companyDetails(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	company, err := h.svc.Companies().Get(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, company)
}

// saveCompanyDetails handles POST /api/company-details. A user without a
// company creates one and becomes its owner; a user with a company updates
// the profile in place.
func (h *Handler) saveCompanyDetails(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var body struct {
		Name               string `json:"name"`
		Country            string `json:"country"`
		Address            string `json:"address"`
		RegistrationNumber string `json:"registration_number"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	input := core.CompanyInput{
		Name:               body.Name,
		Country:            body.Country,
		Address:            body.Address,
		RegistrationNumber: body.RegistrationNumber,
	}

	if claims.CompanyID == "" {
		id, err := h.svc.Companies().Create(r.Context(), input)
		if err != nil {
			writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
			return
		}
		if err := h.svc.Users().AssignCompany(r.Context(), claims.UserID, id, "owner"); err != nil {
			writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
			return
		}
		type response struct {
			ID string `json:"id"`
		}
		writeJSONStatus(w, http.StatusCreated, response{ID: id})
		return
	}

	if err := h.svc.Companies().UpdateProfile(r.Context(), claims.CompanyID, input); err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}
	type response struct {
		ID string `json:"id"`
	}
	writeJSON(w, response{ID: claims.CompanyID})
}

// listAccessRequests handles GET /api/access-requests. Pending requests for
// the caller's company, newest first.
func (h *Handler) listAccessRequests(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	requests, err := h.svc.AccessRequests().ListPending(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}
	if requests == nil {
		requests = []core.AccessRequest{}
	}
	writeJSON(w, requests)
}

// createAccessRequest handles POST /api/access-requests. The caller asks to
// join an existing company; the company id comes from the body because the
// caller has no tenant yet.
func (h *Handler) createAccessRequest(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var body struct {
		CompanyID string `json:"company_id"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.CompanyID == "" {
		writeError(w, r, "company_id is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	id, err := h.svc.AccessRequests().Create(r.Context(), body.CompanyID, claims.UserID)
	if err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}

	type response struct {
		ID string `json:"id"`
	}
	writeJSONStatus(w, http.StatusCreated, response{ID: id})
}

// approveAccessRequest handles POST /api/access-requests/{id}/approve.
func (h *Handler) approveAccessRequest(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	if err := h.svc.AccessRequests().Approve(r.Context(), companyID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}

	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: string(core.AccessRequestApproved)})
}

// rejectAccessRequest handles POST /api/access-requests/{id}/reject.
func (h *Handler) rejectAccessRequest(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	if err := h.svc.AccessRequests().Reject(r.Context(), companyID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
		return
	}

	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: string(core.AccessRequestRejected)})
}
