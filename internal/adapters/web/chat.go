package web

import (
	"net/http"

	"github.com/RoshanKumar487/profitlens/internal/ai"

	"github.com/shopspring/decimal"
)

// chatMessage handles POST /api/chat.
// Body: { messages: [{role, content}] }, the full conversation so far; the
// server keeps no chat state between requests.
func (h *Handler) chatMessage(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var body struct {
		Messages []ai.ChatMessage `json:"messages"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if len(body.Messages) == 0 {
		writeError(w, r, "messages is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	for _, m := range body.Messages {
		if m.Role != ai.RoleUser && m.Role != ai.RoleAssistant {
			writeError(w, r, "invalid message role: "+m.Role, "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	reply, err := h.svc.Chat(r.Context(), claims.CompanyID, body.Messages)
	if err != nil {
		observeAssistantTurn("error")
		writeError(w, r, "could not process request", "ASSISTANT_ERROR", http.StatusBadGateway)
		return
	}
	observeAssistantTurn("ok")

	type response struct {
		Reply string `json:"reply"`
	}
	writeJSON(w, response{Reply: reply})
}

// financialSummary handles GET /api/summary. Totals plus the qualitative
// opportunities analysis, in the tenant's currency.
func (h *Handler) financialSummary(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	result, err := h.svc.GenerateFinancialSummary(r.Context(), companyID)
	if err != nil {
		writeError(w, r, "could not process request", "ASSISTANT_ERROR", http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}

// analyzeOpportunities handles POST /api/analyze/opportunities.
// Body: { total_revenue, total_expenses, additional_context? }
func (h *Handler) analyzeOpportunities(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireTenant(w, r); !ok {
		return
	}

	var body struct {
		TotalRevenue      decimal.Decimal `json:"total_revenue"`
		TotalExpenses     decimal.Decimal `json:"total_expenses"`
		AdditionalContext string          `json:"additional_context"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.TotalRevenue.IsNegative() || body.TotalExpenses.IsNegative() {
		writeError(w, r, "totals must not be negative", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	analysis, err := h.svc.AnalyzeOpportunities(r.Context(), body.TotalRevenue, body.TotalExpenses, body.AdditionalContext)
	if err != nil {
		writeError(w, r, "could not process request", "ASSISTANT_ERROR", http.StatusBadGateway)
		return
	}
	writeJSON(w, analysis)
}
