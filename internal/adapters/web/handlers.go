package web

import (
	"net/http"

	"github.com/RoshanKumar487/profitlens/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(Metrics)
	r.Use(CORS(allowedOrigins))

	// ── Public ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/api/companies", h.searchCompanies)

	// ── Protected API routes (401 JSON if unauthenticated) ───────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		// Image uploads: multipart bodies up to 10 MB, limit managed in the handler.
		r.Post("/api/extract/receipt", h.extractReceipt)
		r.Post("/api/extract/employees", h.extractEmployees)

		// All other protected endpoints: 1 MB body limit.
		r.Group(func(r chi.Router) {
			r.Use(RequestBodyLimit(1 << 20))

			r.Get("/api/employees", h.listEmployees)
			r.Post("/api/employees", h.addEmployee)
			r.Put("/api/employees/{id}", h.updateEmployee)

			r.Get("/api/invoices", h.listInvoices)
			r.Post("/api/invoices", h.createInvoice)
			r.Get("/api/invoices/{id}", h.getInvoice)
			r.Patch("/api/invoices/{number}/status", h.updateInvoiceStatus)

			r.Get("/api/expenses", h.listExpenses)
			r.Post("/api/expenses", h.addExpense)
			r.Delete("/api/expenses/most-recent", h.deleteMostRecentExpense)

			r.Get("/api/revenue", h.listRevenue)
			r.Post("/api/revenue", h.addRevenue)
			r.Put("/api/revenue/{id}", h.updateRevenue)
			r.Delete("/api/revenue/{id}", h.deleteRevenue)

			r.Get("/api/revenue-entries", h.listQuickRevenue)
			r.Post("/api/revenue-entries", h.addQuickRevenue)

			r.Get("/api/company-details", h.companyDetails)
			r.Post("/api/company-details", h.saveCompanyDetails)

			r.Get("/api/summary", h.financialSummary)
			r.Post("/api/chat", h.chatMessage)
			r.Post("/api/analyze/opportunities", h.analyzeOpportunities)

			r.Get("/api/access-requests", h.listAccessRequests)
			r.Post("/api/access-requests", h.createAccessRequest)
			r.Post("/api/access-requests/{id}/approve", h.approveAccessRequest)
			r.Post("/api/access-requests/{id}/reject", h.rejectAccessRequest)
		})
	})

	h.router = r
	return r
}

// health reports liveness. It touches no collaborators so it stays useful
// when the stores are down.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}
