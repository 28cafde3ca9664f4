/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the web frontend

ROUTE GROUPS:
  /api/calculators/*   Projection engine
  /api/progress/*      Progress aggregation service
  /api/budget/*        Budget analytics
  /api/market/*        Market-data proxy
  /api/chat            LLM chat backend
  /api/health          Liveness probe

SECURITY NOTE:
  No authentication middleware. All endpoints are public; the service
  tracks a single user profile per deployment.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		// Calculator routes
		r.Route("/calculators", func(r chi.Router) {
			r.Get("/loan/types", h.ListLoanTypes)
			r.Post("/compound", h.ComputeCompound)
			r.Post("/loan", h.ComputeLoan)
			r.Post("/loan/schedule", h.ComputeLoanSchedule)
			r.Post("/retirement", h.ComputeRetirement)
		})

		// Progress routes
		r.Route("/progress", func(r chi.Router) {
			r.Get("/", h.GetAllProgress)
			r.Delete("/", h.ResetAllProgress)
			r.Get("/export", h.ExportProgress)
			r.Post("/import", h.ImportProgress)

			r.Route("/modules/{id}", func(r chi.Router) {
				r.Get("/", h.GetModuleProgress)
				r.Delete("/", h.ResetModuleProgress)
				r.Post("/access", h.RecordModuleAccess)
				r.Post("/questions", h.RecordQuestionAsked)
				r.Post("/time", h.RecordTimeSpent)
				r.Put("/sections/{sectionId}", h.MarkSectionCompleted)
				r.Delete("/sections/{sectionId}", h.MarkSectionIncomplete)
			})
		})

		// Budget routes
		r.Route("/budget", func(r chi.Router) {
			r.Get("/", h.GetBudget)
			r.Get("/insights", h.GetBudgetInsights)
			r.Put("/categories/{id}", h.UpdateBudgetCategory)
		})

		// Market routes
		r.Route("/market", func(r chi.Router) {
			r.Get("/", h.GetMarketOverview)
			r.Get("/quote", h.GetStockQuote)
			r.Get("/movers", h.GetTopMovers)
			r.Get("/news", h.GetMarketNews)
			r.Get("/sectors", h.GetSectorPerformance)
			r.Get("/indicators", h.GetEconomicIndicators)
		})

		// Chat routes
		r.Get("/chat/modules", h.ListChatModules)
		r.Post("/chat", h.Chat)
		r.Post("/explain", h.ExplainTopic)
	})

	return r
}
