/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. httplog:    Structured request logging (slog, ECS schema)
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/employees/*       Employee management
  /api/punches           Punch recording
  /api/shifts            Shift scheduling
  /api/labor/*           Dashboard labor cost views
  /api/payroll/*         Pay runs (JSON and CSV)
  /api/tips/*            Tip splits, rebalancing, entries
  /api/manual-payments   Ad-hoc payments
  /api/checks/*          Check printing helpers

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a new router with all routes configured. The logger
// feeds the request-logging middleware; handlers stay logger-free.
func NewRouter(h *Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/punches", h.GetEmployeePunches)
		})

		r.Post("/punches", h.RecordPunch)
		r.Post("/shifts", h.CreateShift)
		r.Post("/manual-payments", h.RecordManualPayment)

		r.Route("/labor", func(r chi.Router) {
			r.Get("/actual", h.GetActualLaborCost)
			r.Get("/scheduled", h.GetScheduledLaborCost)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/period", h.GetPayrollPeriod)
			r.Get("/period.csv", h.GetPayrollPeriodCSV)
		})

		r.Route("/tips", func(r chi.Router) {
			r.Post("/entries", h.RecordTipEntry)
			r.Post("/split", h.SplitTips)
			r.Post("/rebalance", h.RebalanceTips)
		})

		r.Route("/checks", func(r chi.Router) {
			r.Get("/amount-in-words", h.GetAmountInWords)
		})
	})

	return r
}
