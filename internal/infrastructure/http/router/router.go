package router

import (
	"net/http"

	"invoice-antifraud/internal/interfaces/http/handler"
)

// Router holds all HTTP handlers
type Router struct {
	mux            *http.ServeMux
	invoiceHandler *handler.InvoiceHandler
	healthHandler  *handler.HealthHandler
}

// NewRouter creates a new router with all routes configured
func NewRouter(
	invoiceHandler *handler.InvoiceHandler,
	healthHandler *handler.HealthHandler,
) *Router {
	r := &Router{
		mux:            http.NewServeMux(),
		invoiceHandler: invoiceHandler,
		healthHandler:  healthHandler,
	}
	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// Health endpoints
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)
	r.mux.HandleFunc("GET /ready", r.healthHandler.Ready)
	r.mux.HandleFunc("GET /live", r.healthHandler.Live)

	// Metrics
	r.mux.Handle("GET /metrics", handler.MetricsHandler())

	// Invoice endpoints
	r.mux.HandleFunc("POST /api/v1/invoices", r.invoiceHandler.ProcessInvoice)
	r.mux.HandleFunc("GET /api/v1/invoices/{id}", r.invoiceHandler.GetInvoice)
	r.mux.HandleFunc("GET /api/v1/accounts/{id}/invoices", r.invoiceHandler.ListAccountInvoices)
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if req.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.mux.ServeHTTP(w, req)
}
