package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fiscalia/nfe-insights/internal/agent"
	"github.com/fiscalia/nfe-insights/internal/fiscal"
	"github.com/fiscalia/nfe-insights/internal/store"
)

type application struct {
	config    config
	store     store.Storage
	cfopTable fiscal.CfopTable
	agent     agent.Agent
	analysis  *analysisCache
}

type config struct {
	addr     string
	db       dbConfig
	agentURL string
	cfopFile string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello world!"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/summary", app.handleGetDashboardSummary)
			r.Get("/monthly", app.handleGetMonthlyReport)
			r.Get("/rankings", app.handleGetRankings)
			r.Get("/distributions", app.handleGetDistributions)
			r.Get("/state-flows", app.handleGetStateFlows)
			r.Get("/outliers", app.handleGetOutliers)
		})
		r.Route("/audit", func(r chi.Router) {
			r.Get("/", app.handleGetAuditReport)
		})
		r.Route("/analysis", func(r chi.Router) {
			r.Post("/refresh", app.handleRefreshAnalysis)
		})
		r.Route("/ingestion", func(r chi.Router) {
			r.Get("/history", app.handleGetIngestionHistory)
			r.Post("/", app.handleCreateIngestion)
			r.Patch("/{id}/status", app.handleUpdateIngestionStatus)
		})
		r.Route("/agent", func(r chi.Router) {
			r.Post("/ask", app.handleAskAgent)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	log.Printf("Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
