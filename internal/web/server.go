// Package web serves the HTTP API for the local companion UI.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

// NewServer creates and configures the HTTP server for the Fern API.
func NewServer(h *Handlers, bind string, port int) *http.Server {
	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /api/moods", h.HandleMoodList)
	mux.HandleFunc("POST /api/moods", h.HandleMoodLog)
	mux.HandleFunc("POST /api/moods/from-journal", h.HandleMoodFromJournal)
	mux.HandleFunc("GET /api/journals", h.HandleJournalList)
	mux.HandleFunc("GET /api/journal/{date}", h.HandleJournalGet)
	mux.HandleFunc("PUT /api/journal/{date}", h.HandleJournalWrite)
	mux.HandleFunc("GET /api/tasks", h.HandleTasks)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", h.HandleTaskToggle)
	mux.HandleFunc("GET /api/insights", h.HandleInsights)
	mux.HandleFunc("GET /api/suggestions", h.HandleSuggestions)
	mux.HandleFunc("POST /api/analyze", h.HandleAnalyze)
	mux.HandleFunc("GET /api/summary", h.HandleSummary)
	mux.HandleFunc("GET /journal/{date}/html", h.HandleJournalHTML)

	handler := securityHeaders(mux)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
// Pending progress saves are flushed before exit.
func Run(srv *http.Server, h *Handlers) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("Fern API running at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		h.FlushProgress()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
