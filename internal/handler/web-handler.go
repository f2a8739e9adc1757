package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// StartWebServer runs the ops/admin HTTP server: health check, scan
// statistics, and the live scan feed. Blocks until ctx is canceled, then
// shuts down gracefully.
func (h *Handler) StartWebServer(ctx context.Context) {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	r.HandleFunc("/api/stats", h.adminAuth(h.handleStats)).Methods("GET")

	if h.feed != nil {
		r.HandleFunc("/ws/scans", h.adminAuth(h.feed.ServeWS)).Methods("GET")
	}

	port := h.cfg.Port
	if !strings.Contains(port, ":") {
		port = ":" + port
	}

	server := &http.Server{
		Addr:         port,
		Handler:      r,
		ReadTimeout:  h.cfg.ReadTimeout,
		WriteTimeout: h.cfg.WriteTimeout,
		IdleTimeout:  h.cfg.IdleTimeout,
	}

	h.logger.Info("Starting admin web server", zap.String("port", port))
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Fatal("Failed to start web server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	h.logger.Info("Shutting down web server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		h.logger.Error("Server shutdown error", zap.Error(err))
	}
}

// adminAuth gates an endpoint behind the ADMIN_TOKEN config value. With
// no token configured the endpoints stay closed.
func (h *Handler) adminAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.cfg.AdminToken == "" || r.Header.Get("X-Admin-Token") != h.cfg.AdminToken {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total_scans": h.counter.Total(),
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}
