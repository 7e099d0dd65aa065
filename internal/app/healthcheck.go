package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/scenebus/internal/binding"
	"github.com/vk/scenebus/internal/inspect"
)

// Handler returns the HTTP surface of the application: liveness, the live
// binding table, the declaration listing of the live graph and metrics.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("GET /bindings", a.bindingsHandler)
	mux.HandleFunc("GET /bindings/{id}", a.bindingHandler)
	mux.HandleFunc("GET /inspect", a.inspectHandler)
	mux.Handle("GET /metrics", a.metrics.Handler())
	return mux
}

// healthHandler reports liveness.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) bindingsHandler(w http.ResponseWriter, r *http.Request) {
	views := a.coordinator.Snapshot()
	if views == nil {
		views = []binding.EventView{}
	}
	a.writeJSON(w, http.StatusOK, views)
}

func (a *App) bindingHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	view, ok := a.coordinator.Lookup(id)
	if !ok {
		a.writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("no live event %q", id)})
		return
	}
	a.writeJSON(w, http.StatusOK, view)
}

func (a *App) inspectHandler(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, inspect.Scan(a.graph.Objects()))
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("Failed to encode response.", "error", err)
	}
}

// serveHealthcheck runs the HTTP server until ctx is done, then shuts it down.
func (a *App) serveHealthcheck(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", a.config.HealthcheckPort)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("health check server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.logger.Info("🩺 Shutting down health check server...")
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Health check server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("Health check server shut down gracefully.")
	return nil
}
