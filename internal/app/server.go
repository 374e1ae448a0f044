package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Handler returns the HTTP handler of the listing server.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/parameters", a.parametersHandler)
	return mux
}

// healthHandler logs the request and reports that the server is up.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// parametersHandler lists the user interface parameters with their current values.
func (a *App) parametersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rep, err := a.buildReport()
	if err != nil {
		a.logger.Error("Failed to build parameter listing.", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := writeJSON(w, rep); err != nil {
		a.logger.Error("Failed to write parameter listing.", "error", err)
	}
}

// serve runs the listing server until ctx is cancelled.
func (a *App) serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", a.config.HTTPPort)
	a.httpServer = &http.Server{
		Addr:    addr,
		Handler: a.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Parameter server starting.", "address", fmt.Sprintf("http://localhost%s/parameters", addr))
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var watchers sync.WaitGroup
	defer watchers.Wait()
	ctx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if a.config.Watch {
		watchers.Add(1)
		go func() {
			defer watchers.Done()
			if err := a.watch(ctx); err != nil {
				a.logger.Error("Parameter watcher stopped.", "error", err)
			}
		}()
	}

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("parameter server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("Shutting down parameter server...")
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Parameter server shutdown failed.", "error", err)
		return err
	}
	a.logger.Debug("Parameter server shut down gracefully.")
	return nil
}
