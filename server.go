package trainjatri

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router assembles the full HTTP surface.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(a.recoverer)
	r.Use(corsMiddleware)
	r.Use(a.instrument)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", a.handleHealth)
		r.Get("/stations", a.handleStations)
		r.Get("/stations/{stationName}/trains", a.handleStationTrains)
		r.Get("/trains/search", a.handleTrainSearch)
		r.Get("/trains/{trainNumber}/status", a.handleTrainStatus)
		r.Post("/trains/{trainNumber}/confirm", a.handleConfirm)
		r.Get("/trains/{trainNumber}/crowd-data", a.handleCrowdData)
		r.Get("/trains/{trainNumber}/summary", a.handleTrainSummary)
		r.Get("/analytics/delays", a.handleDelayAnalytics)
		r.Post("/admin/refresh-data", a.handleRefreshData)
		r.Get("/admin/system-status", a.handleSystemStatus)
		r.Get("/gtfs-rt/trip-updates", a.handleTripUpdates)
	})
	r.Handle("/metrics", a.Metrics.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})
	return r
}

// Serve warms the schedule snapshot and runs the HTTP server until ctx is
// canceled, then drains for up to 10 seconds.
func (a *App) Serve(ctx context.Context) error {
	status := a.Schedule.Refresh(false)
	a.Metrics.SchedulesLoaded.Set(float64(status.SchedulesCount))
	a.Metrics.StationsLoaded.Set(float64(status.StationsCount))
	log.Printf("loaded %d schedules, %d stations", status.SchedulesCount, status.StationsCount)

	addr := fmt.Sprintf("%s:%d", a.Cfg.Server.Host, a.Cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Printf("server shut down successfully")
	return nil
}

// recoverer turns handler panics into a 500 envelope instead of a dropped
// connection.
func (a *App) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s: %v", r.URL.Path, rec)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// instrument records request counts and latency per route pattern.
func (a *App) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		endpoint := chi.RouteContext(r.Context()).RoutePattern()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		a.Metrics.Requests.WithLabelValues(endpoint, strconv.Itoa(ww.Status())).Inc()
		a.Metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	})
}
