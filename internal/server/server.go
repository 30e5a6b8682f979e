// Package server exposes bridgebase over HTTP: translation, dual-backend
// comparison, health, and data inspection. It is a thin collaborator over
// the translate and harness packages; no query semantics live here.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ranfysvalle02/bridgebase/internal/backend"
	"github.com/ranfysvalle02/bridgebase/internal/docfilter"
	"github.com/ranfysvalle02/bridgebase/internal/harness"
	"github.com/ranfysvalle02/bridgebase/internal/sqlparse"
	"github.com/ranfysvalle02/bridgebase/internal/translate"
)

// inspectSampleLimit caps documents returned per collection by /inspect.
const inspectSampleLimit = 50

// Inspector lists collections with sample documents. backend.Mongo
// satisfies it; tests substitute a fake.
type Inspector interface {
	Inspect(ctx context.Context, sampleLimit int64) (map[string][]map[string]any, error)
}

// Server wires the HTTP routes to the harness and backends.
type Server struct {
	Runner *harness.Runner

	// Inspector backs /inspect; when nil the endpoint reports 503.
	Inspector Inspector

	Logger *slog.Logger
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/inspect", s.handleInspect)
	r.Get("/speedtest", s.handleSpeedtest)
	r.Post("/translate", s.handleTranslate)

	return r
}

// Serve runs the HTTP server until the context is cancelled, then shuts
// down gracefully with a short drain window.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger().Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the id the logging middleware assigned to this
// request, or "" outside a server context.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestLogger tags each request with a UUID, exposed through the context
// and the X-Request-Id header so handler logs and clients can correlate
// with the middleware's debug line.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, reqID)
		w.Header().Set("X-Request-Id", reqID)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		s.logger().Debug("request",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed_us", time.Since(start).Microseconds())
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true
	for _, exec := range []backend.Executor{s.Runner.Document, s.Runner.Relational} {
		if err := exec.Ping(ctx); err != nil {
			checks[exec.Name()] = err.Error()
			healthy = false
		} else {
			checks[exec.Name()] = "ok"
		}
	}

	status := http.StatusOK
	body := map[string]any{"status": "ok", "backends": checks}
	if !healthy {
		status = http.StatusServiceUnavailable
		body["status"] = "error"
	}
	writeJSON(w, status, body)
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if s.Inspector == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "inspection unavailable"})
		return
	}
	data, err := s.Inspector.Inspect(r.Context(), inspectSampleLimit)
	if err != nil {
		s.logger().Error("inspect failed", "request_id", RequestID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("inspect", err))
		return
	}

	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	writeJSON(w, http.StatusOK, map[string]any{"collections": names, "data": data})
}

// handleSpeedtest is the experiment's main endpoint: run the query through
// both backends and report counts and timings side by side.
func (s *Server) handleSpeedtest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "no SQL query provided"})
		return
	}

	report, err := s.Runner.Compare(r.Context(), query)
	if err != nil {
		writeTranslationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, speedtestBody(report))
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "body must be {\"query\": \"SELECT ...\"}"})
		return
	}

	tr, err := translate.Translate(req.Query)
	if err != nil {
		writeTranslationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

// speedtestBody shapes the report like the original endpoint: per-backend
// counts and timings plus the total wall time of the parallel run.
func speedtestBody(report *harness.Report) map[string]any {
	backends := make(map[string]any, len(report.Backends))
	for name, outcome := range report.Backends {
		entry := map[string]any{
			"status":          outcome.Status,
			"count":           outcome.Count,
			"elapsed_seconds": outcome.Elapsed.Seconds(),
		}
		if outcome.Error != "" {
			entry["error"] = outcome.Error
		}
		backends[name] = entry
	}
	return map[string]any{
		"run_id":                report.RunID,
		"query":                 report.Query,
		"filter":                report.Filter,
		"backends":              backends,
		"total_parallel_seconds": report.TotalElapsed.Seconds(),
		"row_parity":            report.RowParity,
	}
}

// writeTranslationError maps translator failures onto 400s with the error
// taxonomy exposed: syntax errors carry their offset, unsupported features
// their name. Anything else is a 500.
func writeTranslationError(w http.ResponseWriter, err error) {
	var se *sqlparse.SyntaxError
	if errors.As(err, &se) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  se.Message,
			"kind":   "syntax",
			"offset": se.Offset,
		})
		return
	}
	var ue *sqlparse.UnsupportedError
	if errors.As(err, &ue) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "unsupported feature: " + ue.Feature,
			"kind":    "unsupported",
			"feature": ue.Feature,
			"offset":  ue.Offset,
		})
		return
	}
	// Render invariant violations and anything else unexpected are bugs
	// in the translator, not bad input.
	kind := "internal"
	if docfilter.IsInvariantError(err) {
		kind = "invariant"
	}
	writeJSON(w, http.StatusInternalServerError, errorBody(kind, err))
}

func errorBody(kind string, err error) map[string]any {
	return map[string]any{"error": err.Error(), "kind": kind}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
