package harness

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ranfysvalle02/bridgebase/internal/backend"
	"github.com/ranfysvalle02/bridgebase/internal/translate"
)

// Runner dispatches one query to both backends and assembles a Report.
type Runner struct {
	// Document runs the translated query; Relational runs the raw SQL.
	Document   backend.Executor
	Relational backend.Executor

	// Timeout bounds each backend call independently. Zero means no
	// per-backend deadline beyond the caller's context.
	Timeout time.Duration

	// IncludeRows copies row data into the report. Off by default: the
	// experiment compares counts and timings, and row payloads can be
	// large.
	IncludeRows bool

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Compare translates the SQL once, then runs both backends concurrently
// and joins the outcomes. Translation failure fails the whole call; a
// backend failure or timeout does not: the other side still reports, and
// the failed side carries its status and error message.
func (r *Runner) Compare(ctx context.Context, sql string) (*Report, error) {
	runID := uuid.NewString()
	log := r.logger().With("run_id", runID)

	tr, err := translate.Translate(sql)
	if err != nil {
		log.Warn("translation failed", "error", err)
		return nil, err
	}
	log.Debug("translated", "collection", tr.Collection, "filter", tr.Filter)

	req := backend.Request{SQL: sql, Translation: tr}

	start := time.Now()
	var wg sync.WaitGroup
	outcomes := make([]BackendOutcome, 2)
	for i, exec := range []backend.Executor{r.Document, r.Relational} {
		wg.Add(1)
		go func(i int, exec backend.Executor) {
			defer wg.Done()
			outcomes[i] = r.runOne(ctx, exec, req)
		}(i, exec)
	}
	wg.Wait()
	total := time.Since(start)

	report := &Report{
		RunID:        runID,
		Query:        sql,
		Collection:   tr.Collection,
		Filter:       tr.Filter,
		Backends:     map[string]BackendOutcome{},
		TotalElapsed: total,
	}
	for _, outcome := range outcomes {
		report.Backends[outcome.Backend] = outcome
	}
	report.RowParity = rowParity(outcomes)

	log.Info("comparison complete",
		"query", sql,
		"total_us", total.Microseconds(),
		"parity", report.RowParity)
	return report, nil
}

// runOne executes a single backend under its own deadline and folds any
// failure into the outcome instead of propagating it.
func (r *Runner) runOne(ctx context.Context, exec backend.Executor, req backend.Request) BackendOutcome {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	res, err := exec.Run(ctx, req)
	if err != nil {
		status := StatusError
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			status = StatusTimeout
		}
		r.logger().Warn("backend failed", "backend", exec.Name(), "status", status, "error", err)
		return BackendOutcome{
			Backend: exec.Name(),
			Status:  status,
			Error:   err.Error(),
		}
	}

	outcome := BackendOutcome{
		Backend: res.Backend,
		Status:  StatusOK,
		Count:   res.Count,
		Elapsed: res.Elapsed,
	}
	if r.IncludeRows {
		outcome.Rows = res.Rows
	}
	return outcome
}

// rowParity holds when both backends answered and agree on row count.
func rowParity(outcomes []BackendOutcome) bool {
	if len(outcomes) != 2 {
		return false
	}
	a, b := outcomes[0], outcomes[1]
	return a.Status == StatusOK && b.Status == StatusOK && a.Count == b.Count
}
