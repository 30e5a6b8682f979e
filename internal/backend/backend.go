// Package backend provides the two query executors the comparison harness
// dispatches to: a MongoDB executor that consumes a translated query, and
// a relational executor that runs the untouched SQL string over
// database/sql (Postgres via the pgx stdlib driver, or SQLite for embedded
// runs).
//
// Executors own their connections and measure their own query latency, so
// a report compares backend time rather than harness overhead. They are
// safe for concurrent use; cancellation and timeouts come from the caller
// through the context.
package backend

import (
	"context"
	"time"

	"github.com/ranfysvalle02/bridgebase/internal/translate"
)

// Request carries one query to an executor. The relational side uses the
// raw SQL only; the document side uses the translation only.
type Request struct {
	SQL         string
	Translation *translate.Translation
}

// Result is one backend's answer: the rows it returned and how long the
// query took on that backend, excluding translation and dispatch.
type Result struct {
	Backend string           `json:"backend"`
	Rows    []map[string]any `json:"rows,omitempty"`
	Count   int              `json:"count"`
	Elapsed time.Duration    `json:"elapsed"`
}

// Executor runs a query against one backing store.
type Executor interface {
	// Name identifies the backend in reports and logs.
	Name() string

	// Run executes the request and returns rows with timing. The context
	// bounds the whole call; implementations must return promptly on
	// cancellation.
	Run(ctx context.Context, req Request) (*Result, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend's connections.
	Close(ctx context.Context) error
}
