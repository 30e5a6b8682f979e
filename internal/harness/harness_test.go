package harness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranfysvalle02/bridgebase/internal/backend"
)

// fakeExecutor is a scripted backend for harness tests: fixed rows, an
// optional error, and an optional delay to trip per-backend timeouts.
type fakeExecutor struct {
	name  string
	rows  []map[string]any
	err   error
	delay time.Duration
}

func (f *fakeExecutor) Name() string { return f.name }

func (f *fakeExecutor) Run(ctx context.Context, req backend.Request) (*backend.Result, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &backend.Result{
		Backend: f.name,
		Rows:    f.rows,
		Count:   len(f.rows),
		Elapsed: time.Millisecond,
	}, nil
}

func (f *fakeExecutor) Ping(ctx context.Context) error  { return f.err }
func (f *fakeExecutor) Close(ctx context.Context) error { return nil }

func rowSet(n int) []map[string]any {
	rows := make([]map[string]any, n)
	for i := range rows {
		rows[i] = map[string]any{"name": "user", "age": int64(20 + i)}
	}
	return rows
}

func TestCompare_Parity(t *testing.T) {
	runner := &Runner{
		Document:   &fakeExecutor{name: "mongo", rows: rowSet(3)},
		Relational: &fakeExecutor{name: "sqlite", rows: rowSet(3)},
	}

	report, err := runner.Compare(context.Background(), "SELECT * FROM users WHERE age > 21")
	require.NoError(t, err)

	assert.True(t, report.RowParity)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "users", report.Collection)

	mongo, ok := report.Outcome("mongo")
	require.True(t, ok)
	assert.Equal(t, StatusOK, mongo.Status)
	assert.Equal(t, 3, mongo.Count)
	assert.Empty(t, mongo.Rows) // IncludeRows off by default

	sqlite, ok := report.Outcome("sqlite")
	require.True(t, ok)
	assert.Equal(t, StatusOK, sqlite.Status)
}

func TestCompare_CountMismatchBreaksParity(t *testing.T) {
	runner := &Runner{
		Document:   &fakeExecutor{name: "mongo", rows: rowSet(3)},
		Relational: &fakeExecutor{name: "sqlite", rows: rowSet(5)},
	}

	report, err := runner.Compare(context.Background(), "SELECT * FROM users")
	require.NoError(t, err)
	assert.False(t, report.RowParity)
}

func TestCompare_PartialFailure(t *testing.T) {
	// One backend failing must not fail the comparison; the healthy side
	// still reports its numbers.
	runner := &Runner{
		Document:   &fakeExecutor{name: "mongo", err: errors.New("connection refused")},
		Relational: &fakeExecutor{name: "sqlite", rows: rowSet(2)},
	}

	report, err := runner.Compare(context.Background(), "SELECT * FROM users")
	require.NoError(t, err)

	mongo, ok := report.Outcome("mongo")
	require.True(t, ok)
	assert.Equal(t, StatusError, mongo.Status)
	assert.Contains(t, mongo.Error, "connection refused")

	sqlite, ok := report.Outcome("sqlite")
	require.True(t, ok)
	assert.Equal(t, StatusOK, sqlite.Status)
	assert.Equal(t, 2, sqlite.Count)

	assert.False(t, report.RowParity)
}

func TestCompare_PerBackendTimeout(t *testing.T) {
	runner := &Runner{
		Document:   &fakeExecutor{name: "mongo", rows: rowSet(1), delay: 200 * time.Millisecond},
		Relational: &fakeExecutor{name: "sqlite", rows: rowSet(1)},
		Timeout:    20 * time.Millisecond,
	}

	report, err := runner.Compare(context.Background(), "SELECT * FROM users")
	require.NoError(t, err)

	mongo, ok := report.Outcome("mongo")
	require.True(t, ok)
	assert.Equal(t, StatusTimeout, mongo.Status)

	sqlite, ok := report.Outcome("sqlite")
	require.True(t, ok)
	assert.Equal(t, StatusOK, sqlite.Status)
}

func TestCompare_TranslationFailureFailsCall(t *testing.T) {
	runner := &Runner{
		Document:   &fakeExecutor{name: "mongo"},
		Relational: &fakeExecutor{name: "sqlite"},
	}

	_, err := runner.Compare(context.Background(), "SELECT * FROM a JOIN b ON x")
	require.Error(t, err)
}

func TestCompare_IncludeRows(t *testing.T) {
	runner := &Runner{
		Document:    &fakeExecutor{name: "mongo", rows: rowSet(2)},
		Relational:  &fakeExecutor{name: "sqlite", rows: rowSet(2)},
		IncludeRows: true,
	}

	report, err := runner.Compare(context.Background(), "SELECT * FROM users")
	require.NoError(t, err)

	mongo, _ := report.Outcome("mongo")
	assert.Len(t, mongo.Rows, 2)
}
