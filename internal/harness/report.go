package harness

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Backend status values in a Report.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

// BackendOutcome is one backend's slice of a comparison: what it answered,
// how fast, or why it didn't.
type BackendOutcome struct {
	Backend string           `json:"backend"`
	Status  string           `json:"status"`
	Count   int              `json:"count"`
	Elapsed time.Duration    `json:"elapsed"`
	Error   string           `json:"error,omitempty"`
	Rows    []map[string]any `json:"rows,omitempty"`
}

// Report is the joined result of running one query against both stores.
// Partial results are normal: a backend that errored or timed out appears
// with its status while the other side's numbers stand.
type Report struct {
	RunID        string                    `json:"run_id"`
	Query        string                    `json:"query"`
	Collection   string                    `json:"collection"`
	Filter       bson.M                    `json:"filter"`
	Backends     map[string]BackendOutcome `json:"backends"`
	TotalElapsed time.Duration             `json:"total_elapsed"`
	RowParity    bool                      `json:"row_parity"`
}

// Outcome returns the outcome for a backend name, ok=false when absent.
func (r *Report) Outcome(name string) (BackendOutcome, bool) {
	o, ok := r.Backends[name]
	return o, ok
}

// toCanonicalMap flattens the report for canonical serialization, dropping
// the fields that vary between runs (run id, timings) so golden files stay
// stable. Durations would differ on every execution; counts, statuses, and
// the rendered filter are the semantic payload.
func (r *Report) toCanonicalMap() map[string]any {
	backends := make(map[string]any, len(r.Backends))
	for name, outcome := range r.Backends {
		entry := map[string]any{
			"status": outcome.Status,
			"count":  outcome.Count,
		}
		if outcome.Error != "" {
			entry["error"] = outcome.Error
		}
		backends[name] = entry
	}

	return map[string]any{
		"query":      r.Query,
		"collection": r.Collection,
		"filter":     canonicalizeFilter(r.Filter),
		"backends":   backends,
		"row_parity": r.RowParity,
	}
}

// MarshalCanonical serializes the report deterministically for golden
// comparison: sorted keys, NFC-normalized strings, no HTML escaping.
func (r *Report) MarshalCanonical() ([]byte, error) {
	return marshalCanonical(r.toCanonicalMap())
}

// canonicalizeFilter rewrites a bson.M tree as plain maps and slices so
// the canonical marshaler only sees ordinary Go types.
func canonicalizeFilter(v any) any {
	switch val := v.(type) {
	case bson.M:
		return canonicalizeFilter(map[string]any(val))
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = canonicalizeFilter(elem)
		}
		return out
	case []bson.M:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = canonicalizeFilter(elem)
		}
		return out
	case bson.A:
		return canonicalizeFilter([]any(val))
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = canonicalizeFilter(elem)
		}
		return out
	default:
		return v
	}
}
