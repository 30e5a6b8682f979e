// Package harness runs one SQL query against both backing stores and joins
// the outcomes into a single comparison report.
//
// The Runner translates the statement once, then dispatches the document
// store (translated filter) and the relational store (untouched SQL) as
// independent units of work under per-backend timeouts. One side failing
// or timing out never sinks the request: the report carries an explicit
// status per backend and whatever numbers the healthy side produced.
// Only a translation failure fails the whole call, since neither backend
// could meaningfully run.
//
// # Scenarios and goldens
//
// Comparison cases are described in YAML scenario files (see Scenario) and
// verified two ways: assertions on statuses, counts, and row parity, and a
// golden snapshot of the report's canonical JSON. The canonical form drops
// run ids and timings so goldens are byte-stable across runs.
package harness
