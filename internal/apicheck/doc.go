// Package apicheck exercises a running API from the outside.
//
// Runner executes a fixed, ordered list of scenarios: one request each, an
// assertion on the status code and the top-level response keys, and a
// pretty-printed copy of the response body written to a fixtures
// directory. There is no retry and no polling.
//
// LoadGenerator replays a weighted task mix from several virtual users
// with a random pause between tasks and aggregates per-task request
// counts, failures and latency.
package apicheck
