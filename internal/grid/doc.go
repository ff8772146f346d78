// Package grid implements the client-side session model for a table
// grid: view configuration with fingerprint dirty-tracking, debounced
// search, keyset page windows with superseded-query cancellation,
// optimistic cell edits with rollback, and on-demand index advisory.
//
// A Session is single-goroutine from the caller's perspective (its
// methods serialize on an internal mutex); the store it talks to is
// safely concurrent per request.
package grid
