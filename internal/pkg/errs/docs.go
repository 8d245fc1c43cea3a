// Package errs provides the typed errors shared by every layer of courierdesk.
//
// Each error kind follows the same pattern:
//   - a sentinel variable (ErrObjectNotFound, ErrValueIsInvalid, ...) usable with errors.Is
//   - a struct carrying the offending parameter and an optional Cause
//   - New...Error and New...ErrorWithCause constructors
//   - Unwrap returning the sentinel
//
// ErrConcurrencyConflict is the only retryable kind: adapters return it when the
// database aborts a transaction because of lock contention, and command handlers
// that allocate voucher numbers retry on it.
package errs
