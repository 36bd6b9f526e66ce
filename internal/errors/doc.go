// Package errors defines the error types shared by every layer of the gateway.
//
// Tool handlers return these unchanged (optionally wrapped with %w) and the
// dispatch loop converts them into error results, so callers can always
// recover the concrete type with errors.As.
package errors
