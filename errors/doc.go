// Package errors provides the structured error type shared by the feed,
// the testimonial source and the CLI. Errors carry a machine-readable code,
// a user-facing message, an HTTP status hint and a retryable flag.
package errors
