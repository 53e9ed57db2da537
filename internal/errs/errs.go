// Package errs defines the error types returned to API clients.
//
// Every failure that reaches the boundary layer is expressed as an
// *HTTPError so clients always receive the same JSON shape: a stable
// machine-readable code, a human-readable message, and optional
// field-level validation errors.
package errs
