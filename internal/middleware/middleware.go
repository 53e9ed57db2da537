// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns: request
// correlation IDs, request-scoped logging, CORS, panic recovery, secure
// headers, and the global error funnel.
package middleware
