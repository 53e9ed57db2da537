// Package handler is the entry point for business logic after the
// router.
//
// It binds and validates requests through the validation package, calls
// the appropriate service, and hands the result to the response writer.
// All endpoints share the generic pipeline in base.go.
package handler
