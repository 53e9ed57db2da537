// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated data from the handlers, applies the input-shape guards that
// must run before any store access, and calls repository methods.
package service
