// Package sqlerr translates database driver errors into application
// errors.
//
// It parses SQLSTATE codes carried by pgconn.PgError and converts them
// into typed outcomes: a unique violation becomes a Conflict, a foreign
// key violation becomes a Bad Request pointing at the missing reference,
// and a missing row becomes Not Found. Everything else degrades to a
// sanitized internal error so driver details never leak to clients.
package sqlerr

import "errors"

// ErrCode reports the mapped Code for a given error, or Other when the
// error did not originate from the database layer.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}
