// Package model holds the persisted row types.
package model

import "time"

// User is a row in the users table. ID and CreatedAt are assigned by
// the store; CreatedAt is immutable after insert.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
