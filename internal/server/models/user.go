package models

import "time"

// User is a registered account. Email is the login identifier and the
// subject of issued tokens.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
