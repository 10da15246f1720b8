// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// WHY Password string WITH json:"-"?
// The field holds the bcrypt digest, never the plaintext. The json:"-" tag
// guarantees the digest can never leak through a serialized response, even
// if a handler encodes the whole struct by accident. Plaintext passwords
// exist only transiently in request bodies and in auth.PasswordService.
//
// WHY ID int64?
// Identifiers are assigned by the database (INTEGER PRIMARY KEY) and arrive
// over the wire as path segments. Handlers parse them with strconv.ParseInt,
// so ownership checks compare numbers with numbers — never strings.
type User struct {
	ID        int64     `json:"id"        db:"id"`
	Name      string    `json:"name"      db:"name"`
	Email     string    `json:"email"     db:"email"` // unique across all users
	Password  string    `json:"-"         db:"password"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
