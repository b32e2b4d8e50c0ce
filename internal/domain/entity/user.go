// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the sole entity in the system, representing a registered account.
// PasswordHash is only populated when the record is loaded for credential
// verification; it must never cross the system boundary.
type User struct {
	ID           string    // Opaque unique identifier assigned by the store at creation.
	Username     string    // Display name, unique across all users.
	Email        string    // Login identifier, unique, stored lowercase.
	PasswordHash string    // bcrypt hash of the plaintext password.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
