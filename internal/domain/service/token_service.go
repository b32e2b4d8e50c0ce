package service

import "errors"

// ErrTokenMalformed is returned when a token cannot be parsed or its
// signature does not match the process secret.
var ErrTokenMalformed = errors.New("token is malformed or its signature is invalid")

// ErrTokenExpired is returned when a token is past its expiry instant.
var ErrTokenExpired = errors.New("token is expired")

// Claims holds the verified payload of a bearer token.
type Claims struct {
	UserID string
}

// TokenService defines the interface for issuing and verifying signed,
// time-limited bearer tokens. This abstracts the details of token creation
// from the use cases.
type TokenService interface {
	// Issue creates a signed token carrying the user identifier, valid for
	// a fixed window from issuance.
	Issue(userID string) (string, error)

	// Validate checks signature and expiry of a token string. It fails with
	// ErrTokenExpired past the expiry instant and ErrTokenMalformed for any
	// other verification failure.
	Validate(tokenString string) (*Claims, error)
}
