// Package response holds the wire shapes of API responses. Bodies are kept
// flat for compatibility with existing clients: success payloads are either
// {"message": ...}, {"token": ...} or a bare resource object, and every
// failure is {"error": ...}.
package response

import (
	"time"

	"passport/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// MessageBody is a confirmation response carrying no resource data.
type MessageBody struct {
	Message string `json:"message"`
}

// TokenBody carries an issued bearer token.
type TokenBody struct {
	Token string `json:"token"`
}

// ErrorBody is the uniform failure shape.
type ErrorBody struct {
	Error string `json:"error"`
}

// FieldError describes a single input validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorsBody carries field-level validation failures.
type ValidationErrorsBody struct {
	Errors []FieldError `json:"errors"`
}

// UserBody is the public representation of a user. It never carries the
// password hash.
type UserBody struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message writes a confirmation response.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageBody{Message: message})
}

// Token writes an issued bearer token.
func Token(c echo.Context, statusCode int, token string) error {
	return c.JSON(statusCode, TokenBody{Token: token})
}

// Error writes a failure response.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, ErrorBody{Error: message})
}

// ValidationErrors writes field-level validation failures.
func ValidationErrors(c echo.Context, statusCode int, errs []FieldError) error {
	return c.JSON(statusCode, ValidationErrorsBody{Errors: errs})
}

// User writes the public user record.
func User(c echo.Context, statusCode int, user *entity.User) error {
	return c.JSON(statusCode, UserBody{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}
