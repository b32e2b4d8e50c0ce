// Package handler contains the HTTP handlers for the application.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/response"
	"passport/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	input := new(usecase.RegisterUserInput)
	if err := c.Bind(input); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return validationFailed(c, err)
	}

	if _, err := h.uc.Register(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	// Do not return the created record; a confirmation is enough and keeps
	// sensitive fields out of the response.
	return response.Message(c, http.StatusCreated, "User registered successfully")
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	input := new(usecase.LoginInput)
	if err := c.Bind(input); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return validationFailed(c, err)
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Token(c, http.StatusOK, output.Token)
}

// GetProfile handles the request to get the current user's profile.
// The auth middleware has already verified the token and stored its subject.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := c.Get(middleware.KeyUserID).(string)
	if !ok || userID == "" {
		return response.Error(c, http.StatusUnauthorized, "Access denied")
	}

	user, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.User(c, http.StatusOK, user)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// validationFailed translates validator failures into field-level messages.
func validationFailed(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return response.Error(c, http.StatusBadRequest, "Invalid input")
	}

	fieldErrors := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, response.FieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}

	return response.ValidationErrors(c, http.StatusBadRequest, fieldErrors)
}

func validationMessage(fe validator.FieldError) string {
	switch {
	case fe.Field() == "Username" && fe.Tag() == "required":
		return "Username is required"
	case fe.Field() == "Email":
		return "Invalid email format"
	case fe.Field() == "Password" && fe.Tag() == "required":
		return "Password is required"
	case fe.Field() == "Password" && fe.Tag() == "min":
		return fmt.Sprintf("Password must be at least %s characters long", fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
