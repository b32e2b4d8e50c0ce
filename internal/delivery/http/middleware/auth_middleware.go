package middleware

import (
	"net/http"
	"strings"

	"passport/internal/delivery/http/response"
	"passport/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// KeyUserID is the echo.Context key the authenticated user's ID is stored under.
const KeyUserID = "userID"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token on the request. A missing token is
// a 401, while a token that is present but fails verification (malformed or
// expired) is a 400. Existing clients depend on that distinction.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, http.StatusUnauthorized, "Access denied")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			// Header present but no bearer token in it.
			return response.Error(c, http.StatusUnauthorized, "Access denied")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return response.Error(c, http.StatusBadRequest, "Invalid token")
		}

		// Set user info on the context for handlers to use
		c.Set(KeyUserID, claims.UserID)

		return next(c)
	}
}
