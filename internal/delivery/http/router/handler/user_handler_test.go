package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"passport/internal/delivery/http/middleware"
	httpvalidator "passport/internal/delivery/http/validator"
	"passport/internal/domain/entity"
	mockusecase "passport/internal/mocks/usecase"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = httpvalidator.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newTestHandler(t *testing.T) (*UserHandler, *mockusecase.MockUserUsecase) {
	t.Helper()

	uc := mockusecase.NewMockUserUsecase(t)
	h := NewUserHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return h, uc
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestUserHandler_Register(t *testing.T) {
	h, uc := newTestHandler(t)
	c, rec := newTestContext(t, http.MethodPost, "/api/users/register",
		`{"username":"alice","email":"alice@example.com","password":"password123"}`)

	uc.On("Register", mock.Anything, &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}).Return(&usecase.RegisterOutput{User: &entity.User{ID: "user-1"}}, nil)

	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "User registered successfully", body["message"])
}

func TestUserHandler_Register_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		message string
	}{
		{
			name:    "missing username",
			payload: `{"email":"alice@example.com","password":"password123"}`,
			message: "Username is required",
		},
		{
			name:    "bad email",
			payload: `{"username":"alice","email":"not-an-email","password":"password123"}`,
			message: "Invalid email format",
		},
		{
			name:    "short password",
			payload: `{"username":"alice","email":"alice@example.com","password":"short"}`,
			message: "Password must be at least 6 characters long",
		},
		{
			name:    "missing password",
			payload: `{"username":"alice","email":"alice@example.com"}`,
			message: "Password is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newTestHandler(t)
			c, rec := newTestContext(t, http.MethodPost, "/api/users/register", tc.payload)

			require.NoError(t, h.Register(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.message)
		})
	}
}

func TestUserHandler_Register_MalformedBody(t *testing.T) {
	h, _ := newTestHandler(t)
	c, rec := newTestContext(t, http.MethodPost, "/api/users/register", `{"username":`)

	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid registration input", body["error"])
}

func TestUserHandler_Login(t *testing.T) {
	h, uc := newTestHandler(t)
	c, rec := newTestContext(t, http.MethodPost, "/api/users/login",
		`{"email":"alice@example.com","password":"password123"}`)

	uc.On("Login", mock.Anything, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	}).Return(&usecase.LoginOutput{Token: "signed-token"}, nil)

	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "signed-token", body["token"])
}

func TestUserHandler_Login_PropagatesUsecaseError(t *testing.T) {
	h, uc := newTestHandler(t)
	c, _ := newTestContext(t, http.MethodPost, "/api/users/login",
		`{"email":"alice@example.com","password":"password123"}`)

	uc.On("Login", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	// Classification happens in the error handler, not here.
	err := h.Login(c)
	assert.Error(t, err)
}

func TestUserHandler_GetProfile(t *testing.T) {
	h, uc := newTestHandler(t)
	c, rec := newTestContext(t, http.MethodGet, "/api/users/profile", "")
	c.Set(middleware.KeyUserID, "user-1")

	now := time.Now().UTC().Truncate(time.Second)
	uc.On("GetProfile", mock.Anything, "user-1").Return(&entity.User{
		ID:           "user-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "must-not-leak",
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil)

	require.NoError(t, h.GetProfile(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "user-1", body["id"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "must-not-leak")
}

func TestUserHandler_GetProfile_NoSubject(t *testing.T) {
	h, _ := newTestHandler(t)
	c, rec := newTestContext(t, http.MethodGet, "/api/users/profile", "")

	require.NoError(t, h.GetProfile(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Access denied", body["error"])
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
}
