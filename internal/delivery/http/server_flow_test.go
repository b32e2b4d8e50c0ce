package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"passport/config"
	deliverymiddleware "passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router"
	"passport/internal/delivery/http/router/handler"
	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/infra/auth"
	"passport/internal/usecase/impl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryUserRepository is an in-process stand-in for the document store. It
// enforces the same uniqueness rules and, like the store, never returns the
// password hash from an ID lookup.
type memoryUserRepository struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*entity.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]*entity.User{}}
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrUserDuplicate
		}
	}

	r.nextID++
	now := time.Now().UTC()
	stored := *user
	stored.ID = fmt.Sprintf("user-%d", r.nextID)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.users[stored.ID] = &stored

	user.ID = stored.ID
	user.CreatedAt = now
	user.UpdatedAt = now

	return nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			found := *user

			return &found, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	found := *user
	found.PasswordHash = ""

	return &found, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.SecretKey.Access = "flow-test-secret"

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	userService := impl.NewUserService(impl.UserServiceParams{
		UserRepo:     newMemoryUserRepository(),
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokenSvc,
		Logger:       logger,
	})

	echoServer := newEchoServer(HTTPParams{
		Config: cfg,
		Logger: logger,
		RouterParams: router.RouterParams{
			UserHandler:    handler.NewUserHandler(userService, logger),
			AuthMiddleware: deliverymiddleware.NewAuthMiddleware(tokenSvc),
		},
		RequestIDMiddleware: deliverymiddleware.NewRequestIDMiddleware(logger),
		ErrorMiddleware:     deliverymiddleware.NewErrorMiddleware(logger),
	})

	srv := httptest.NewServer(echoServer)
	t.Cleanup(srv.Close)

	return srv
}

func postJSON(t *testing.T, url, body string) (*nethttp.Response, map[string]any) {
	t.Helper()

	resp, err := nethttp.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp, decodeJSON(t, resp)
}

func getWithAuth(t *testing.T, url, authHeader string) (*nethttp.Response, []byte) {
	t.Helper()

	req, err := nethttp.NewRequest(nethttp.MethodGet, url, nil)
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := nethttp.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}

func decodeJSON(t *testing.T, resp *nethttp.Response) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body
}

func TestUserFlow(t *testing.T) {
	srv := newTestServer(t)

	// Register
	resp, body := postJSON(t, srv.URL+"/api/users/register",
		`{"username":"alice","email":"alice@example.com","password":"password123"}`)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully", body["message"])

	// Login
	resp, body = postJSON(t, srv.URL+"/api/users/login",
		`{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// Profile with the issued token
	resp, raw := getWithAuth(t, srv.URL+"/api/users/profile", "Bearer "+token)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	profile := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &profile))
	assert.Equal(t, "alice", profile["username"])
	assert.Equal(t, "alice@example.com", profile["email"])
	assert.NotContains(t, string(raw), "password")
}

func TestUserFlow_DuplicateRegistration(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postJSON(t, srv.URL+"/api/users/register",
		`{"username":"alice","email":"alice@example.com","password":"password123"}`)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	// Same email, different username
	resp, body := postJSON(t, srv.URL+"/api/users/register",
		`{"username":"alice2","email":"alice@example.com","password":"password123"}`)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already exists", body["error"])

	// Same username, different email
	resp, body = postJSON(t, srv.URL+"/api/users/register",
		`{"username":"alice","email":"other@example.com","password":"password123"}`)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already exists", body["error"])
}

func TestUserFlow_CaseInsensitiveEmail(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postJSON(t, srv.URL+"/api/users/register",
		`{"username":"alice","email":"Alice@Example.COM","password":"password123"}`)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	// Login succeeds regardless of the casing used at registration.
	resp, body := postJSON(t, srv.URL+"/api/users/login",
		`{"email":"alice@example.com","password":"password123"}`)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
}

func TestUserFlow_LoginRejections(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postJSON(t, srv.URL+"/api/users/register",
		`{"username":"alice","email":"alice@example.com","password":"password123"}`)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	// Wrong password and unknown email produce the same rejection.
	resp, body := postJSON(t, srv.URL+"/api/users/login",
		`{"email":"alice@example.com","password":"wrongpassword"}`)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])

	resp, body = postJSON(t, srv.URL+"/api/users/login",
		`{"email":"ghost@example.com","password":"password123"}`)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestUserFlow_ProfileAuth(t *testing.T) {
	srv := newTestServer(t)

	// No token at all
	resp, raw := getWithAuth(t, srv.URL+"/api/users/profile", "")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(raw), "Access denied")

	// Present but unverifiable token
	resp, raw = getWithAuth(t, srv.URL+"/api/users/profile", "Bearer bogus")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "Invalid token")
}

func TestUserFlow_HealthCheck(t *testing.T) {
	srv := newTestServer(t)

	resp, err := nethttp.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}
