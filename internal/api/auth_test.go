package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupAPI(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}

func TestRegisterValidation(t *testing.T) {
	router, _ := setupAPI(t)

	// Password too short.
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Not an email.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "alice",
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterConflict(t *testing.T) {
	router, _ := setupAPI(t)
	registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "alice",
		"email":    "different@x.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterHidesPasswordHash(t *testing.T) {
	router, _ := setupAPI(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "password_hash")
	assert.NotContains(t, w.Body.String(), "password123")
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := setupAPI(t)
	registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"username": "alice",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown user gets the same status, no account probing.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"username": "nobody",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRequiresAuth(t *testing.T) {
	router, _ := setupAPI(t)
	token, _ := registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
