package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/infrastructure/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetCurrentUser_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "user-123", "email": "buyer@example.com"}`))
	}))
	defer server.Close()

	client := identity.NewClient(server.URL, "anon-key", 5*time.Second)

	user, err := client.GetCurrentUser(context.Background(), "user-token")

	require.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	assert.Equal(t, "buyer@example.com", user.Email)
}

func TestClient_GetCurrentUser_EmptyToken(t *testing.T) {
	client := identity.NewClient("http://localhost:1", "anon-key", time.Second)

	_, err := client.GetCurrentUser(context.Background(), "")

	assert.ErrorIs(t, err, application.ErrNoUser)
}

func TestClient_GetCurrentUser_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"msg": "invalid JWT"}`))
	}))
	defer server.Close()

	client := identity.NewClient(server.URL, "anon-key", 5*time.Second)

	_, err := client.GetCurrentUser(context.Background(), "expired-token")

	assert.ErrorIs(t, err, application.ErrNoUser)
}

func TestClient_GetCurrentUser_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := identity.NewClient(server.URL, "anon-key", 5*time.Second)

	_, err := client.GetCurrentUser(context.Background(), "user-token")

	assert.ErrorIs(t, err, application.ErrNoUser)
}

func TestClient_GetCurrentUser_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := identity.NewClient(server.URL, "anon-key", time.Second)

	_, err := client.GetCurrentUser(context.Background(), "user-token")

	assert.ErrorIs(t, err, application.ErrNoUser)
}
