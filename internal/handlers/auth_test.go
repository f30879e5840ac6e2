package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialpro/apiserver/config"
	"github.com/dialpro/apiserver/internal/auth"
	"github.com/dialpro/apiserver/internal/handlers"
	"github.com/dialpro/apiserver/internal/session"
	"github.com/dialpro/apiserver/types"
)

const testSecret = "test-secret"

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()

	verifier := auth.NewVerifier(config.AuthModeDemo)
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	sessions := session.NewManager(verifier, store, 0, nil)

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, sessions, testSecret)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func postLogin(t *testing.T, server *httptest.Server, body handlers.LoginRequest) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/auth/login", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func TestLoginEndpoint(t *testing.T) {
	server := newAuthServer(t)

	resp := postLogin(t, server, handlers.LoginRequest{
		Email:    "admin@company.com",
		Password: "demo123",
		Role:     "admin",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var authResp handlers.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&authResp))
	assert.NotEmpty(t, authResp.Token)
	assert.Equal(t, types.RoleAdmin, authResp.User.Role)
	assert.Equal(t, "Admin User", authResp.User.Name)
}

func TestLoginRejectsBadRequests(t *testing.T) {
	server := newAuthServer(t)

	tests := map[string]struct {
		req      handlers.LoginRequest
		expected int
	}{
		"MissingEmail":    {handlers.LoginRequest{Password: "demo123", Role: "admin"}, http.StatusBadRequest},
		"MissingPassword": {handlers.LoginRequest{Email: "admin@company.com", Role: "admin"}, http.StatusBadRequest},
		"MalformedEmail":  {handlers.LoginRequest{Email: "nope", Password: "x", Role: "employee"}, http.StatusUnauthorized},
		"UnknownRole":     {handlers.LoginRequest{Email: "admin@company.com", Password: "demo123", Role: "root"}, http.StatusUnauthorized},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			resp := postLogin(t, server, tc.req)
			defer resp.Body.Close()
			assert.Equal(t, tc.expected, resp.StatusCode)
		})
	}
}

func TestMeAndLogout(t *testing.T) {
	server := newAuthServer(t)

	resp := postLogin(t, server, handlers.LoginRequest{
		Email:    "employee@company.com",
		Password: "demo123",
		Role:     "employee",
	})
	var authResp handlers.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&authResp))
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL+"/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+authResp.Token)

	meResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer meResp.Body.Close()
	require.Equal(t, http.StatusOK, meResp.StatusCode)

	var me types.User
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	assert.Equal(t, "employee@company.com", me.Email)
	assert.Equal(t, "John Smith", me.Name)

	// Logout twice: both succeed, the second against no session.
	for i := 0; i < 2; i++ {
		req, err := http.NewRequest(http.MethodPost, server.URL+"/auth/logout", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+authResp.Token)

		logoutResp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		logoutResp.Body.Close()
		assert.Equal(t, http.StatusNoContent, logoutResp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server := newAuthServer(t)

	tests := map[string]string{
		"NoHeader":     "",
		"NotBearer":    "Basic abc",
		"GarbageToken": "Bearer not-a-jwt",
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, server.URL+"/auth/me", nil)
			require.NoError(t, err)
			if header != "" {
				req.Header.Set("Authorization", header)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}
