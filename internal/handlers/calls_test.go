package handlers_test

import (
	"bytes"
	"context"
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
	"github.com/dialpro/apiserver/internal/export"
	"github.com/dialpro/apiserver/internal/handlers"
	"github.com/dialpro/apiserver/internal/provider"
	"github.com/dialpro/apiserver/internal/records"
	"github.com/dialpro/apiserver/internal/services"
	"github.com/dialpro/apiserver/internal/session"
	"github.com/dialpro/apiserver/types"
)

// newCallsServer wires the call log routes over the demo dataset with
// no broker and no export storage configured.
func newCallsServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := records.New(nil)
	intents := services.NewIntentPublisher(nil, "call-intents", nil)
	calls := services.NewCallLogService(store, provider.NewMock(), nil, intents, nil)
	require.NoError(t, calls.Load(context.Background()))

	verifier := auth.NewVerifier(config.AuthModeDemo)
	sessionStore := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	sessions := session.NewManager(verifier, sessionStore, 0, nil)

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, sessions, testSecret)
	})
	r.Route("/calls", func(r chi.Router) {
		handlers.CallsRouter(r, calls, export.NewExporter(nil), handlers.RequireAuth(testSecret))
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func loginToken(t *testing.T, server *httptest.Server, email string, role types.Role) string {
	t.Helper()

	resp := postLogin(t, server, handlers.LoginRequest{
		Email:    email,
		Password: "demo123",
		Role:     string(role),
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var authResp handlers.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&authResp))
	return authResp.Token
}

func doAuthed(t *testing.T, token, method, url string, body []byte) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func listCalls(t *testing.T, server *httptest.Server, token, rawQuery string) handlers.CallListResponse {
	t.Helper()

	url := server.URL + "/calls/"
	if rawQuery != "" {
		url += "?" + rawQuery
	}
	resp := doAuthed(t, token, http.MethodGet, url, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list handlers.CallListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	return list
}

func TestListCallsAdminSeesEverything(t *testing.T) {
	server := newCallsServer(t)
	token := loginToken(t, server, "admin@company.com", types.RoleAdmin)

	list := listCalls(t, server, token, "")
	assert.Equal(t, 5, list.Total)

	filtered := listCalls(t, server, token, "search=acme&type=all&employee=all")
	require.Equal(t, 1, filtered.Total)
	assert.Equal(t, "1", filtered.Items[0].ID)

	byEmployee := listCalls(t, server, token, "employee=Lisa+Davis")
	require.Equal(t, 1, byEmployee.Total)
	assert.Equal(t, "5", byEmployee.Items[0].ID)
}

func TestListCallsEmployeeScopedToSelf(t *testing.T) {
	server := newCallsServer(t)
	token := loginToken(t, server, "employee@company.com", types.RoleEmployee)

	// The demo employee is John Smith; the employee filter cannot widen
	// the scope.
	list := listCalls(t, server, token, "employee=Sarah+Johnson")
	require.Equal(t, 2, list.Total)
	for _, item := range list.Items {
		assert.Equal(t, "John Smith", item.EmployeeName)
	}
}

func TestListCallsRequiresAuth(t *testing.T) {
	server := newCallsServer(t)

	resp, err := http.Get(server.URL + "/calls/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRecordingIntentEndpoints(t *testing.T) {
	server := newCallsServer(t)
	token := loginToken(t, server, "admin@company.com", types.RoleAdmin)

	tests := map[string]struct {
		path     string
		expected int
	}{
		"PlayAccepted":        {"/calls/1/recording/play", http.StatusAccepted},
		"DownloadAccepted":    {"/calls/1/recording/download", http.StatusAccepted},
		"NoRecordingConflict": {"/calls/3/recording/play", http.StatusConflict},
		"UnknownCallNotFound": {"/calls/999/recording/play", http.StatusNotFound},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			resp := doAuthed(t, token, http.MethodPost, server.URL+tc.path, nil)
			defer resp.Body.Close()
			require.Equal(t, tc.expected, resp.StatusCode)

			if tc.expected == http.StatusAccepted {
				var intent handlers.IntentResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&intent))
				assert.NotEmpty(t, intent.EventID)
			}
		})
	}
}

func TestAddNoteEndpoint(t *testing.T) {
	server := newCallsServer(t)
	token := loginToken(t, server, "admin@company.com", types.RoleAdmin)

	body, _ := json.Marshal(handlers.AddNoteRequest{Note: "call back tomorrow"})
	resp := doAuthed(t, token, http.MethodPost, server.URL+"/calls/2/notes", body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var amended types.CallLogEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&amended))
	assert.Equal(t, "2", amended.ID)
	assert.Equal(t, "call back tomorrow", amended.Notes)

	// The amendment is visible on subsequent reads.
	list := listCalls(t, server, token, "search=tech+solutions")
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "call back tomorrow", list.Items[0].Notes)
}

func TestAddNoteValidation(t *testing.T) {
	server := newCallsServer(t)
	token := loginToken(t, server, "admin@company.com", types.RoleAdmin)

	empty, _ := json.Marshal(handlers.AddNoteRequest{Note: "   "})
	resp := doAuthed(t, token, http.MethodPost, server.URL+"/calls/1/notes", empty)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	note, _ := json.Marshal(handlers.AddNoteRequest{Note: "hello"})
	resp = doAuthed(t, token, http.MethodPost, server.URL+"/calls/999/notes", note)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportRequiresAdminAndStorage(t *testing.T) {
	server := newCallsServer(t)

	employeeToken := loginToken(t, server, "employee@company.com", types.RoleEmployee)
	resp := doAuthed(t, employeeToken, http.MethodPost, server.URL+"/calls/export", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// No storage backend is configured in this wiring.
	adminToken := loginToken(t, server, "admin@company.com", types.RoleAdmin)
	resp = doAuthed(t, adminToken, http.MethodPost, server.URL+"/calls/export", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
