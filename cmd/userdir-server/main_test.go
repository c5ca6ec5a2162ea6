package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rinhomdf/userdir/internal/config"
	"github.com/rinhomdf/userdir/internal/directory/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	config.LoadDefault()

	as := &AppState{
		UserService: users.NewUserService(users.NewUserStore()),
		Logger:      zap.NewNop(),
		Config:      config.Get(),
	}
	return setupRouter(as)
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRoutesExist(t *testing.T) {
	router := newTestRouter()

	expected := map[string]bool{
		"GET /health":       false,
		"GET /openapi.yaml": false,
		"GET /users":        false,
		"POST /users":       false,
		"GET /users/:id":    false,
	}
	for _, r := range router.Routes() {
		key := r.Method + " " + r.Path
		if _, ok := expected[key]; ok {
			expected[key] = true
		}
	}
	for key, found := range expected {
		assert.True(t, found, "missing route %s", key)
	}
}

func TestUserDirectoryScenario(t *testing.T) {
	router := newTestRouter()

	// create from an empty repository
	w := doRequest(router, http.MethodPost, "/users", `{"name":"John Doe","email":"john@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":1,"name":"John Doe","email":"john@example.com","created":true}`, w.Body.String())

	// list shows the single summary, without a profile key
	w = doRequest(router, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"users":[{"id":1,"name":"John Doe","email":"john@example.com"}]}`, w.Body.String())

	// unassigned id
	w = doRequest(router, http.MethodGet, "/users/2", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}

func TestListUsers_Empty(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"users":[]}`, w.Body.String())
}

func TestGetUser(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/users", `{"name":"John Doe","email":"john@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodGet, "/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"John Doe","email":"john@example.com"}`, w.Body.String())
	// profile is omitted entirely when absent
	assert.NotContains(t, w.Body.String(), "profile")
}

func TestGetUser_MalformedID(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/users/abc", "/users/1.5", "/users/0x1"} {
		w := doRequest(router, http.MethodGet, path, "")
		require.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
	}
}

func TestCreateUser_MissingEmail(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/users", `{"name":"John Doe"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp users.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "email", resp.Errors[0].Field)

	// rejected create must not grow the repository
	w = doRequest(router, http.MethodGet, "/users", "")
	assert.JSONEq(t, `{"users":[]}`, w.Body.String())
}

func TestCreateUser_AllViolationsReported(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/users", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp users.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 2)

	fields := []string{resp.Errors[0].Field, resp.Errors[1].Field}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/users", `{"name":"John Doe","email":"john@example"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp users.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "email", resp.Errors[0].Field)
}

func TestCreateUser_EmptyBody(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/users", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp users.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "body", resp.Errors[0].Field)
	assert.Equal(t, "body required", resp.Errors[0].Message)
}

func TestCreateUser_MalformedJSON(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/users", `{"name":`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp users.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "body", resp.Errors[0].Field)
}

func TestCreateUser_NonStringField(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/users", `{"name":123,"email":"john@example.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp users.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "name", resp.Errors[0].Field)
}

func TestCreateUser_ExtraneousFieldsIgnored(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/users", `{"name":"John Doe","email":"john@example.com","role":"admin"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHealth(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), version)
}

func TestOpenAPISpecServed(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/openapi.yaml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "openapi:"))
	assert.Contains(t, w.Body.String(), "/users/{id}")
}

func TestCorrelationIDEchoed(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(correlationIDHeader, "test-correlation-id")
	router.ServeHTTP(w, req)

	assert.Equal(t, "test-correlation-id", w.Header().Get(correlationIDHeader))

	// generated when absent
	w = doRequest(router, http.MethodGet, "/users", "")
	assert.NotEmpty(t, w.Header().Get(correlationIDHeader))
}
