package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlersStorageFailures(t *testing.T) {
	cases := []struct {
		failOp string
		method string
		path   string
		body   string
	}{
		{"list usernames", http.MethodPost, "/register", `{"username":"bob","password":"pass1"}`},
		{"verify login", http.MethodPost, "/login", `{"username":"bob","password":"pass1"}`},
		{"find account", http.MethodPost, "/messages", `{"posted_by":1,"message_text":"hi"}`},
		{"list messages", http.MethodGet, "/messages", ""},
		{"find message", http.MethodGet, "/messages/1", ""},
		{"find message", http.MethodDelete, "/messages/1", ""},
		{"find message", http.MethodPatch, "/messages/1", `{"message_text":"hi"}`},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			h := setupRouter(newTestService(newFaultyStore(tc.failOp)))
			rec := serve(h, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}
}

func TestHandlersDeleteFailureKeepsMessage(t *testing.T) {
	store := newFaultyStore("delete message")
	h := setupRouter(newTestService(store))

	require.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/register", `{"username":"bob","password":"pass1"}`).Code)
	require.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/messages", `{"posted_by":1,"message_text":"hi"}`).Code)

	rec := serve(h, http.MethodDelete, "/messages/1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(h, http.MethodGet, "/messages/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message_text":"hi"`)
}

func TestHandlersResponseShape(t *testing.T) {
	h := setupRouter(newTestService(newMemoryStore()))

	rec := serve(h, http.MethodPost, "/register", `{"username":"bob","password":"pass1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"account_id":1,"username":"bob","password":"pass1"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(traceHeader))

	rec = serve(h, http.MethodPost, "/messages", `{"posted_by":1,"message_text":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message_id":1,"posted_by":1,"message_text":"hi","time_posted_epoch":1700000000}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/accounts/1/messages/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"message_id":1,"posted_by":1,"message_text":"hi","time_posted_epoch":1700000000}]`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/accounts/x/messages", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, http.MethodPatch, "/messages/1", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlersTraceIDPassthrough(t *testing.T) {
	h := setupRouter(newTestService(newMemoryStore()))

	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	req.Header.Set(traceHeader, "trace-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get(traceHeader))
}

func TestHealthAndMetrics(t *testing.T) {
	h := setupRouter(newTestService(newMemoryStore()))

	rec := serve(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	serve(h, http.MethodPost, "/register", `{"username":"bob","password":"abc"}`)

	rec = serve(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "minitwit_http_requests_total")
	assert.Contains(t, body, `path="/register"`)
	assert.Contains(t, body, `minitwit_rejections_total{operation="register",reason="invalid"}`)
}
