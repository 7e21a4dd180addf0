package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"pizza-dashboard/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do_SendsHeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/franchise", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(HeaderRequestID))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pizzaPocket", body["name"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", 5*time.Second)
	data, err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/api/franchise",
		Query:  url.Values{"page": {"1"}},
		Token:  "tok-123",
		Body:   map[string]string{"name": "pizzaPocket"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))
}

func TestClient_Do_OmitsAuthorizationWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	assert.NoError(t, err)
}

func TestClient_Do_MapsStatusCodes(t *testing.T) {
	tests := []struct {
		status int
		body   string
		code   errors.ErrorCode
		detail string
	}{
		{status: http.StatusUnauthorized, body: `{"message":"unauthorized"}`, code: errors.ErrCodeUnauthorized, detail: "unauthorized"},
		{status: http.StatusForbidden, body: `forbidden`, code: errors.ErrCodeForbidden, detail: "forbidden"},
		{status: http.StatusNotFound, body: ``, code: errors.ErrCodeNotFound},
		{status: http.StatusBadGateway, body: `{"message":"upstream down"}`, code: errors.ErrCodeServerError, detail: "upstream down"},
		{status: http.StatusConflict, body: `{"message":"exists"}`, code: errors.ErrCodeBadRequest, detail: "exists"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL, time.Second).Do(context.Background(), Request{Method: http.MethodDelete, Path: "/api/user/3"})
			require.Error(t, err)
			stdErr := errors.Normalize(err)
			assert.Equal(t, tt.code, stdErr.Code)
			assert.Equal(t, tt.status, stdErr.StatusCode)
			assert.Equal(t, "/api/user/3", stdErr.Metadata["path"])
			if tt.detail != "" {
				assert.Equal(t, tt.detail, stdErr.Details)
			}
		})
	}
}

func TestClient_Do_NetworkFailureIsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := NewClient(addr, time.Second).Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/user"})
	require.Error(t, err)
	assert.True(t, errors.IsServerError(err))
	assert.True(t, errors.IsRetryable(err))
}
