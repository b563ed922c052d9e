package clockify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/datazip-inc/tap-clockify/types"
)

func newTestClient(url string, pageSize, retries int) *Client {
	return NewClient(ClientConfig{
		BaseURL:           url,
		APIKey:            "secret",
		PageSize:          pageSize,
		MaxRetries:        retries,
		RetryDelay:        time.Millisecond,
		RequestsPerSecond: 1000,
	})
}

func TestClientDefaults(t *testing.T) {
	client := NewClient(ClientConfig{PageSize: 100000, MaxRetries: -1})
	assert.Equal(t, constants.DefaultAPIURL, client.config.BaseURL)
	assert.Equal(t, constants.DefaultUserAgent, client.config.UserAgent)
	assert.Equal(t, constants.DefaultPerPage, client.config.PageSize)
	assert.Equal(t, 0, client.config.MaxRetries)
}

func TestClientGetHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/user", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		assert.Equal(t, constants.DefaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"id": "u1", "email": "jane@example.com", "defaultWorkspace": "ws1"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL+"/api/v1/", 10, 0)
	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "ws1", user.DefaultWorkspace)
}

func TestClientPaginate(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		assert.Equal(t, "2", r.URL.Query().Get("page-size"))
		assert.Equal(t, "true", r.URL.Query().Get("archived"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		records := []types.Record{}
		switch page {
		case 1:
			records = append(records, types.Record{"id": "a"}, types.Record{"id": "b"})
		case 2:
			records = append(records, types.Record{"id": "c"})
		}
		_ = json.NewEncoder(w).Encode(records)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2, 0)
	ids := []any{}
	err := client.Paginate(context.Background(), WorkspacePath("ws1", "projects"), map[string][]string{"archived": {"true"}}, func(page []types.Record) error {
		for _, record := range page {
			ids = append(ids, record["id"])
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, ids)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestClientPaginateStopsOnCallbackError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "a"}, {"id": "b"}]`))
	}))
	defer server.Close()

	boom := errors.New("boom")
	err := newTestClient(server.URL, 2, 0).Paginate(context.Background(), "/items", nil, func(_ []types.Record) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestClientRetries(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		retries      int
		wantErr      bool
		wantRequests int32
	}{
		{name: "rate limited then ok", statuses: []int{429, 200}, retries: 2, wantRequests: 2},
		{name: "server error then ok", statuses: []int{503, 502, 200}, retries: 2, wantRequests: 3},
		{name: "server error exhausts retries", statuses: []int{500, 500, 500}, retries: 1, wantErr: true, wantRequests: 2},
		{name: "client error is not retried", statuses: []int{404, 200}, retries: 3, wantErr: true, wantRequests: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				n := atomic.AddInt32(&requests, 1)
				status := tt.statuses[n-1]
				w.WriteHeader(status)
				if status == http.StatusOK {
					_, _ = w.Write([]byte(`{}`))
				}
			}))
			defer server.Close()

			err := newTestClient(server.URL, 10, tt.retries).Get(context.Background(), "/user", nil, &map[string]any{})
			if tt.wantErr {
				var apiErr *APIError
				assert.ErrorAs(t, err, &apiErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantRequests, atomic.LoadInt32(&requests))
		})
	}
}

func TestClientDecodeErrorNotRetried(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&requests, 1)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	err := newTestClient(server.URL, 10, 3).Get(context.Background(), "/user", nil, &map[string]any{})
	assert.ErrorIs(t, err, constants.ErrNonRetryable)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestAPIErrorClassification(t *testing.T) {
	assert.True(t, (&APIError{StatusCode: 429}).IsRateLimited())
	assert.True(t, (&APIError{StatusCode: 500}).IsServerError())
	assert.True(t, (&APIError{StatusCode: 401}).IsUnauthorized())
	assert.True(t, (&APIError{StatusCode: 403}).IsUnauthorized())
	assert.False(t, isRetryable(&APIError{StatusCode: 400}))
	assert.True(t, isRetryable(&APIError{StatusCode: 502}))
	assert.False(t, isRetryable(errors.New("other")))

	err := &APIError{StatusCode: 404, Path: "/user", Message: "not found"}
	assert.Equal(t, "clockify api /user returned HTTP 404: not found", err.Error())
}

func TestWorkspacePath(t *testing.T) {
	assert.Equal(t, "/workspaces/ws1", WorkspacePath("ws1"))
	assert.Equal(t, "/workspaces/ws1/user/u%2F1/time-entries", WorkspacePath("ws1", "user", "u/1", "time-entries"))
}
