package fanvue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCreds is a static Credentials implementation for tests.
type testCreds struct {
	token   string
	account string
}

func (c *testCreds) AccessToken() string { return c.token }
func (c *testCreds) AccountUUID() string { return c.account }

func newTestClient(baseURL string, creds *testCreds) *Client {
	return NewClient(Config{
		BaseURL:     baseURL,
		Credentials: creds,
	})
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{Credentials: &testCreds{}})

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultAPIVersion, client.apiVersion)
	assert.NotNil(t, client.httpClient)
}

func TestClient_Do(t *testing.T) {
	t.Run("attaches auth and version headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			assert.Equal(t, DefaultAPIVersion, r.Header.Get("X-Fanvue-API-Version"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, &testCreds{token: "tok-1"})
		_, err := client.Do(context.Background(), http.MethodGet, "/users/me", nil)
		require.NoError(t, err)
	})

	t.Run("empty token fails without a network call", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		client := newTestClient(server.URL, &testCreds{token: ""})
		_, err := client.Do(context.Background(), http.MethodGet, "/users/me", nil)

		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("non-2xx returns APIError with status and body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom"}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, &testCreds{token: "tok-1"})
		_, err := client.Do(context.Background(), http.MethodGet, "/users/me", nil)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
		assert.Contains(t, apiErr.Body, "boom")
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("401 surfaces as ErrUnauthenticated", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"expired"}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, &testCreds{token: "stale"})
		_, err := client.Do(context.Background(), http.MethodGet, "/users/me", nil)

		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("marshals the request body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "value", body["field"])
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, &testCreds{token: "tok-1"})
		_, err := client.Do(context.Background(), http.MethodPost, "/x", map[string]string{"field": "value"})
		require.NoError(t, err)
	})
}

func TestClient_VerifyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		w.Write([]byte(`{"uuid":"u-1"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, &testCreds{token: "tok-1"})
	assert.NoError(t, client.VerifyToken(context.Background()))
}

func TestClient_ListCreators(t *testing.T) {
	t.Run("parses the data array", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/agency/creators", r.URL.Path)
			w.Write([]byte(`{"data":[{"uuid":"c-1","displayName":"Alex"},{"uuid":"c-2"}]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, &testCreds{token: "tok-1"})
		creators, err := client.ListCreators(context.Background())
		require.NoError(t, err)

		require.Len(t, creators, 2)
		assert.Equal(t, "c-1", creators[0].UUID)
		assert.Equal(t, "Alex", creators[0].DisplayName)
	})

	t.Run("empty data", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, &testCreds{token: "tok-1"})
		creators, err := client.ListCreators(context.Background())
		require.NoError(t, err)
		assert.Empty(t, creators)
	})
}

func TestErrorTypes(t *testing.T) {
	apiErr := &APIError{Status: 404, Body: "not found"}
	assert.Contains(t, apiErr.Error(), "404")
	assert.Contains(t, apiErr.Error(), "not found")

	valErr := &ValidationError{Field: "caption", Reason: "caption is empty"}
	assert.Contains(t, valErr.Error(), "caption")

	assert.False(t, errors.Is(apiErr, ErrUnauthenticated))
}
