package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pawmart-web/internal/logger"
	"pawmart-web/internal/metrics"
	"pawmart-web/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *metrics.Registry) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	reg := metrics.NewRegistry()
	return New(srv.URL+"/", 2*time.Second, reg), reg
}

func TestClient_Get(t *testing.T) {
	t.Run("Decodes data and forwards headers", func(t *testing.T) {
		c, reg := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/things", r.URL.Path)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			assert.Equal(t, "req-1", r.Header.Get(logger.RequestIDHeader))
			_, _ = io.WriteString(w, `{"success":true,"data":{"name":"kibble","count":3}}`)
		})

		ctx := logger.WithRequestID(utils.WithAccessToken(context.Background(), "tok-1"), "req-1")
		var out payload
		err := c.Get(ctx, "/api/things", &out)

		require.NoError(t, err)
		assert.Equal(t, payload{Name: "kibble", Count: 3}, out)
		assert.Equal(t, uint64(1), reg.Counter(MetricRequests).Load())
		assert.Equal(t, uint64(0), reg.Counter(MetricFailures).Load())
	})

	t.Run("Missing success flag on 2xx is success", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"data":{"name":"x"}}`)
		})

		var out payload
		require.NoError(t, c.Get(context.Background(), "/x", &out))
		assert.Equal(t, "x", out.Name)
	})

	t.Run("Success false surfaces backend message", func(t *testing.T) {
		c, reg := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"success":false,"message":"Product unavailable"}`)
		})

		err := c.Get(context.Background(), "/x", nil)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Product unavailable", apiErr.UserMessage())
		assert.Equal(t, http.StatusOK, apiErr.StatusCode)
		assert.ErrorIs(t, err, ErrNotSuccessful)
		assert.Equal(t, uint64(1), reg.Counter(MetricFailures).Load())
	})

	t.Run("HTTP error status", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"success":false,"message":"No direct buy data"}`)
		})

		err := c.Get(context.Background(), "/x", nil)
		assert.Equal(t, "No direct buy data", MessageOf(err))
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("Malformed body", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `<html>`)
		})

		err := c.Get(context.Background(), "/x", nil)
		require.Error(t, err)
		assert.Equal(t, "", MessageOf(err))
	})
}

func TestClient_Post(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in payload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, payload{Name: "leash", Count: 2}, in)

		_, _ = io.WriteString(w, `{"success":true,"message":"added"}`)
	})

	err := c.Post(context.Background(), "/api/cart/add", payload{Name: "leash", Count: 2}, nil)
	assert.NoError(t, err)
}

func TestClient_PutDelete(t *testing.T) {
	var methods []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Put(context.Background(), "/a", map[string]int{"q": 1}, nil))
	require.NoError(t, c.Delete(context.Background(), "/a", nil))
	assert.Equal(t, []string{http.MethodPut, http.MethodDelete}, methods)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, nil)
	err := c.Get(context.Background(), "/api/cart", nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.Equal(t, "", apiErr.UserMessage())
	assert.Contains(t, err.Error(), "GET /api/cart")
}
