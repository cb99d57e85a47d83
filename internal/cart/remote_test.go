package cart

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pawmart-web/internal/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemote_Endpoints(t *testing.T) {
	type call struct {
		method string
		path   string
		body   map[string]any
	}
	var calls []call

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path}
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				assert.NoError(t, json.Unmarshal(raw, &c.body))
			}
		}
		calls = append(calls, c)

		if r.URL.Path == "/api/cart" {
			_, _ = io.WriteString(w, `{"success":true,"data":{"items":[
				{"_id":"i1","product":{"_id":"p1","name":"Kibble","price":1000},"quantity":2},
				{"_id":"i2","product":null,"quantity":1}
			]}}`)
			return
		}
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	backend := NewRemote(apiclient.New(srv.URL, time.Second, nil))
	ctx := context.Background()

	c, err := backend.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	assert.Nil(t, c.Items[1].Product)
	assert.Equal(t, "2000", c.Total().String())

	require.NoError(t, backend.AddItem(ctx, "p1", 2))
	require.NoError(t, backend.UpdateQuantity(ctx, "i1", 5))
	require.NoError(t, backend.RemoveItem(ctx, "i2"))
	require.NoError(t, backend.Clear(ctx))

	require.Len(t, calls, 5)
	assert.Equal(t, call{method: http.MethodPost, path: "/api/cart/add", body: map[string]any{"productId": "p1", "quantity": float64(2)}}, calls[1])
	assert.Equal(t, call{method: http.MethodPut, path: "/api/cart/update/i1", body: map[string]any{"quantity": float64(5)}}, calls[2])
	assert.Equal(t, http.MethodDelete, calls[3].method)
	assert.Equal(t, "/api/cart/remove/i2", calls[3].path)
	assert.Equal(t, "/api/cart/clear", calls[4].path)
}

func TestRemote_GetCartError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"success":false,"message":"Please log in"}`)
	}))
	defer srv.Close()

	c, err := NewRemote(apiclient.New(srv.URL, time.Second, nil)).GetCart(context.Background())
	assert.Nil(t, c)
	assert.Equal(t, "Please log in", apiclient.MessageOf(err))
}
