package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and getters", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), "u-100", "user@example.com", RoleUser)

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "u-100", id)
		assert.Equal(t, "user@example.com", GetUserEmailFromContext(ctx))
		assert.Equal(t, RoleUser, GetUserRoleFromContext(ctx))
	})

	t.Run("Empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
		assert.Equal(t, "", GetUserRoleFromContext(context.Background()))
	})

	t.Run("Blank ID is anonymous", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), "", "", "")
		_, ok := GetUserIDFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestAccessToken(t *testing.T) {
	assert.Equal(t, "", GetAccessToken(context.Background()))
	assert.Equal(t, "tok", GetAccessToken(WithAccessToken(context.Background(), "tok")))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(RoleAdmin))
	assert.False(t, IsAdmin(RoleUser))
	assert.False(t, IsAdmin(""))
}

func TestOrUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", OrUnknown(""))
	assert.Equal(t, "Unknown", OrUnknown("   "))
	assert.Equal(t, "Rex", OrUnknown("Rex"))
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "bad input", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "bad input", body["error"])
}
