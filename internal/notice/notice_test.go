package notice

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type backendErr struct{ msg string }

func (b backendErr) Error() string       { return "backend: " + b.msg }
func (b backendErr) UserMessage() string { return b.msg }

func TestFromError(t *testing.T) {
	t.Run("Nil error", func(t *testing.T) {
		assert.Nil(t, FromError(nil, "fallback"))
	})

	t.Run("Backend message preferred", func(t *testing.T) {
		n := FromError(backendErr{msg: "Out of stock"}, "fallback")
		assert.Equal(t, LevelError, n.Level)
		assert.Equal(t, "Out of stock", n.Message)
	})

	t.Run("Fallback for plain errors", func(t *testing.T) {
		n := FromError(fmt.Errorf("wrap: %w", errors.New("dial tcp")), "Could not reach the server")
		assert.Equal(t, "Could not reach the server", n.Message)
	})
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, LevelInfo, Info("a").Level)
	assert.Equal(t, LevelSuccess, Success("a").Level)
	assert.Equal(t, LevelWarning, Warning("a").Level)
	assert.Equal(t, LevelError, Error("a").Level)
}

func TestFromError_Wrapped(t *testing.T) {
	err := fmt.Errorf("place order: %w", backendErr{msg: "Payment method not supported"})
	assert.Equal(t, "Payment method not supported", FromError(err, "fallback").Message)
}
