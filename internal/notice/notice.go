// Package notice carries the user-visible messages the UI shows after an
// operation: toasts, inline warnings and the like.
package notice

import "errors"

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func Info(msg string) *Notice    { return &Notice{Level: LevelInfo, Message: msg} }
func Success(msg string) *Notice { return &Notice{Level: LevelSuccess, Message: msg} }
func Warning(msg string) *Notice { return &Notice{Level: LevelWarning, Message: msg} }
func Error(msg string) *Notice   { return &Notice{Level: LevelError, Message: msg} }

// FromError turns err into an error notice, preferring the message a backend
// returned when err exposes one.
func FromError(err error, fallback string) *Notice {
	if err == nil {
		return nil
	}
	var m interface{ UserMessage() string }
	if errors.As(err, &m) && m.UserMessage() != "" {
		return Error(m.UserMessage())
	}
	return Error(fallback)
}
