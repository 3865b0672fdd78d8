// Package notice carries the short-lived message shown after an action.
package notice

import "fmt"

// Level is the severity of a notice.
type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Error   Level = "error"
)

// Notice is a transient user-facing message.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// OK builds a success notice.
func OK(format string, args ...any) *Notice {
	return &Notice{Level: Success, Message: fmt.Sprintf(format, args...)}
}

// Infof builds an informational notice.
func Infof(format string, args ...any) *Notice {
	return &Notice{Level: Info, Message: fmt.Sprintf(format, args...)}
}

// Fail builds an error notice.
func Fail(format string, args ...any) *Notice {
	return &Notice{Level: Error, Message: fmt.Sprintf(format, args...)}
}

// IsError reports whether n is an error notice. A nil notice is not.
func (n *Notice) IsError() bool {
	return n != nil && n.Level == Error
}
