// internal/app/system/apiclient/errors.go
package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is matched (via errors.Is) by a StatusError carrying 404.
var ErrNotFound = errors.New("record not found")

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status=%d body=%s", e.Method, e.Path, e.Status, e.Body)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}
