package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates a request whose body is v encoded as JSON.
func NewJSONRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	var body io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		body = strings.NewReader(string(b))
	}
	r := httptest.NewRequest(method, target, body)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d (body: %s)", r.Code, expected, r.Body.String())
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	if location := r.Header().Get("Location"); location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// DecodeJSON decodes the recorded body into T.
func DecodeJSON[T any](t *testing.T, r *ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(r.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", r.Body.String(), err)
	}
	return v
}
