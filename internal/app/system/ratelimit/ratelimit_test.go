package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(limit int, d time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := New(limit, d)
	l.now = clock.now
	return l, clock
}

func TestLimiter_AllowAndExpire(t *testing.T) {
	l, clock := newTestLimiter(2, time.Minute)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if l.Allow("a") {
		t.Fatal("third request should be limited")
	}
	if !l.Allow("b") {
		t.Fatal("other keys have their own window")
	}
	if got := l.Remaining("a"); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}

	clock.t = clock.t.Add(61 * time.Second)
	if got := l.Remaining("a"); got != 2 {
		t.Errorf("Remaining after expiry = %d, want 2", got)
	}
	if !l.Allow("a") {
		t.Error("window should have expired")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	l.Allow("a")
	l.Reset("a")
	if !l.Allow("a") {
		t.Error("reset key should be allowed again")
	}
}

func TestLimiter_SweepDropsExpired(t *testing.T) {
	l, clock := newTestLimiter(1, time.Minute)
	l.Allow("a")
	l.Allow("b")

	clock.t = clock.t.Add(3 * time.Minute)
	l.Allow("c")

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.windows) != 1 {
		t.Errorf("windows = %d, want only the fresh one", len(l.windows))
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "1.1.1.1:80", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": " 10.0.0.3 "}, "1.1.1.1:80", "10.0.0.3"},
		{"remote with port", nil, "1.1.1.1:80", "1.1.1.1"},
		{"remote without port", nil, "1.1.1.1", "1.1.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMutations(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	h := Mutations(l, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(method string) int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, "/cartas/1/apoiar", nil))
		return rec.Code
	}

	if got := serve(http.MethodPost); got != http.StatusNoContent {
		t.Fatalf("first POST: %d", got)
	}
	if got := serve(http.MethodPost); got != http.StatusTooManyRequests {
		t.Fatalf("second POST: %d, want 429", got)
	}
	if got := serve(http.MethodGet); got != http.StatusNoContent {
		t.Fatalf("GET should never be limited, got %d", got)
	}
}

func TestMutations_NilLimiter(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := Mutations(nil, zap.NewNop())(next)
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("POST %d: %d", i, rec.Code)
		}
	}
}
