package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_BurstThen429(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/chat/message", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("requests within the burst should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("request past the burst should be limited, got %d", codes[2])
	}

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/message", nil)
	req.RemoteAddr = "203.0.113.8:4000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("fresh client should not share the exhausted bucket, got %d", rec.Code)
	}
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.limiterFor("203.0.113.7")
	rl.limiterFor("203.0.113.8")

	// Nothing is stale yet.
	if dropped := rl.evictIdle(time.Now().Add(-time.Minute)); dropped != 0 {
		t.Errorf("evicted %d fresh buckets", dropped)
	}

	// Everything seen before a future cutoff is stale.
	if dropped := rl.evictIdle(time.Now().Add(time.Minute)); dropped != 2 {
		t.Errorf("expected 2 evictions, got %d", dropped)
	}
	rl.mu.Lock()
	remaining := len(rl.visitors)
	rl.mu.Unlock()
	if remaining != 0 {
		t.Errorf("%d buckets left after eviction", remaining)
	}
}
