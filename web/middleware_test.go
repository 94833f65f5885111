package web

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func TestRateLimiter_OneBucketPerIP(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(requestsPerSecond), requestBurst)

	if rl.rate != rate.Limit(requestsPerSecond) || rl.burst != requestBurst {
		t.Errorf("Unexpected limiter settings %v/%d", rl.rate, rl.burst)
	}

	a := rl.getLimiter("10.0.0.1")
	if a != rl.getLimiter("10.0.0.1") {
		t.Error("Expected the same bucket for the same IP")
	}
	if a == rl.getLimiter("10.0.0.2") {
		t.Error("Expected separate buckets for separate IPs")
	}
}

func TestRateLimiter_ResetsWhenFull(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1)

	for i := 0; i <= maxLimiters; i++ {
		rl.getLimiter(fmt.Sprintf("10.%d.%d.%d", i>>16&0xff, i>>8&0xff, i&0xff))
	}

	rl.mu.Lock()
	count := len(rl.limiters)
	rl.mu.Unlock()
	if count != maxLimiters+1 {
		t.Fatalf("Expected %d buckets, got %d", maxLimiters+1, count)
	}

	// the next new client starts a fresh map
	rl.getLimiter("172.16.0.1")

	rl.mu.Lock()
	count = len(rl.limiters)
	rl.mu.Unlock()
	if count != 1 {
		t.Errorf("Expected the map to be reset to 1 bucket, got %d", count)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	router := setupRouter(t, schoolAnnouncements(), 5)

	for i := 1; i <= requestBurst; i++ {
		if w := get(router, "/api/announcements", ""); w.Code != http.StatusOK {
			t.Fatalf("Request %d within the burst should succeed, got %d", i, w.Code)
		}
	}

	// tokens refill at 10/s, so keep asking until the bucket runs dry
	var limited *httptest.ResponseRecorder
	for i := 0; i < requestBurst && limited == nil; i++ {
		if w := get(router, "/api/announcements", ""); w.Code == http.StatusTooManyRequests {
			limited = w
		}
	}
	if limited == nil {
		t.Fatal("Expected a 429 after the burst was used up")
	}
	if !strings.Contains(limited.Body.String(), "Rate limit exceeded") {
		t.Errorf("Expected rate limit error message, got: %s", limited.Body.String())
	}

	// another client is not affected
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/announcements", nil)
	req.RemoteAddr = "192.168.1.2:12345"
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected a different IP to pass, got %d", w.Code)
	}
}

func TestRouter_BodyTooLarge(t *testing.T) {
	router := setupRouter(t, schoolAnnouncements(), 5)

	tests := []struct {
		name   string
		size   int
		status int
	}{
		{"small body", 512, http.StatusOK},
		{"at limit", maxBodyBytes, http.StatusOK},
		{"over limit", maxBodyBytes + 1, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/api/announcements", strings.NewReader(strings.Repeat("x", tt.size)))
			req.RemoteAddr = "192.168.1.3:12345"
			router.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			if tt.status == http.StatusRequestEntityTooLarge && !strings.Contains(w.Body.String(), "Request body too large") {
				t.Errorf("Expected body size error, got: %s", w.Body.String())
			}
		})
	}
}

func TestRouter_RequestId(t *testing.T) {
	router := setupRouter(t, schoolAnnouncements(), 5)

	w := get(router, "/api/announcements", "")
	id := w.Header().Get("X-Request-Id")
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("Expected a uuid request id, got %q", id)
	}

	sent := uuid.New().String()
	w = httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/announcements/1", nil)
	req.Header.Set("X-Request-Id", sent)
	router.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-Id"); got != sent {
		t.Errorf("Expected client request id %q to be kept, got %q", sent, got)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-Id", "<script>")
	router.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-Id"); got == "<script>" {
		t.Error("Expected an invalid request id to be replaced")
	}
}

func TestIsHTMLRequest(t *testing.T) {
	tests := []struct {
		accept string
		html   bool
	}{
		{"", true},
		{"*/*", true},
		{"text/html; charset=utf-8", true},
		{"text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", true},
		{"image/png", true},
		{"application/json", false},
		{"application/json; charset=utf-8", false},
		{"application/vnd.api+json", false},
		{"application/json, text/html;q=0.9", false},
	}

	for _, tt := range tests {
		if got := IsHTMLRequest(tt.accept); got != tt.html {
			t.Errorf("IsHTMLRequest(%q) = %v, want %v", tt.accept, got, tt.html)
		}
	}
}
