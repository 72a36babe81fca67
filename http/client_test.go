package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"ytreport/internal/retry"
)

func fastRetry(maxRetries int) retry.Config {
	return retry.Config{
		MaxRetries:     maxRetries,
		InitialBackoff: 5 * time.Millisecond,
		MaxBackoff:     20 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestNewClientNilConfig(t *testing.T) {
	client := NewClient(nil)
	if client == nil {
		t.Fatal("expected client to be created with default config")
	}
	if client.Timeout != 0 {
		t.Errorf("default Timeout = %v, want 0", client.Timeout)
	}
}

func TestClientAppendsAPIKey(t *testing.T) {
	var gotKey, gotPart, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotPart = r.URL.Query().Get("part")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.APIKey = "secret-key"
	client := NewClient(cfg)

	resp, err := client.Get(server.URL + "/youtube/v3/videos?part=status")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if gotKey != "secret-key" {
		t.Errorf("key = %q, want %q", gotKey, "secret-key")
	}
	if gotPart != "status" {
		t.Errorf("part = %q, want existing query preserved", gotPart)
	}
	if gotUA != "ytreport/1.0" {
		t.Errorf("User-Agent = %q, want ytreport/1.0", gotUA)
	}
}

func TestClientKeepsExplicitKey(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.APIKey = "default"
	resp, err := NewClient(cfg).Get(server.URL + "/?key=explicit")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if gotKey != "explicit" {
		t.Errorf("key = %q, want explicit", gotKey)
	}
}

func TestClientNoRetryByDefault(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"code":503}}`))
	}))
	defer server.Close()

	resp, err := NewClient(DefaultConfig()).Get(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Retry = fastRetry(3)
	resp, err := NewClient(cfg).Get(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("got %d %q, want 200 ok", resp.StatusCode, body)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestClientReturnsLastResponseWhenExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`quota`))
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Retry = fastRetry(2)
	resp, err := NewClient(cfg).Get(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusTooManyRequests || string(body) != "quota" {
		t.Errorf("got %d %q, want 429 quota", resp.StatusCode, body)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Retry = fastRetry(3)
	resp, err := NewClient(cfg).Get(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestClientDoesNotRetryPost(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Retry = fastRetry(3)
	resp, err := NewClient(cfg).Post(server.URL, "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestClientContextCanceledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "10")
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Retry = fastRetry(3)
	client := NewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)

	start := time.Now()
	_, err := client.Do(req)
	if err == nil {
		t.Fatal("expected error after context deadline")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Do took %v, should stop at context deadline", elapsed)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"empty", "", 0},
		{"seconds", "7", 7 * time.Second},
		{"garbage", "soon", 0},
		{"past date", "Wed, 21 Oct 2015 07:28:00 GMT", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.header != "" {
				h.Set("Retry-After", tt.header)
			}
			if got := parseRetryAfter(h); got != tt.want {
				t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{200, false},
		{400, false},
		{403, false},
		{404, false},
		{408, true},
		{429, true},
		{500, true},
		{503, true},
	}

	for _, tt := range tests {
		if got := ShouldRetry(tt.status); got != tt.want {
			t.Errorf("ShouldRetry(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
