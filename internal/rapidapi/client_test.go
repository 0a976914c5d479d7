package rapidapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, server *httptest.Server, key string, timeout time.Duration) *Client {
	t.Helper()
	client, err := NewClient(Options{
		APIKey:     key,
		Host:       "axesso.test",
		BaseURL:    server.URL,
		Timeout:    timeout,
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestGet_SetsHeadersAndQuery(t *testing.T) {
	t.Parallel()

	var capturedReq *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, "secret", time.Second)
	body, err := client.Get(context.Background(), "/amz/amazon-search", url.Values{"keyword": {"men's shoes"}})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body: %s", body)
	}
	if capturedReq.URL.Path != "/amz/amazon-search" {
		t.Fatalf("unexpected path: %s", capturedReq.URL.Path)
	}
	if got := capturedReq.URL.Query().Get("keyword"); got != "men's shoes" {
		t.Fatalf("unexpected keyword: %q", got)
	}
	if got := capturedReq.Header.Get("x-rapidapi-key"); got != "secret" {
		t.Fatalf("unexpected key header: %q", got)
	}
	if got := capturedReq.Header.Get("x-rapidapi-host"); got != "axesso.test" {
		t.Fatalf("unexpected host header: %q", got)
	}
}

func TestGet_NoKeySkipsNetwork(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, " ", time.Second)
	if _, err := client.Get(context.Background(), "/x", nil); !errors.Is(err, ErrNoKey) {
		t.Fatalf("expected ErrNoKey, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no upstream calls, got %d", calls.Load())
	}
}

func TestGet_StatusErrorIsSingleAttempt(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "quota exceeded", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, "k", time.Second)
	_, err := client.Get(context.Background(), "/x", nil)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable || statusErr.Body != "quota exceeded" {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls.Load())
	}
}

func TestGet_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	client := newTestClient(t, server, "k", 50*time.Millisecond)
	start := time.Now()
	if _, err := client.Get(context.Background(), "/slow", nil); err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout not enforced, took %s", elapsed)
	}
}

func TestNewClient_RequiresHost(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Options{APIKey: "k"}); err == nil {
		t.Fatal("expected error")
	}
}
