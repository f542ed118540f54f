package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHandleHealth(t *testing.T) {
	t.Parallel()
	alive := context.Background()
	closed, cancel := context.WithCancel(context.Background())
	cancel()
	tests := []struct {
		name     string
		ctx      context.Context
		expected int
	}{
		{name: "alive", ctx: alive, expected: http.StatusOK},
		{name: "shutting_down", ctx: closed, expected: http.StatusServiceUnavailable},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			HandleHealth(test.ctx).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			if rec.Code != test.expected {
				t.Errorf("status got: %d, expected: %d", rec.Code, test.expected)
			}
		})
	}
}

func TestServer_ServeHTTPHandler(t *testing.T) {
	t.Parallel()
	srv, err := New("127.0.0.1:0", WithMaxConns(4))
	if err != nil {
		t.Fatalf("new server got: %v, expected: nil", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.ServeHTTPHandler(ctx, HandleHealth(ctx))
	}()

	resp, err := http.Get("http://" + srv.Addr() + "/health")
	if err != nil {
		t.Fatalf("get health got: %v, expected: nil", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status got: %d, expected: %d, body: %s", resp.StatusCode, http.StatusOK, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve got: %v, expected: nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop after context cancel")
	}
}
