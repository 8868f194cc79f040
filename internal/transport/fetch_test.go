package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"application/json", "application/json"},
		{"application/json; charset=utf-8", "application/json"},
		{"Text/Event-Stream", "text/event-stream"},
		{"  text/event-stream ;charset=UTF-8", "text/event-stream"},
		{"", ""},
		{";", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, mediaType(tt.in))
		})
	}
}

type seenRequest struct {
	method, body, host, auth string
}

func TestFetch_Response(t *testing.T) {
	seen := make(chan seenRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen <- seenRequest{
			method: r.Method,
			body:   string(b),
			host:   r.Host,
			auth:   r.Header.Get("Authorization"),
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer abc")
	header.Set("Host", "mcp.internal")

	resp := fetch(context.Background(), srv.Client(), http.MethodPost, srv.URL, header, []byte(`{}`), time.Second)
	require.NotNil(t, resp)
	defer resp.Close()

	assert.Equal(t, http.StatusAccepted, resp.status)
	assert.Equal(t, "application/json", resp.contentType)

	got := <-seen
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "{}", got.body)
	assert.Equal(t, "mcp.internal", got.host)
	assert.Equal(t, "Bearer abc", got.auth)

	body, err := io.ReadAll(resp.body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestFetch_AbsentContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp := fetch(context.Background(), srv.Client(), http.MethodGet, srv.URL, http.Header{}, nil, time.Second)
	require.NotNil(t, resp)
	defer resp.Close()
	assert.Equal(t, "", resp.contentType)
}

func TestFetch_CloseIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	resp := fetch(context.Background(), srv.Client(), http.MethodGet, srv.URL, http.Header{}, nil, time.Second)
	require.NotNil(t, resp)
	resp.Close()
	resp.Close()
}

func TestFetch_NoResponse(t *testing.T) {
	done := make(chan struct{})
	hang := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-done:
		}
	}))
	t.Cleanup(hang.Close)
	t.Cleanup(func() { close(done) })

	tests := []struct {
		name string
		url  string
	}{
		{"malformed URL", "://missing-scheme"},
		{"unsupported scheme", "ftp://example.com/mcp"},
		{"connection refused", closedURL(t)},
		{"timeout", hang.URL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			resp := fetch(context.Background(), http.DefaultClient, http.MethodGet, tt.url, http.Header{}, nil, 100*time.Millisecond)
			assert.Nil(t, resp)
			assert.Less(t, time.Since(start), 2*time.Second)
		})
	}
}

func TestFetch_ParentContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Nil(t, fetch(ctx, srv.Client(), http.MethodGet, srv.URL, http.Header{}, nil, time.Second))
}
