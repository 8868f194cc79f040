package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// response is a completed HTTP exchange whose body is still open.
// Close must be called on every path once the caller is done with it.
type response struct {
	status      int
	contentType string
	header      http.Header
	body        io.ReadCloser

	cancel context.CancelFunc
	once   sync.Once
}

// Close releases the body and cancels the request context. It is safe to
// call more than once; close errors are discarded.
func (r *response) Close() {
	r.once.Do(func() {
		_ = r.body.Close()
		r.cancel()
	})
}

// fetch issues a single request bounded by timeout. It returns nil when no
// response arrived in time, including malformed URLs and network errors.
//
// The timer only bounds the exchange up to response headers. The returned
// body stays readable until Close.
func fetch(ctx context.Context, client *http.Client, method, url string, header http.Header, body []byte, timeout time.Duration) *response {
	ctx, cancel := context.WithCancel(ctx)

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		cancel()
		return nil
	}
	req.Header = header.Clone()
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
	}

	timer := time.AfterFunc(timeout, cancel)
	resp, err := client.Do(req)
	fired := !timer.Stop()
	if err != nil {
		cancel()
		return nil
	}
	if fired {
		_ = resp.Body.Close()
		cancel()
		return nil
	}

	return &response{
		status:      resp.StatusCode,
		contentType: mediaType(resp.Header.Get("Content-Type")),
		header:      resp.Header,
		body:        resp.Body,
		cancel:      cancel,
	}
}

// mediaType normalizes a Content-Type value to its lower-cased MIME type
// without parameters. An absent header yields "".
func mediaType(v string) string {
	mt, _, _ := strings.Cut(v, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func successful(status int) bool {
	return status >= 200 && status < 300
}
