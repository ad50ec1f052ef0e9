package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type forwardedForKey struct{}

// WithForwardedFor marks calls made with ctx as made on behalf of the
// visitor at addr. The client sends it as X-Forwarded-For so per-IP limits
// on the API apply to the visitor rather than to the caller.
func WithForwardedFor(ctx context.Context, addr string) context.Context {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	if addr == "" {
		return ctx
	}
	return context.WithValue(ctx, forwardedForKey{}, addr)
}

func forwardedFor(ctx context.Context) string {
	addr, _ := ctx.Value(forwardedForKey{}).(string)
	return addr
}

// HandlerTransport serves requests with Handler in-process instead of
// dialing. Handler may be set after the transport is handed to a client,
// but before the first request.
type HandlerTransport struct {
	Handler http.Handler
}

// RoundTrip implements http.RoundTripper.
func (t *HandlerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		defer req.Body.Close()
	}
	if t.Handler == nil {
		return nil, errors.New("handler transport: no handler")
	}

	// The caller's context may carry the route state of an outer chi router.
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, nil)
	in := req.Clone(ctx)
	in.RequestURI = req.URL.RequestURI()
	in.RemoteAddr = "127.0.0.1:0"
	if in.Body == nil {
		in.Body = http.NoBody
	}

	w := &bufferedResponse{header: http.Header{}}
	t.Handler.ServeHTTP(w, in)
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	return w.response(req), nil
}

// bufferedResponse collects what a handler writes.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (w *bufferedResponse) Header() http.Header { return w.header }

func (w *bufferedResponse) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *bufferedResponse) Write(b []byte) (int, error) {
	w.WriteHeader(http.StatusOK)
	return w.body.Write(b)
}

func (w *bufferedResponse) response(req *http.Request) *http.Response {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}
	header := w.header.Clone()
	header.Set("Content-Length", strconv.Itoa(w.body.Len()))
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(w.body.Bytes())),
		ContentLength: int64(w.body.Len()),
		Request:       req,
	}
}
