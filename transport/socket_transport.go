package transport

import (
	"bufio"
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// SocketTransport is a minimal client: it opens a new connection for every request, writes a
// single HTTP/1.1 request with "Connection: close", and reads one response. It does not pool
// connections, follow redirects, or use proxies.
type SocketTransport struct {
	timeout time.Duration
	headers http.Header
	dialer  *net.Dialer
}

func NewSocketTransport(timeout time.Duration, headers http.Header) *SocketTransport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if headers == nil {
		headers = DefaultHeaders()
	}
	return &SocketTransport{
		timeout: timeout,
		headers: headers.Clone(),
		dialer:  &net.Dialer{},
	}
}

func (t *SocketTransport) Send(ctx context.Context, method, rawURL string, body interface{}) *Result {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	result := t.send(ctx, method, rawURL, body)
	if result.TransportFailed() && ctx.Err() != nil {
		return failure(fmt.Errorf("%s %s: %w", method, rawURL, ctx.Err()))
	}
	return result
}

func (t *SocketTransport) send(ctx context.Context, method, rawURL string, body interface{}) *Result {
	data, err := encodeBody(body)
	if err != nil {
		return failure(err)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return failure(err)
	}

	conn, err := t.dial(ctx, u)
	if err != nil {
		return failure(err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := closeWhenDone(ctx, conn)
	defer stop()

	var reader io.Reader
	if data != nil {
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return failure(err)
	}
	req.Close = true
	applyHeaders(req.Header, t.headers, data != nil)
	if err := req.Write(conn); err != nil {
		return failure(fmt.Errorf("writing request: %w", err))
	}

	resp, err := http.ReadResponse(bufio.NewReader(conn), req)
	if err != nil {
		return failure(fmt.Errorf("reading response: %w", err))
	}
	defer resp.Body.Close()
	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(fmt.Errorf("reading response body: %w", err))
	}
	return NewResult(resp.StatusCode, string(respData))
}

func (t *SocketTransport) dial(ctx context.Context, u *url.URL) (net.Conn, error) {
	port := u.Port()
	switch u.Scheme {
	case "http":
		if port == "" {
			port = "80"
		}
		return t.dialer.DialContext(ctx, "tcp", net.JoinHostPort(u.Hostname(), port))
	case "https":
		if port == "" {
			port = "443"
		}
		d := &tls.Dialer{NetDialer: t.dialer, Config: &tls.Config{ServerName: u.Hostname()}}
		return d.DialContext(ctx, "tcp", net.JoinHostPort(u.Hostname(), port))
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q in %s", u.Scheme, u)
	}
}

// closeWhenDone closes conn if ctx finishes before the returned function is called, which
// unblocks any pending read or write.
func closeWhenDone(ctx context.Context, conn net.Conn) func() {
	finished := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-finished:
		}
	}()
	return func() { close(finished) }
}
