package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// HTTPTransport sends requests with a net/http Client.
type HTTPTransport struct {
	client  *http.Client
	headers http.Header
}

// NewHTTPTransport creates an HTTPTransport. A nil client means a Client with the default
// timeout; nil headers means DefaultHeaders().
func NewHTTPTransport(client *http.Client, headers http.Header) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if headers == nil {
		headers = DefaultHeaders()
	}
	return &HTTPTransport{client: client, headers: headers.Clone()}
}

func (t *HTTPTransport) Send(ctx context.Context, method, url string, body interface{}) *Result {
	data, err := encodeBody(body)
	if err != nil {
		return failure(err)
	}
	var reader io.Reader
	if data != nil {
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return failure(err)
	}
	applyHeaders(req.Header, t.headers, data != nil)

	resp, err := t.client.Do(req)
	if err != nil {
		return failure(err)
	}
	defer resp.Body.Close()
	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(err)
	}
	return NewResult(resp.StatusCode, string(respData))
}
