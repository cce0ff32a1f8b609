// Package transport sends the JSON requests of a scenario run and normalizes what comes back.
//
// Every implementation of Transport reports transport-level problems (DNS failures, refused
// connections, timeouts, cancellation) as a Result with StatusCode 0 rather than as an error,
// so that callers only ever have to look at the Result.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const defaultTimeout = time.Second * 10

// Transport performs one blocking request. A nil body means that no payload is sent;
// otherwise body is encoded as JSON.
type Transport interface {
	Send(ctx context.Context, method, url string, body interface{}) *Result
}

// Result is the normalized outcome of a request.
type Result struct {
	// StatusCode is the HTTP status, or 0 if the exchange could not be completed.
	StatusCode int

	// Body is the raw response text, or the error message if StatusCode is 0.
	Body string

	parseOnce sync.Once
	parsed    ldvalue.Value
}

func NewResult(statusCode int, body string) *Result {
	return &Result{StatusCode: statusCode, Body: body}
}

func failure(err error) *Result {
	return &Result{Body: err.Error()}
}

// OK is true for the statuses the shop API uses to report success.
func (r *Result) OK() bool {
	return r.StatusCode == http.StatusOK || r.StatusCode == http.StatusCreated
}

func (r *Result) TransportFailed() bool {
	return r.StatusCode == 0
}

// JSON parses the body on first use. An empty or malformed body yields ldvalue.Null().
func (r *Result) JSON() ldvalue.Value {
	r.parseOnce.Do(func() {
		if r.TransportFailed() || strings.TrimSpace(r.Body) == "" {
			r.parsed = ldvalue.Null()
			return
		}
		r.parsed = ldvalue.Parse([]byte(r.Body))
	})
	return r.parsed
}

func (r *Result) String() string {
	if r.TransportFailed() {
		return "transport failure: " + r.Body
	}
	return fmt.Sprintf("%d %s", r.StatusCode, r.Body)
}

// Kind names a Transport implementation.
type Kind string

const (
	KindHTTP   Kind = "http"
	KindSocket Kind = "socket"
)

// AllKinds lists the accepted values of Kind, default first.
var AllKinds = []Kind{KindHTTP, KindSocket}

type Options struct {
	// Timeout bounds each request. Zero means a default of 10 seconds.
	Timeout time.Duration

	// Headers are sent with every request. Nil means DefaultHeaders().
	Headers http.Header
}

// DefaultHeaders returns the headers the shop API expects on every request.
func DefaultHeaders() http.Header {
	h := make(http.Header)
	h.Set("Accept", "application/json")
	h.Set("Content-Type", "application/json")
	return h
}

// New creates the Transport implementation named by kind. An empty kind selects KindHTTP.
func New(kind Kind, opts Options) (Transport, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Headers == nil {
		opts.Headers = DefaultHeaders()
	}
	switch kind {
	case "", KindHTTP:
		return NewHTTPTransport(&http.Client{Timeout: opts.Timeout}, opts.Headers), nil
	case KindSocket:
		return NewSocketTransport(opts.Timeout, opts.Headers), nil
	default:
		return nil, fmt.Errorf("unknown transport %q (expected one of %s)", kind, kindList())
	}
}

func kindList() string {
	var ss []string
	for _, k := range AllKinds {
		ss = append(ss, string(k))
	}
	return strings.Join(ss, ", ")
}

func encodeBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return data, nil
}

func applyHeaders(dest http.Header, defaults http.Header, hasBody bool) {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range defaults[k] {
			dest.Add(k, v)
		}
	}
	if hasBody {
		dest.Set("Content-Type", "application/json")
	}
}
