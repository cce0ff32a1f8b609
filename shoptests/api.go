package shoptests

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/myproject/shop-api-tests/framework"
	"github.com/myproject/shop-api-tests/logging"
	"github.com/myproject/shop-api-tests/servicedef"
	"github.com/myproject/shop-api-tests/transport"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	DefaultShopBaseURL  = "http://localhost:8080/api/v2"
	DefaultOrderBaseURL = "http://localhost:8080/api/v1"
)

// ResourceKind is one of the kinds of entity that the scenario creates.
type ResourceKind string

const (
	KindShop    ResourceKind = "shop"
	KindProduct ResourceKind = "product"
	KindOrder   ResourceKind = "order"
)

// Endpoint identifies where a step sends its request.
type Endpoint struct {
	BaseURL string
	Path    string
}

func (e Endpoint) URL() string {
	return strings.TrimSuffix(e.BaseURL, "/") + e.Path
}

// CreatedIDs records the identifier most recently created for each kind during one run.
type CreatedIDs struct {
	ids map[ResourceKind]int
}

func NewCreatedIDs() *CreatedIDs {
	return &CreatedIDs{ids: make(map[ResourceKind]int)}
}

func (c *CreatedIDs) set(kind ResourceKind, id int) {
	c.ids[kind] = id
}

func (c *CreatedIDs) Get(kind ResourceKind) (int, bool) {
	id, ok := c.ids[kind]
	return id, ok
}

// kindOrder is the order in which the scenario creates entities.
var kindOrder = []ResourceKind{KindShop, KindProduct, KindOrder}

// Kinds returns the kinds that have an identifier, in creation order.
func (c *CreatedIDs) Kinds() []ResourceKind {
	var ret []ResourceKind
	for _, k := range kindOrder {
		if _, ok := c.ids[k]; ok {
			ret = append(ret, k)
		}
	}
	return ret
}

// String renders the identifiers as an indented JSON object, keys in creation order.
func (c *CreatedIDs) String() string {
	kinds := c.Kinds()
	if len(kinds) == 0 {
		return "{}"
	}
	lines := make([]string, 0, len(kinds))
	for _, k := range kinds {
		lines = append(lines, fmt.Sprintf("  %q: %d", k, c.ids[k]))
	}
	return "{\n" + strings.Join(lines, ",\n") + "\n}"
}

// Config is everything a run needs. Transport and Logger are required.
type Config struct {
	ShopBaseURL  string
	OrderBaseURL string
	Transport    transport.Transport

	// Headers are the transport's default headers; they are only used to render debug output.
	Headers http.Header

	Fixtures Fixtures
	Filter   framework.Filter
	Logger   logging.Logger

	// Output receives the banners and the final summary.
	Output io.Writer

	// Cleanup deletes the created product, order and shop at the end of the run.
	Cleanup bool

	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

type environment struct {
	config  Config
	created *CreatedIDs
}

// T is the scope of one step. It wraps the framework's step Context, and carries the
// per-run state that steps share.
type T struct {
	context *framework.Context
	env     *environment
}

// Run runs a step. The header is logged when the step actually starts.
func (t *T) Run(name, header string, action func(*T)) bool {
	return t.context.Run(name, func(c *framework.Context) {
		t1 := &T{context: c, env: t.env}
		t1.log(logging.Info, "\n--- %s ---", header)
		action(t1)
	})
}

func (t *T) Fixtures() Fixtures {
	return t.env.config.Fixtures
}

func (t *T) CreatedIDs() *CreatedIDs {
	return t.env.created
}

func (t *T) log(level logging.Level, message string, args ...interface{}) {
	t.env.config.Logger.Log(level, message, args...)
}

func (t *T) shopEndpoint(path string) Endpoint {
	return Endpoint{BaseURL: t.env.config.ShopBaseURL, Path: path}
}

func (t *T) orderEndpoint(path string) Endpoint {
	return Endpoint{BaseURL: t.env.config.OrderBaseURL, Path: path}
}

// request is the one path by which steps talk to the service. It returns the parsed body and
// true for a 200 or 201 response; otherwise it fails the step and returns false. A successful
// response without a JSON body gives ldvalue.Null().
func (t *T) request(method string, e Endpoint, body interface{}) (ldvalue.Value, bool) {
	url := e.URL()
	t.context.Debug("%s", transport.CurlCommand(method, url, t.env.config.Headers, body))

	result := t.env.config.Transport.Send(t.context.Ctx(), method, url, body)
	t.context.Debug("response: %s", result)

	if !result.OK() {
		t.context.Errorf("%s %s -> %d: %s", method, e.Path, result.StatusCode, result.Body)
		return ldvalue.Null(), false
	}
	t.log(logging.Success, "%s %s -> %d", method, e.Path, result.StatusCode)
	return result.JSON(), true
}

// recordCreated takes the identifier out of a create response.
func (t *T) recordCreated(kind ResourceKind, label string, value ldvalue.Value) (int, bool) {
	idValue := value.GetByKey(servicedef.FieldID)
	if !idValue.IsInt() {
		t.context.Errorf("%s response did not include an integer %q field: %s", kind, servicedef.FieldID, value.JSONString())
		return 0, false
	}
	id := idValue.IntValue()
	t.env.created.set(kind, id)
	t.log(logging.Success, "%s created with ID: %d", label, id)
	return id, true
}

// valueStep runs a step whose result is the parsed response.
func (t *T) valueStep(name, header string, action func(*T) (ldvalue.Value, bool)) (value ldvalue.Value, ok bool) {
	value = ldvalue.Null()
	t.Run(name, header, func(t *T) {
		value, ok = action(t)
	})
	return value, ok
}

// createStep runs a step that POSTs body to e and yields the new entity's identifier.
func (t *T) createStep(name, header string, kind ResourceKind, label string,
	e Endpoint, body interface{}) (id int, ok bool) {
	t.Run(name, header, func(t *T) {
		value, done := t.request(http.MethodPost, e, body)
		if !done {
			return
		}
		id, ok = t.recordCreated(kind, label, value)
	})
	return id, ok
}

func countOf(value ldvalue.Value) int {
	if value.Type() == ldvalue.ArrayType {
		return value.Count()
	}
	return 1
}
