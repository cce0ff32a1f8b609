package shoptests

import (
	"context"
	"encoding/json"

	"github.com/myproject/shop-api-tests/framework"
	"github.com/myproject/shop-api-tests/logging"
	"github.com/myproject/shop-api-tests/transport"
)

const (
	testShopBase  = "http://shops.example/api/v2"
	testOrderBase = "http://orders.example/api/v1"
)

type fakeResponse struct {
	status int
	body   string
}

type fakeCall struct {
	Method string
	URL    string
	Body   string
}

// fakeTransport answers from a fixed table keyed by method and URL, and records every call.
// Anything not in the table gets a 404.
type fakeTransport struct {
	responses map[string]fakeResponse
	calls     []fakeCall
	onSend    func(call fakeCall)
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{responses: make(map[string]fakeResponse)}
}

func (f *fakeTransport) on(method, url string, status int, body string) *fakeTransport {
	f.responses[method+" "+url] = fakeResponse{status: status, body: body}
	return f
}

func (f *fakeTransport) Send(ctx context.Context, method, url string, body interface{}) *transport.Result {
	call := fakeCall{Method: method, URL: url}
	if body != nil {
		data, _ := json.Marshal(body)
		call.Body = string(data)
	}
	f.calls = append(f.calls, call)
	if f.onSend != nil {
		f.onSend(call)
	}
	resp, ok := f.responses[method+" "+url]
	if !ok {
		return transport.NewResult(404, `{"error":"not found"}`)
	}
	return transport.NewResult(resp.status, resp.body)
}

func (f *fakeTransport) requests() []string {
	var ret []string
	for _, c := range f.calls {
		ret = append(ret, c.Method+" "+c.URL)
	}
	return ret
}

func (f *fakeTransport) callTo(method, url string) (fakeCall, bool) {
	for _, c := range f.calls {
		if c.Method == method && c.URL == url {
			return c, true
		}
	}
	return fakeCall{}, false
}

// happyPathTransport answers every request of the default scenario successfully.
func happyPathTransport() *fakeTransport {
	return newFakeTransport().
		on("POST", testShopBase+"/shops", 201, `{"ID":42,"name":"Python Test Shop"}`).
		on("GET", testShopBase+"/shops", 200, `[{"ID":41},{"ID":42}]`).
		on("GET", testShopBase+"/shops/42", 200, `{"ID":42,"name":"Python Test Shop"}`).
		on("PATCH", testShopBase+"/shops/42", 200, `{"ID":42,"name":"Updated Python Test Shop"}`).
		on("POST", testShopBase+"/shops/42/products", 201, `{"ID":5,"name":"Python Test Product"}`).
		on("GET", testShopBase+"/shops/42/products", 200, `[{"ID":5}]`).
		on("GET", testShopBase+"/shops/42/products/search?name=Python", 200, `[{"ID":5}]`).
		on("GET", testShopBase+"/products/5", 200, `{"ID":5,"name":"Python Test Product"}`).
		on("PATCH", testShopBase+"/products/5", 200, `{"ID":5,"name":"Updated Python Test Product"}`).
		on("POST", testOrderBase+"/orders", 201, `{"ID":7,"status":"pending"}`).
		on("GET", testOrderBase+"/orders", 200, `[]`).
		on("GET", testOrderBase+"/orders/7", 200, `{"ID":7,"status":"pending"}`).
		on("PATCH", testOrderBase+"/orders/7/status", 200, `{"ID":7,"status":"shipped"}`)
}

func testConfig(tr transport.Transport, logger logging.Logger) Config {
	return Config{
		ShopBaseURL:  testShopBase,
		OrderBaseURL: testOrderBase,
		Transport:    tr,
		Headers:      transport.DefaultHeaders(),
		Fixtures:     DefaultFixtures(),
		Logger:       logger,
	}
}

// runSteps gives action a root T, as RunScenario would, without running the scenario itself.
func runSteps(config Config, action func(st *T)) (*CreatedIDs, framework.Results) {
	env := &environment{config: config, created: NewCreatedIDs()}
	results := framework.Run(context.Background(), config.Filter, newStepReporter(config), func(c *framework.Context) {
		action(&T{context: c, env: env})
	})
	return env.created, results
}
