package shoptests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/myproject/shop-api-tests/logging"
	"github.com/myproject/shop-api-tests/transport"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendCall struct {
	method string
	path   string
	body   string
}

// fakeShopAPI is an in-memory implementation of the shop and order services, mounted under
// the same prefixes as the real ones.
type fakeShopAPI struct {
	lock          sync.Mutex
	nextShopID    int
	nextProductID int
	nextOrderID   int
	shops         map[int]map[string]interface{}
	products      map[int]map[string]interface{}
	orders        map[int]map[string]interface{}
	calls         []backendCall
}

func newFakeShopAPI() *fakeShopAPI {
	return &fakeShopAPI{
		nextShopID:    42,
		nextProductID: 5,
		nextOrderID:   7,
		shops:         make(map[int]map[string]interface{}),
		products:      make(map[int]map[string]interface{}),
		orders:        make(map[int]map[string]interface{}),
	}
}

func (a *fakeShopAPI) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(a.record)
	r.Route("/api/v2", func(r chi.Router) {
		r.Post("/shops", a.create(&a.nextShopID, func() map[int]map[string]interface{} { return a.shops }))
		r.Get("/shops", a.list(func() map[int]map[string]interface{} { return a.shops }))
		r.Get("/shops/{id}", a.get(func() map[int]map[string]interface{} { return a.shops }))
		r.Patch("/shops/{id}", a.update(func() map[int]map[string]interface{} { return a.shops }))
		r.Delete("/shops/{id}", a.delete(func() map[int]map[string]interface{} { return a.shops }))
		r.Post("/shops/{id}/products", a.create(&a.nextProductID, func() map[int]map[string]interface{} { return a.products }))
		r.Get("/shops/{id}/products", a.list(func() map[int]map[string]interface{} { return a.products }))
		r.Get("/shops/{id}/products/search", a.searchProducts)
		r.Get("/products/{id}", a.get(func() map[int]map[string]interface{} { return a.products }))
		r.Patch("/products/{id}", a.update(func() map[int]map[string]interface{} { return a.products }))
		r.Delete("/products/{id}", a.delete(func() map[int]map[string]interface{} { return a.products }))
	})
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/orders", a.create(&a.nextOrderID, func() map[int]map[string]interface{} { return a.orders }))
		r.Get("/orders", a.list(func() map[int]map[string]interface{} { return a.orders }))
		r.Get("/orders/{id}", a.get(func() map[int]map[string]interface{} { return a.orders }))
		r.Patch("/orders/{id}/status", a.update(func() map[int]map[string]interface{} { return a.orders }))
		r.Delete("/orders/{id}", a.delete(func() map[int]map[string]interface{} { return a.orders }))
	})
	return r
}

func (a *fakeShopAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		a.lock.Lock()
		a.calls = append(a.calls, backendCall{method: r.Method, path: r.URL.RequestURI(), body: string(body)})
		a.lock.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (a *fakeShopAPI) callTo(method, path string) (backendCall, bool) {
	a.lock.Lock()
	defer a.lock.Unlock()
	for _, c := range a.calls {
		if c.method == method && c.path == path {
			return c, true
		}
	}
	return backendCall{}, false
}

func (a *fakeShopAPI) create(nextID *int, table func() map[int]map[string]interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
			return
		}
		a.lock.Lock()
		id := *nextID
		*nextID++
		fields["ID"] = id
		table()[id] = fields
		a.lock.Unlock()
		writeJSON(w, http.StatusCreated, fields)
	}
}

func (a *fakeShopAPI) list(table func() map[int]map[string]interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.lock.Lock()
		items := make([]map[string]interface{}, 0, len(table()))
		for _, item := range table() {
			items = append(items, item)
		}
		a.lock.Unlock()
		writeJSON(w, http.StatusOK, items)
	}
}

func (a *fakeShopAPI) searchProducts(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	a.lock.Lock()
	items := make([]map[string]interface{}, 0)
	for _, item := range a.products {
		if n, _ := item["name"].(string); name != "" && strings.Contains(strings.ToLower(n), strings.ToLower(name)) {
			items = append(items, item)
		}
	}
	a.lock.Unlock()
	writeJSON(w, http.StatusOK, items)
}

func (a *fakeShopAPI) get(table func() map[int]map[string]interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.lock.Lock()
		item, ok := a.lookup(r, table())
		a.lock.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (a *fakeShopAPI) update(table func() map[int]map[string]interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
			return
		}
		a.lock.Lock()
		item, ok := a.lookup(r, table())
		if ok {
			for k, v := range fields {
				item[k] = v
			}
		}
		a.lock.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (a *fakeShopAPI) delete(table func() map[int]map[string]interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.lock.Lock()
		_, ok := a.lookup(r, table())
		if ok {
			id, _ := strconv.Atoi(chi.URLParam(r, "id"))
			delete(table(), id)
		}
		a.lock.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "deleted"})
	}
}

func (a *fakeShopAPI) lookup(r *http.Request, table map[int]map[string]interface{}) (map[string]interface{}, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return nil, false
	}
	item, ok := table[id]
	return item, ok
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestScenarioAgainstInMemoryBackend(t *testing.T) {
	for _, kind := range transport.AllKinds {
		t.Run(string(kind), func(t *testing.T) {
			api := newFakeShopAPI()
			server := httptest.NewServer(api.Routes())
			defer server.Close()

			tr, err := transport.New(kind, transport.Options{Timeout: 5 * time.Second})
			require.NoError(t, err)
			logger := &logging.CapturingLogger{}
			config := Config{
				ShopBaseURL:  server.URL + "/api/v2",
				OrderBaseURL: server.URL + "/api/v1",
				Transport:    tr,
				Headers:      transport.DefaultHeaders(),
				Fixtures:     DefaultFixtures(),
				Logger:       logger,
				Cleanup:      true,
			}

			report, err := RunScenario(context.Background(), config)
			require.NoError(t, err)

			assert.Empty(t, logger.Messages(logging.Error))
			assert.True(t, report.Results.OK())
			shopID, _ := report.Created.Get(KindShop)
			assert.Equal(t, 42, shopID)

			_, found := api.callTo("GET", "/api/v2/shops/42")
			assert.True(t, found)
			_, found = api.callTo("GET", "/api/v2/shops/42/products/search?name=Python")
			assert.True(t, found)
			call, found := api.callTo("PATCH", "/api/v1/orders/7/status")
			require.True(t, found)
			assert.JSONEq(t, `{"status":"shipped"}`, call.body)

			assert.Contains(t, logger.Messages(logging.Success), "Found 1 products")
			assert.Contains(t, logger.Messages(logging.Success), "Shop name: Python Test Shop")
			_, found = api.callTo("DELETE", "/api/v2/shops/42")
			assert.True(t, found)
			assert.Empty(t, api.shops)
		})
	}
}
