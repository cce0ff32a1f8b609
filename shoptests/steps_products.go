package shoptests

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/myproject/shop-api-tests/logging"
	"github.com/myproject/shop-api-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// CreateProduct creates the fixture product in a shop. It yields the product's ID, or false if
// none was created.
func CreateProduct(t *T, shopID int) (int, bool) {
	return t.createStep("products/create", fmt.Sprintf("Creating Product in Shop %d", shopID), KindProduct, "Product",
		t.shopEndpoint(fmt.Sprintf("/shops/%d/products", shopID)), t.Fixtures().Product)
}

func ListProducts(t *T, shopID int) (ldvalue.Value, bool) {
	return t.valueStep("products/list", fmt.Sprintf("Listing Products in Shop %d", shopID), func(t *T) (ldvalue.Value, bool) {
		v, ok := t.request(http.MethodGet, t.shopEndpoint(fmt.Sprintf("/shops/%d/products", shopID)), nil)
		if ok && !v.IsNull() {
			t.log(logging.Success, "Found %d products", countOf(v))
		}
		return v, ok
	})
}

func SearchProduct(t *T, shopID int, name string) (ldvalue.Value, bool) {
	header := fmt.Sprintf("Searching Product: %s in Shop %d", name, shopID)
	return t.valueStep("products/search", header, func(t *T) (ldvalue.Value, bool) {
		path := fmt.Sprintf("/shops/%d/products/search?name=%s", shopID, url.QueryEscape(name))
		v, ok := t.request(http.MethodGet, t.shopEndpoint(path), nil)
		if ok && !v.IsNull() {
			t.log(logging.Success, "Search completed")
		}
		return v, ok
	})
}

func GetProduct(t *T, productID int) (ldvalue.Value, bool) {
	return t.valueStep("products/get", fmt.Sprintf("Getting Product %d", productID), func(t *T) (ldvalue.Value, bool) {
		v, ok := t.request(http.MethodGet, t.shopEndpoint(fmt.Sprintf("/products/%d", productID)), nil)
		if ok && !v.IsNull() {
			t.log(logging.Success, "Product name: %s", v.GetByKey(servicedef.FieldName).StringValue())
		}
		return v, ok
	})
}

func UpdateProduct(t *T, productID int) (ldvalue.Value, bool) {
	return t.valueStep("products/update", fmt.Sprintf("Updating Product %d", productID), func(t *T) (ldvalue.Value, bool) {
		return t.request(http.MethodPatch, t.shopEndpoint(fmt.Sprintf("/products/%d", productID)), t.Fixtures().ProductUpdate)
	})
}

func DeleteProduct(t *T, productID int) (ldvalue.Value, bool) {
	return t.valueStep("products/delete", fmt.Sprintf("Deleting Product %d", productID), func(t *T) (ldvalue.Value, bool) {
		return t.request(http.MethodDelete, t.shopEndpoint(fmt.Sprintf("/products/%d", productID)), nil)
	})
}
