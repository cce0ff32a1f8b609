package shoptests

import (
	"fmt"
	"net/http"

	"github.com/myproject/shop-api-tests/logging"
	"github.com/myproject/shop-api-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// CreateOrder creates the fixture order. Orders do not reference the shop or product created
// earlier in the run. It yields the order's ID, or false if none was created.
func CreateOrder(t *T) (int, bool) {
	return t.createStep("orders/create", "Creating Order", KindOrder, "Order",
		t.orderEndpoint("/orders"), t.Fixtures().Order)
}

func ListOrders(t *T) (ldvalue.Value, bool) {
	return t.valueStep("orders/list", "Listing Orders", func(t *T) (ldvalue.Value, bool) {
		v, ok := t.request(http.MethodGet, t.orderEndpoint("/orders"), nil)
		if ok && !v.IsNull() {
			t.log(logging.Success, "Found %d orders", countOf(v))
		}
		return v, ok
	})
}

func GetOrder(t *T, orderID int) (ldvalue.Value, bool) {
	return t.valueStep("orders/get", fmt.Sprintf("Getting Order %d", orderID), func(t *T) (ldvalue.Value, bool) {
		v, ok := t.request(http.MethodGet, t.orderEndpoint(fmt.Sprintf("/orders/%d", orderID)), nil)
		if ok && !v.IsNull() {
			t.log(logging.Success, "Order status: %s", v.GetByKey(servicedef.FieldStatus).StringValue())
		}
		return v, ok
	})
}

func UpdateOrderStatus(t *T, orderID int) (ldvalue.Value, bool) {
	header := fmt.Sprintf("Updating Order %d Status", orderID)
	return t.valueStep("orders/update-status", header, func(t *T) (ldvalue.Value, bool) {
		return t.request(http.MethodPatch, t.orderEndpoint(fmt.Sprintf("/orders/%d/status", orderID)), t.Fixtures().OrderStatus)
	})
}

func DeleteOrder(t *T, orderID int) (ldvalue.Value, bool) {
	return t.valueStep("orders/delete", fmt.Sprintf("Deleting Order %d", orderID), func(t *T) (ldvalue.Value, bool) {
		return t.request(http.MethodDelete, t.orderEndpoint(fmt.Sprintf("/orders/%d", orderID)), nil)
	})
}
