package shoptests

import (
	"fmt"
	"net/http"

	"github.com/myproject/shop-api-tests/logging"
	"github.com/myproject/shop-api-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// CreateShop creates the fixture shop. It yields the shop's ID, or false if none was created.
func CreateShop(t *T) (int, bool) {
	return t.createStep("shops/create", "Creating Shop", KindShop, "Shop",
		t.shopEndpoint("/shops"), t.Fixtures().Shop)
}

func ListShops(t *T) (ldvalue.Value, bool) {
	return t.valueStep("shops/list", "Listing Shops", func(t *T) (ldvalue.Value, bool) {
		v, ok := t.request(http.MethodGet, t.shopEndpoint("/shops"), nil)
		if ok && !v.IsNull() {
			t.log(logging.Success, "Found %d shops", countOf(v))
		}
		return v, ok
	})
}

func GetShop(t *T, shopID int) (ldvalue.Value, bool) {
	return t.valueStep("shops/get", fmt.Sprintf("Getting Shop %d", shopID), func(t *T) (ldvalue.Value, bool) {
		v, ok := t.request(http.MethodGet, t.shopEndpoint(fmt.Sprintf("/shops/%d", shopID)), nil)
		if ok && !v.IsNull() {
			t.log(logging.Success, "Shop name: %s", v.GetByKey(servicedef.FieldName).StringValue())
		}
		return v, ok
	})
}

func UpdateShop(t *T, shopID int) (ldvalue.Value, bool) {
	return t.valueStep("shops/update", fmt.Sprintf("Updating Shop %d", shopID), func(t *T) (ldvalue.Value, bool) {
		return t.request(http.MethodPatch, t.shopEndpoint(fmt.Sprintf("/shops/%d", shopID)), t.Fixtures().ShopUpdate)
	})
}

func DeleteShop(t *T, shopID int) (ldvalue.Value, bool) {
	return t.valueStep("shops/delete", fmt.Sprintf("Deleting Shop %d", shopID), func(t *T) (ldvalue.Value, bool) {
		return t.request(http.MethodDelete, t.shopEndpoint(fmt.Sprintf("/shops/%d", shopID)), nil)
	})
}
