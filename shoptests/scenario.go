package shoptests

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/myproject/shop-api-tests/framework"
	"github.com/myproject/shop-api-tests/logging"
)

const bannerWidth = 50

// Report is what a run leaves behind.
type Report struct {
	Created *CreatedIDs
	Results framework.Results
}

// RunScenario runs the fixed sequence of steps against the service.
//
// Shop and product steps only run while the identifiers they depend on keep being created;
// the order steps run regardless of how the shop branch went. Failed steps do not make the
// run fail. The only error returned is the context's, if it was cancelled, in which case no
// step is started after the cancellation and no summary is printed.
func RunScenario(ctx context.Context, config Config) (Report, error) {
	if config.Logger == nil {
		config.Logger = logging.NullLogger()
	}
	if config.Output == nil {
		config.Output = io.Discard
	}
	env := &environment{config: config, created: NewCreatedIDs()}

	printBanner(config.Output, "API Integration Tests")

	results := framework.Run(ctx, config.Filter, newStepReporter(config), func(c *framework.Context) {
		t := &T{context: c, env: env}
		runShopSteps(t)
		runOrderSteps(t)
		if config.Cleanup {
			runCleanupSteps(t)
		}
	})
	report := Report{Created: env.created, Results: results}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	printBanner(config.Output, "All Tests Completed")
	fmt.Fprintf(config.Output, "\nCreated IDs: %s\n", env.created)
	return report, nil
}

func runShopSteps(t *T) {
	shopID, ok := CreateShop(t)
	if !ok {
		return
	}
	ListShops(t)
	GetShop(t, shopID)
	UpdateShop(t, shopID)

	productID, ok := CreateProduct(t, shopID)
	if !ok {
		return
	}
	ListProducts(t, shopID)
	SearchProduct(t, shopID, t.Fixtures().ProductSearch)
	GetProduct(t, productID)
	UpdateProduct(t, productID)
	// the product is kept so that it is still there for anything order-related
}

func runOrderSteps(t *T) {
	orderID, ok := CreateOrder(t)
	if !ok {
		return
	}
	ListOrders(t)
	GetOrder(t, orderID)
	UpdateOrderStatus(t, orderID)
}

func runCleanupSteps(t *T) {
	if id, ok := t.CreatedIDs().Get(KindProduct); ok {
		DeleteProduct(t, id)
	}
	if id, ok := t.CreatedIDs().Get(KindOrder); ok {
		DeleteOrder(t, id)
	}
	if id, ok := t.CreatedIDs().Get(KindShop); ok {
		DeleteShop(t, id)
	}
}

func printBanner(w io.Writer, title string) {
	line := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(w, "\n%s\n      %s\n%s\n", line, title, line)
}
