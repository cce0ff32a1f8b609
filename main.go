package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/myproject/shop-api-tests/framework"
	"github.com/myproject/shop-api-tests/logging"
	"github.com/myproject/shop-api-tests/shoptests"
	"github.com/myproject/shop-api-tests/transport"

	"github.com/fatih/color"
)

type transportFactory func(kind transport.Kind, opts transport.Options) (transport.Transport, error)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	exitCode := run(ctx, params, os.Stdout, transport.New)
	stop()
	os.Exit(exitCode)
}

// run executes one scenario and returns the process exit code: 0 once the scenario has
// completed, whatever its steps did, and 1 if it was interrupted or could not run.
func run(ctx context.Context, params commandParams, out io.Writer, newTransport transportFactory) (exitCode int) {
	logger := logging.NewConsoleLogger(out, !params.noColor && !color.NoColor)

	defer func() {
		if r := recover(); r != nil {
			logger.Log(logging.Error, "Fatal error: %v", r)
			exitCode = 1
		}
	}()

	headers := transport.DefaultHeaders()
	tr, err := newTransport(params.transport, transport.Options{Timeout: params.timeout, Headers: headers})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		return 1
	}

	fixtures := shoptests.DefaultFixtures()
	if params.fixturesFile != "" {
		if fixtures, err = shoptests.LoadFixtures(params.fixturesFile); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
			return 1
		}
	}

	framework.PrintFilterDescription(out, params.filters)

	report, err := shoptests.RunScenario(ctx, shoptests.Config{
		ShopBaseURL:          params.shopURL,
		OrderBaseURL:         params.orderURL,
		Transport:            tr,
		Headers:              headers,
		Fixtures:             fixtures,
		Filter:               params.filters.AsFilter,
		Logger:               logger,
		Output:               out,
		Cleanup:              params.cleanup,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	})
	if err != nil {
		fmt.Fprintln(out)
		logger.Log(logging.Warning, "Tests interrupted by user")
		return 1
	}

	fmt.Fprintln(out)
	framework.PrintResults(out, report.Results)
	return 0
}
