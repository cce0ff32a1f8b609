package main

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/myproject/shop-api-tests/framework"
	"github.com/myproject/shop-api-tests/shoptests"
	"github.com/myproject/shop-api-tests/transport"

	"github.com/joho/godotenv"
)

const (
	envShopURL   = "SHOP_API_URL"
	envOrderURL  = "ORDER_API_URL"
	envTransport = "SHOP_API_TRANSPORT"

	defaultTimeout = 10 * time.Second
)

type commandParams struct {
	shopURL      string
	orderURL     string
	transport    transport.Kind
	timeout      time.Duration
	fixturesFile string
	envFile      string
	filters      framework.RegexFilters
	cleanup      bool
	debug        bool
	debugAll     bool
	noColor      bool
}

// Read parses the command line, printing usage if it is not valid.
func (c *commandParams) Read(args []string) bool {
	if err := c.parse(args, os.Stderr, os.Getenv); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	return true
}

// parse fills in c from args (which start with the program name). Values not given on the
// command line come from the environment, after loading the -env-file if there is one.
func (c *commandParams) parse(args []string, usageOut io.Writer, getenv func(string) string) error {
	var transportName string

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(usageOut)
	fs.StringVar(&c.shopURL, "shop-url", "",
		fmt.Sprintf("base URL of the shop and product API (default $%s or %s)", envShopURL, shoptests.DefaultShopBaseURL))
	fs.StringVar(&c.orderURL, "order-url", "",
		fmt.Sprintf("base URL of the order API (default $%s or %s)", envOrderURL, shoptests.DefaultOrderBaseURL))
	fs.StringVar(&transportName, "transport", "",
		fmt.Sprintf("how to send requests: http or socket (default $%s or %s)", envTransport, transport.KindHTTP))
	fs.DurationVar(&c.timeout, "timeout", defaultTimeout, "timeout for each request")
	fs.StringVar(&c.fixturesFile, "fixtures", "", "YAML file overriding the request payloads")
	fs.StringVar(&c.envFile, "env-file", "", "file of environment variables to load first")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select steps to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select steps not to run")
	fs.BoolVar(&c.cleanup, "cleanup", false, "delete the created product, order and shop at the end")
	fs.BoolVar(&c.debug, "debug", false, "enable debug output for failed steps")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug output for all steps")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if c.envFile != "" {
		if err := godotenv.Load(c.envFile); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
	}
	c.shopURL = firstNonEmpty(c.shopURL, getenv(envShopURL), shoptests.DefaultShopBaseURL)
	c.orderURL = firstNonEmpty(c.orderURL, getenv(envOrderURL), shoptests.DefaultOrderBaseURL)
	c.transport = transport.Kind(firstNonEmpty(transportName, getenv(envTransport), string(transport.KindHTTP)))

	for _, u := range []struct{ flag, value string }{{"shop-url", c.shopURL}, {"order-url", c.orderURL}} {
		if err := validateBaseURL(u.value); err != nil {
			fs.Usage()
			return fmt.Errorf("-%s: %w", u.flag, err)
		}
	}
	if !knownTransport(c.transport) {
		fs.Usage()
		return fmt.Errorf("-transport: unknown transport %q", c.transport)
	}
	if c.timeout <= 0 {
		fs.Usage()
		return fmt.Errorf("-timeout must be positive")
	}
	return nil
}

func validateBaseURL(value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http or https URL", value)
	}
	return nil
}

func knownTransport(kind transport.Kind) bool {
	for _, k := range transport.AllKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
