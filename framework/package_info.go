// Package framework contains the low-level bookkeeping for running a sequence of steps
// against a remote service, independent of what the steps actually do.
//
// The general model is:
//
// 1. A run is started with Run, which provides a root Context.
//
// 2. Each step is started with Context.Run, which gives it an identifier, lets the run's
// Filter exclude it, and accumulates its success/failure result. A step's Context is similar
// to Go's *testing.T.
//
// 3. Each step has its own debug output that is passed to the StepLogger when the step ends,
// so that it can be shown only when it is useful.
//
// The domain-specific code that knows what is being exercised is responsible for building
// requests, interpreting responses, and deciding which steps depend on which.
package framework
