package framework

import (
	"context"
	"fmt"
)

type environment struct {
	ctx        context.Context
	results    Results
	stepLogger StepLogger
	filter     Filter
}

// Context tracks the state of one step, or of the whole run for the root Context.
//
// It is similar in spirit to Go's *testing.T: a step can report failures with Errorf, stop
// early with FailNow, and write debug output that the StepLogger receives when the step ends.
type Context struct {
	env         *environment
	id          StepID
	debugLogger CapturingLogger
	failed      bool
	errors      []error
}

// Run executes action with a root Context and returns the results of every step that was
// started with Context.Run.
//
// Steps are not started once ctx is done. Panics other than the ones raised by FailNow are
// not recovered: they propagate to the caller.
func Run(
	ctx context.Context,
	filter Filter,
	stepLogger StepLogger,
	action func(*Context),
) Results {
	if stepLogger == nil {
		stepLogger = nullStepLogger{}
	}
	env := &environment{
		ctx:        ctx,
		filter:     filter,
		stepLogger: stepLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*Context); !ok {
				panic(r)
			}
			c.failed = true
			if len(c.errors) == 0 {
				c.errors = append(c.errors, errStepFailedWithoutMessage)
			}
		}
	}()

	action(c)
}

// ID returns the identifier of the current step.
func (c *Context) ID() StepID {
	return c.id
}

// Ctx returns the context.Context of the run, for blocking operations inside a step.
func (c *Context) Ctx() context.Context {
	return c.env.ctx
}

// Run runs a step. It returns false if the step was not executed, either because it was
// excluded by the filter or because the run has been cancelled.
func (c *Context) Run(name string, action func(*Context)) bool {
	path := make([]string, 0, len(c.id.Path)+1)
	id := StepID{Path: append(append(path, c.id.Path...), name)}

	if c.env.ctx.Err() != nil {
		return false
	}
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.stepLogger.StepSkipped(id, "excluded by filter parameters")
		c.env.results.add(StepResult{StepID: id, Skipped: true})
		return false
	}

	c.env.stepLogger.StepStarted(id)
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	c.env.results.add(StepResult{StepID: id, Errors: c1.errors, Failed: c1.failed})
	c.env.stepLogger.StepFinished(id, c1.failed, c1.debugLogger.Output())
	return true
}

// Errorf marks the step as failed and reports the error to the StepLogger. It does not stop the step.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.stepLogger.StepError(c.id, err)
}

// FailNow marks the step as failed and stops it immediately.
func (c *Context) FailNow() {
	panic(c)
}

// Failed reports whether the step has failed so far.
func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
