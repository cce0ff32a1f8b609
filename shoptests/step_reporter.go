package shoptests

import (
	"fmt"
	"io"
	"strings"

	"github.com/myproject/shop-api-tests/framework"
	"github.com/myproject/shop-api-tests/logging"
)

// stepReporter is the framework.StepLogger of a run. Step errors become ERROR lines; debug
// output is dumped only when the configuration asks for it.
type stepReporter struct {
	logger               logging.Logger
	debugOutput          io.Writer
	debugOutputOnFailure bool
	debugOutputOnSuccess bool
}

func newStepReporter(config Config) *stepReporter {
	return &stepReporter{
		logger:               config.Logger,
		debugOutput:          config.Output,
		debugOutputOnFailure: config.DebugOutputOnFailure,
		debugOutputOnSuccess: config.DebugOutputOnSuccess,
	}
}

func (r *stepReporter) StepStarted(id framework.StepID) {
	if r.debugOutputOnSuccess {
		fmt.Fprintf(r.debugOutput, "[%s]\n", id)
	}
}

func (r *stepReporter) StepError(id framework.StepID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		r.logger.Log(logging.Error, "%s", line)
	}
}

func (r *stepReporter) StepFinished(id framework.StepID, failed bool, debugOutput framework.CapturedOutput) {
	if len(debugOutput) > 0 &&
		((failed && r.debugOutputOnFailure) || (!failed && r.debugOutputOnSuccess)) {
		debugOutput.Dump(r.debugOutput, "    DEBUG ")
	}
}

func (r *stepReporter) StepSkipped(id framework.StepID, reason string) {
	if reason == "" {
		r.logger.Log(logging.Warning, "Skipped: %s", id)
	} else {
		r.logger.Log(logging.Warning, "Skipped: %s (%s)", id, reason)
	}
}
