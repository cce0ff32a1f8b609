package framework

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var errStepFailedWithoutMessage = errors.New("step failed with no failure message")

type Results struct {
	Steps    []StepResult
	Failures []StepResult
	Skipped  []StepResult
}

type StepResult struct {
	StepID  StepID
	Errors  []error
	Failed  bool
	Skipped bool
}

func (r *Results) add(result StepResult) {
	r.Steps = append(r.Steps, result)
	switch {
	case result.Skipped:
		r.Skipped = append(r.Skipped, result)
	case result.Failed:
		r.Failures = append(r.Failures, result)
	}
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type StepID struct {
	Path []string
}

func (s StepID) String() string {
	return strings.Join(s.Path, "/")
}

type StepFailure struct {
	ID  StepID
	Err error
}

func (f StepFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a short tally of the run, followed by every failure.
func PrintResults(w io.Writer, results Results) {
	ran := len(results.Steps) - len(results.Skipped)
	fmt.Fprintf(w, "Steps: %d run, %d failed, %d skipped\n", ran, len(results.Failures), len(results.Skipped))
	for _, f := range results.Failures {
		for _, err := range f.Errors {
			fmt.Fprintf(w, "  %s\n", StepFailure{ID: f.StepID, Err: err})
		}
	}
}
