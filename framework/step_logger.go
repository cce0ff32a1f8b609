package framework

type StepLogger interface {
	StepStarted(id StepID)
	StepError(id StepID, err error)
	StepFinished(id StepID, failed bool, debugOutput CapturedOutput)
	StepSkipped(id StepID, reason string)
}

type nullStepLogger struct{}

func (n nullStepLogger) StepStarted(StepID)                        {}
func (n nullStepLogger) StepError(StepID, error)                   {}
func (n nullStepLogger) StepFinished(StepID, bool, CapturedOutput) {}
func (n nullStepLogger) StepSkipped(StepID, string)                {}
