package khaos

import "github.com/devicelab-dev/khaos/pkg/core"

// Each phase gets its own scope type so a block only sees the steps its
// phase allows.

type givenScope struct{ steps *StepExecution }

func (s givenScope) Given(description string) {
	s.steps.executeNoOp(core.KindGiven, description, core.StepAssumed())
}
func (s givenScope) Info(message string)        { s.steps.info(message) }
func (s givenScope) givenSteps() *StepExecution { return s.steps }

type thenScope struct{ steps *StepExecution }

func (s thenScope) Then(description string) {
	s.steps.executeNoOp(core.KindThen, description, core.StepAssumed())
}
func (s thenScope) Info(message string)       { s.steps.info(message) }
func (s thenScope) thenSteps() *StepExecution { return s.steps }

type scenarioScope struct{ steps *StepExecution }

func (s scenarioScope) Given(description string) {
	s.steps.executeNoOp(core.KindGiven, description, core.StepAssumed())
}

func (s scenarioScope) When(description string) {
	s.steps.executeNoOp(core.KindWhen, description, core.StepAssumed())
}

func (s scenarioScope) Then(description string) {
	s.steps.executeNoOp(core.KindThen, description, core.StepAssumed())
}

func (s scenarioScope) Info(message string)        { s.steps.info(message) }
func (s scenarioScope) Pending(reason string)      { s.steps.pending(reason) }
func (s scenarioScope) givenSteps() *StepExecution { return s.steps }
func (s scenarioScope) whenSteps() *StepExecution  { return s.steps }
func (s scenarioScope) thenSteps() *StepExecution  { return s.steps }

func (s *StepExecution) info(message string) {
	s.steps = append(s.steps, core.NewLogStep(message))
}
