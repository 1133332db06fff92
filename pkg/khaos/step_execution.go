package khaos

import (
	"github.com/devicelab-dev/khaos/pkg/core"
	"github.com/devicelab-dev/khaos/pkg/format"
)

const pendingDescription = "This test is not yet completely implemented."

// StepExecution is the ordered step log of one scenario or feature
// lifecycle run. It is owned by a single run and is not safe for concurrent
// use.
type StepExecution struct {
	steps []core.Step
}

type expectation struct {
	value any
	set   bool
}

func (s *StepExecution) add(kind core.StepKind, msg core.Message) {
	s.steps = append(s.steps, core.Step{Kind: kind, Message: msg})
}

// Steps returns a copy of the recorded steps.
func (s *StepExecution) Steps() []core.Step {
	out := make([]core.Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Len returns the number of recorded steps.
func (s *StepExecution) Len() int {
	return len(s.steps)
}

// executeNoOp records a step that performs no work.
func (s *StepExecution) executeNoOp(kind core.StepKind, description string, result core.StepResult) {
	s.add(kind, core.Message{Description: description, Result: result})
}

// executeStep runs action and records the step whether or not it succeeds.
// A failing action records onErr(cause) and aborts the enclosing block.
func executeStep[T any](s *StepExecution, kind core.StepKind, description string, exp expectation, showValue bool, onErr core.ResultFactory, action func() (T, error)) T {
	msg := core.Message{Description: description, Expected: exp.value, HasExpected: exp.set}

	value, err := protect(action)
	if err != nil {
		msg.Result = onErr(err)
		s.add(kind, msg)
		panic(&core.StepError{Step: kind, Description: description, Result: msg.Result})
	}

	msg.Result = core.StepPassed()
	if showValue {
		msg.Evaluated = value
		msg.HasEvaluated = true
	}
	s.add(kind, msg)
	return value
}

// executeDeferred records a DEFERRED step and returns action unrun.
func executeDeferred[T any](s *StepExecution, kind core.StepKind, description string, action func() (T, error)) func() (T, error) {
	s.add(kind, core.Message{Description: description, Result: core.StepDeferred()})
	return func() (T, error) {
		return protect(action)
	}
}

func (s *StepExecution) pending(reason string) {
	executeStep(s, core.KindPending, pendingDescription, expectation{}, false, core.StepPending, func() (struct{}, error) {
		return struct{}{}, &core.PendingError{Reason: reason}
	})
}

// Flush writes the step log to w and clears it. A label is printed each
// time the step kind changes between Given, When and Then.
func (s *StepExecution) Flush(w format.Writer) {
	var prev core.StepKind
	labelled := false

	for _, step := range s.steps {
		switch step.Kind {
		case core.KindGiven, core.KindWhen, core.KindThen:
			if !labelled || prev != step.Kind {
				w.PrintStepLabel(step.Kind.Label())
			}
			w.PrintStep(step.Message)
			prev = step.Kind
			labelled = true
		case core.KindInfo:
			w.PrintStepMessage(step.Message.Description)
		case core.KindPending:
			w.PrintStepMessage("Scenario pending: " + step.Message.Description)
		}
	}

	w.PrintLine()
	s.Clear()
}

// Clear discards the recorded steps.
func (s *StepExecution) Clear() {
	s.steps = nil
}

// protect runs action, converting a panic into the returned error.
func protect[T any](action func() (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = core.FromPanic(r)
		}
	}()
	return action()
}

// run calls block, converting a panic into the returned error.
func run(block func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = core.FromPanic(r)
		}
	}()
	block()
	return nil
}
