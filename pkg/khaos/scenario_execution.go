package khaos

import (
	"errors"

	"github.com/devicelab-dev/khaos/pkg/core"
	"github.com/devicelab-dev/khaos/pkg/format"
)

// ScenarioExecution runs one scenario: its set up blocks, its body and
// every clean up block, then writes the step log.
type ScenarioExecution struct {
	steps StepExecution
}

// NewScenarioExecution returns an execution with an empty step log.
func NewScenarioExecution() *ScenarioExecution {
	return &ScenarioExecution{}
}

// Execute runs the scenario and returns its result. Clean up always runs;
// a clean up failure makes the result ERROR.
func (e *ScenarioExecution) Execute(w format.Writer, setup []SetUpBlock, cleanup []CleanUpBlock, body ScenarioBlock) core.ScenarioResult {
	scope := scenarioScope{steps: &e.steps}

	result := core.ResultOf(run(func() {
		for _, block := range setup {
			if block != nil {
				block(scope)
			}
		}
		if body != nil {
			body(scope)
		}
	}))

	if err := runCleanUp(&e.steps, cleanup); err != nil {
		result = core.Errored(err)
	}

	e.steps.Flush(w)
	return result
}

// Steps returns the steps recorded so far.
func (e *ScenarioExecution) Steps() []core.Step {
	return e.steps.Steps()
}

// runCleanUp runs every block even when an earlier one fails. The returned
// error carries the user's causes.
func runCleanUp(steps *StepExecution, cleanup []CleanUpBlock) error {
	scope := thenScope{steps: steps}

	var errs []error
	for _, block := range cleanup {
		if block == nil {
			continue
		}
		if err := run(func() { block(scope) }); err != nil {
			errs = append(errs, causeOf(err))
		}
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Join(errs...)
	}
}

func causeOf(err error) error {
	var stepErr *core.StepError
	if errors.As(err, &stepErr) && stepErr.Result.Cause != nil {
		return stepErr.Result.Cause
	}
	return err
}
