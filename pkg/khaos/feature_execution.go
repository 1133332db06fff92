package khaos

import (
	"github.com/devicelab-dev/khaos/pkg/core"
	"github.com/devicelab-dev/khaos/pkg/format"
)

const (
	setUpBanner   = "Set Up"
	cleanUpBanner = "Clean Up"
)

// FeatureExecution runs the one-time lifecycle of a feature around its
// scenarios.
type FeatureExecution struct {
	steps StepExecution
}

// NewFeatureExecution returns an execution with an empty step log.
func NewFeatureExecution() *FeatureExecution {
	return &FeatureExecution{}
}

// Execute runs the feature set up, then scenarios, then the feature clean
// up. scenarios is not called when set up fails. Clean up runs regardless
// of the outcome and a clean up failure makes the result ERROR.
func (e *FeatureExecution) Execute(w format.Writer, setup []SetUpBlock, cleanup []CleanUpBlock, scenarios func()) core.ScenarioResult {
	result := core.Passed()

	if len(setup) > 0 {
		w.PrintFeatureLifecycleBanner(setUpBanner)
		scope := givenScope{steps: &e.steps}
		err := run(func() {
			for _, block := range setup {
				if block != nil {
					block(scope)
				}
			}
		})
		e.steps.Flush(w)
		if err != nil {
			result = setUpResult(err)
		}
	}

	if result.IsSuccess() && scenarios != nil {
		if err := run(scenarios); err != nil {
			result = core.Errored(err)
		}
	}

	if len(cleanup) > 0 {
		w.PrintFeatureLifecycleBanner(cleanUpBanner)
		err := runCleanUp(&e.steps, cleanup)
		e.steps.Flush(w)
		if err != nil {
			result = core.Errored(err)
		}
	}

	return result
}

// setUpResult maps a set up failure. Only an explicit pending signal yields
// PENDING; everything else is an ERROR.
func setUpResult(err error) core.ScenarioResult {
	result := core.ResultOf(err)
	if result.Kind == core.ScenarioPending {
		return result
	}
	return core.Errored(result.Cause)
}
