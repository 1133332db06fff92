package khaos

// TestStepBuilder records informational lines.
type TestStepBuilder interface {
	Info(message string)
}

// GivenBuilder records steps that arrange the scenario.
type GivenBuilder interface {
	// Given records a step that is assumed without performing any work.
	Given(description string)
	givenSteps() *StepExecution
}

// WhenBuilder records the actions under test.
type WhenBuilder interface {
	// When records an action that is assumed without performing any work.
	When(description string)
	whenSteps() *StepExecution
}

// ThenBuilder records validations.
type ThenBuilder interface {
	// Then records a validation that is assumed without performing any work.
	Then(description string)
	thenSteps() *StepExecution
}

// GivenStepBuilder is the scope of set up blocks.
type GivenStepBuilder interface {
	GivenBuilder
	TestStepBuilder
}

// WhenStepBuilder is a scope limited to actions.
type WhenStepBuilder interface {
	WhenBuilder
	TestStepBuilder
}

// ThenStepBuilder is the scope of clean up blocks.
type ThenStepBuilder interface {
	ThenBuilder
	TestStepBuilder
}

// ScenarioBuilder is the scope of a scenario body.
type ScenarioBuilder interface {
	GivenStepBuilder
	WhenStepBuilder
	ThenStepBuilder

	// Pending marks the scenario as not yet completely implemented and
	// stops it.
	Pending(reason string)
}

// SetUpBlock arranges state before a feature or scenario.
type SetUpBlock func(GivenStepBuilder)

// CleanUpBlock releases state after a feature or scenario.
type CleanUpBlock func(ThenStepBuilder)

// ScenarioBlock is the body of a scenario.
type ScenarioBlock func(ScenarioBuilder)

// FeatureBuilder declares the lifecycle and scenarios of a feature.
type FeatureBuilder interface {
	ScenarioDefinitionBuilder

	// SetUpFeature runs once before any scenario of the feature.
	SetUpFeature(definition func(GivenStepBuilder))
	// CleanUpFeature runs once after every scenario of the feature.
	CleanUpFeature(definition func(ThenStepBuilder))
	// SetUpEachScenario runs before each scenario body.
	SetUpEachScenario(definition func(GivenStepBuilder))
	// CleanUpEachScenario runs after each scenario body.
	CleanUpEachScenario(definition func(ThenStepBuilder))
	// Tagged applies tags to the scenario declared through the result.
	Tagged(tags ...string) ScenarioDefinitionBuilder
}

// ScenarioDefinitionBuilder declares scenarios.
type ScenarioDefinitionBuilder interface {
	Scenario(name string, definition func(ScenarioBuilder)) ScenarioCleanUpBuilder
}

// ScenarioCleanUpBuilder attaches a clean up block to a scenario.
type ScenarioCleanUpBuilder interface {
	CleanUp(definition func(ThenStepBuilder))
}
