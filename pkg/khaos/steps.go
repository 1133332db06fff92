package khaos

import "github.com/devicelab-dev/khaos/pkg/core"

// Value returns a step action producing v.
func Value[T any](v T) func() (T, error) {
	return func() (T, error) { return v, nil }
}

// Given runs a step that arranges the scenario and returns its value. An
// error is recorded as ERROR and stops the enclosing block.
func Given[T any](b GivenBuilder, description string, value func() (T, error)) T {
	return executeStep(b.givenSteps(), core.KindGiven, description, expectation{}, true, core.StepErrored, value)
}

// When runs the action under test and returns its value. An error is
// recorded as ERROR and stops the enclosing block.
func When[T any](b WhenBuilder, description string, action func() (T, error)) T {
	return executeStep(b.whenSteps(), core.KindWhen, description, expectation{}, true, core.StepErrored, action)
}

// DeferredWhen records the action as DEFERRED and returns it to be called
// later, typically from a Then step that expects it to fail.
func DeferredWhen[T any](b WhenBuilder, description string, action func() (T, error)) func() (T, error) {
	return executeDeferred(b.whenSteps(), core.KindWhen, description, action)
}

// Then runs a validation and returns its value. An error is recorded as
// FAILED and stops the enclosing block.
func Then[T any](b ThenBuilder, description string, assertion func() (T, error)) T {
	return executeStep(b.thenSteps(), core.KindThen, description, expectation{}, true, core.StepFailed, assertion)
}

// ThenExpect runs a validation against an expected value, which is shown
// next to the step description.
func ThenExpect[T, E any](b ThenBuilder, description string, expected E, assertion func(E) (T, error)) T {
	return executeStep(b.thenSteps(), core.KindThen, description, expectation{value: expected, set: true}, true, core.StepFailed,
		func() (T, error) { return assertion(expected) })
}

// Arrange is Given for steps without a value.
func Arrange(b GivenBuilder, description string, action func() error) {
	executeStep(b.givenSteps(), core.KindGiven, description, expectation{}, false, core.StepErrored, noValue(action))
}

// Act is When for steps without a value.
func Act(b WhenBuilder, description string, action func() error) {
	executeStep(b.whenSteps(), core.KindWhen, description, expectation{}, false, core.StepErrored, noValue(action))
}

// Assert is Then for steps without a value.
func Assert(b ThenBuilder, description string, assertion func() error) {
	executeStep(b.thenSteps(), core.KindThen, description, expectation{}, false, core.StepFailed, noValue(assertion))
}

func noValue(action func() error) func() (struct{}, error) {
	return func() (struct{}, error) {
		return struct{}{}, action()
	}
}
