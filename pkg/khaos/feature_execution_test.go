package khaos

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devicelab-dev/khaos/pkg/core"
)

var banner = strings.Repeat("-", 40)

func TestFeatureExecution_NoLifecycle(t *testing.T) {
	r, w := newTextWriter()
	ran := false

	result := NewFeatureExecution().Execute(w, nil, nil, func() { ran = true })

	assert.True(t, ran)
	assert.Equal(t, core.ScenarioPassed, result.Kind)
	assert.Empty(t, r.Lines())
}

func TestFeatureExecution_SetUpAndCleanUp(t *testing.T) {
	r, w := newTextWriter()
	var order []string

	result := NewFeatureExecution().Execute(w,
		[]SetUpBlock{func(g GivenStepBuilder) { order = append(order, "setup"); g.Given("a bank") }},
		[]CleanUpBlock{func(th ThenStepBuilder) { order = append(order, "cleanup"); th.Then("the bank is closed") }},
		func() { order = append(order, "scenarios") },
	)

	assert.Equal(t, core.ScenarioPassed, result.Kind)
	assert.Equal(t, []string{"setup", "scenarios", "cleanup"}, order)
	assert.Equal(t, []string{
		banner, "| SCENARIO: Set Up", banner,
		"Given", "* a bank -> ASSUMED", "",
		banner, "| SCENARIO: Clean Up", banner,
		"Then", "* the bank is closed -> ASSUMED", "",
	}, r.Lines())
}

func TestFeatureExecution_SetUpFailureSkipsScenarios(t *testing.T) {
	cause := errors.New("server down")
	r, w := newTextWriter()
	ran := false
	cleaned := false

	result := NewFeatureExecution().Execute(w,
		[]SetUpBlock{func(g GivenStepBuilder) {
			Arrange(g, "a server", func() error { return cause })
		}},
		[]CleanUpBlock{func(ThenStepBuilder) { cleaned = true }},
		func() { ran = true },
	)

	assert.False(t, ran)
	assert.True(t, cleaned)
	assert.Equal(t, core.ScenarioError, result.Kind)
	assert.Same(t, cause, result.Cause)
	assert.Contains(t, r.Lines(), "* a server -> ERROR")
}

func TestFeatureExecution_SetUpPanicIsError(t *testing.T) {
	_, w := newTextWriter()

	result := NewFeatureExecution().Execute(w,
		[]SetUpBlock{func(GivenStepBuilder) { panic("boom") }},
		nil,
		func() { t.Fatal("scenarios must not run") },
	)

	assert.Equal(t, core.ScenarioError, result.Kind)
}

func TestFeatureExecution_SetUpPending(t *testing.T) {
	_, w := newTextWriter()

	result := NewFeatureExecution().Execute(w,
		[]SetUpBlock{func(GivenStepBuilder) { panic(&core.PendingError{Reason: "fixtures"}) }},
		nil,
		func() { t.Fatal("scenarios must not run") },
	)

	assert.Equal(t, core.ScenarioPending, result.Kind)
}

func TestFeatureExecution_CleanUpFailure(t *testing.T) {
	cause := errors.New("leak")
	_, w := newTextWriter()

	result := NewFeatureExecution().Execute(w, nil,
		[]CleanUpBlock{func(th ThenStepBuilder) { Assert(th, "no leaks", func() error { return cause }) }},
		func() {},
	)

	assert.Equal(t, core.ScenarioError, result.Kind)
	assert.Same(t, cause, result.Cause)
}

func TestFeatureExecution_ScenariosPanic(t *testing.T) {
	_, w := newTextWriter()
	cleaned := false

	result := NewFeatureExecution().Execute(w, nil,
		[]CleanUpBlock{func(ThenStepBuilder) { cleaned = true }},
		func() { panic("engine bug") },
	)

	assert.True(t, cleaned)
	assert.Equal(t, core.ScenarioError, result.Kind)
}
