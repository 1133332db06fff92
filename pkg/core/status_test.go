package core

import (
	"errors"
	"testing"
)

func TestStepResultKind_String(t *testing.T) {
	tests := []struct {
		kind     StepResultKind
		expected string
	}{
		{StepResultNone, "NONE"},
		{StepResultPassed, "PASSED"},
		{StepResultFailed, "FAILED"},
		{StepResultError, "ERROR"},
		{StepResultDeferred, "DEFERRED"},
		{StepResultAssumed, "ASSUMED"},
		{StepResultPending, "PENDING"},
		{StepResultKind(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("StepResultKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestStepResult_IsFailure(t *testing.T) {
	cause := errors.New("boom")
	failures := []StepResult{StepFailed(cause), StepErrored(cause), StepPending(cause)}
	others := []StepResult{StepNone(), StepPassed(), StepDeferred(), StepAssumed()}

	for _, r := range failures {
		if !r.IsFailure() {
			t.Errorf("%s.IsFailure() = false, want true", r)
		}
		if r.Cause != cause {
			t.Errorf("%s.Cause = %v, want %v", r, r.Cause, cause)
		}
	}

	for _, r := range others {
		if r.IsFailure() {
			t.Errorf("%s.IsFailure() = true, want false", r)
		}
		if r.Cause != nil {
			t.Errorf("%s.Cause = %v, want nil", r, r.Cause)
		}
	}
}

func TestScenarioResultKind_String(t *testing.T) {
	tests := []struct {
		kind     ScenarioResultKind
		expected string
	}{
		{ScenarioPassed, "PASSED"},
		{ScenarioFailed, "FAILED"},
		{ScenarioError, "ERROR"},
		{ScenarioPending, "PENDING"},
		{ScenarioResultKind(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("ScenarioResultKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestScenarioResult_IsSuccess(t *testing.T) {
	cause := errors.New("boom")
	if !Passed().IsSuccess() {
		t.Error("Passed().IsSuccess() = false, want true")
	}
	for _, r := range []ScenarioResult{Failed(cause), Errored(cause), Pending(cause)} {
		if r.IsSuccess() {
			t.Errorf("%s.IsSuccess() = true, want false", r)
		}
	}
}

func TestErrorCategory_String(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		expected string
	}{
		{ErrCategoryNone, "none"},
		{ErrCategoryAssertion, "assertion"},
		{ErrCategoryInfrastructure, "infrastructure"},
		{ErrCategoryIncomplete, "incomplete"},
		{ErrorCategory(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.category.String(); got != tt.expected {
			t.Errorf("ErrorCategory(%d).String() = %q, want %q", tt.category, got, tt.expected)
		}
	}
}
