package core

// StepResultKind enumerates the outcomes of a single recorded step.
type StepResultKind int

const (
	StepResultNone     StepResultKind = iota // No associated result (info lines)
	StepResultPassed                         // Completed successfully
	StepResultFailed                         // Assertion failed inside a Then step
	StepResultError                          // Unexpected error in a Given/When/lifecycle step
	StepResultDeferred                       // Action returned to be executed later
	StepResultAssumed                        // Declared without performing any validation
	StepResultPending                        // Implementation is incomplete
)

// String returns the upper-case name used in step logs.
func (k StepResultKind) String() string {
	switch k {
	case StepResultNone:
		return "NONE"
	case StepResultPassed:
		return "PASSED"
	case StepResultFailed:
		return "FAILED"
	case StepResultError:
		return "ERROR"
	case StepResultDeferred:
		return "DEFERRED"
	case StepResultAssumed:
		return "ASSUMED"
	case StepResultPending:
		return "PENDING"
	default:
		return "UNKNOWN"
	}
}

// StepResult is the outcome recorded for a step. Failed, Error and Pending
// results carry the error that caused them.
type StepResult struct {
	Kind  StepResultKind
	Cause error
}

// StepNone records a line that is not a step, such as an info message.
func StepNone() StepResult { return StepResult{Kind: StepResultNone} }

// StepPassed records a step that completed.
func StepPassed() StepResult { return StepResult{Kind: StepResultPassed} }

// StepDeferred records an action that was captured but not yet run.
func StepDeferred() StepResult { return StepResult{Kind: StepResultDeferred} }

// StepAssumed records a step declared without any work to perform.
func StepAssumed() StepResult { return StepResult{Kind: StepResultAssumed} }

// StepFailed records an assertion failure.
func StepFailed(cause error) StepResult { return StepResult{Kind: StepResultFailed, Cause: cause} }

// StepErrored records an unexpected failure.
func StepErrored(cause error) StepResult { return StepResult{Kind: StepResultError, Cause: cause} }

// StepPending records an incomplete implementation.
func StepPending(cause error) StepResult { return StepResult{Kind: StepResultPending, Cause: cause} }

// String returns the name of the result kind.
func (r StepResult) String() string {
	return r.Kind.String()
}

// IsFailure returns true for the results that carry a cause.
func (r StepResult) IsFailure() bool {
	switch r.Kind {
	case StepResultFailed, StepResultError, StepResultPending:
		return true
	default:
		return false
	}
}

// ResultFactory converts a step error into the result recorded for it.
type ResultFactory func(cause error) StepResult

// ScenarioResultKind enumerates the outcomes of a scenario, feature or
// specification.
type ScenarioResultKind int

const (
	ScenarioPassed  ScenarioResultKind = iota // Completed successfully
	ScenarioFailed                            // A validation step failed
	ScenarioError                             // Setup, clean up or a non validation step failed
	ScenarioPending                           // Implementation is incomplete
)

// String returns the upper-case name used in result banners.
func (k ScenarioResultKind) String() string {
	switch k {
	case ScenarioPassed:
		return "PASSED"
	case ScenarioFailed:
		return "FAILED"
	case ScenarioError:
		return "ERROR"
	case ScenarioPending:
		return "PENDING"
	default:
		return "UNKNOWN"
	}
}

// ScenarioResult is the aggregated outcome of a container. Every kind other
// than Passed carries its cause.
type ScenarioResult struct {
	Kind  ScenarioResultKind
	Cause error
}

// Passed returns the successful scenario result.
func Passed() ScenarioResult { return ScenarioResult{Kind: ScenarioPassed} }

// Failed returns a scenario result for an assertion failure.
func Failed(cause error) ScenarioResult { return ScenarioResult{Kind: ScenarioFailed, Cause: cause} }

// Errored returns a scenario result for an unexpected failure.
func Errored(cause error) ScenarioResult { return ScenarioResult{Kind: ScenarioError, Cause: cause} }

// Pending returns a scenario result for an incomplete implementation.
func Pending(cause error) ScenarioResult { return ScenarioResult{Kind: ScenarioPending, Cause: cause} }

// String returns the name of the result kind.
func (r ScenarioResult) String() string {
	return r.Kind.String()
}

// IsSuccess returns true only for a passed result.
func (r ScenarioResult) IsSuccess() bool {
	return r.Kind == ScenarioPassed
}

// ErrorCategory classifies why a step or container did not pass.
type ErrorCategory int

const (
	ErrCategoryNone           ErrorCategory = iota // No error
	ErrCategoryAssertion                           // Raised from a Then step
	ErrCategoryInfrastructure                      // Raised from Given/When, lifecycle blocks or outside any step
	ErrCategoryIncomplete                          // Explicit pending signal
)

// String returns the string representation of ErrorCategory
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryAssertion:
		return "assertion"
	case ErrCategoryInfrastructure:
		return "infrastructure"
	case ErrCategoryIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}
