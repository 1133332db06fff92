package core

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// StepError is raised when a recorded step does not pass. It aborts the
// enclosing scenario or lifecycle block and carries the recorded result so
// the container can classify the failure.
type StepError struct {
	Step        StepKind
	Description string
	Result      StepResult
}

// Error implements the error interface
func (e *StepError) Error() string {
	if e.Result.Cause != nil {
		return fmt.Sprintf("%s step %q %s: %v", e.Step.Label(), e.Description, e.Result, e.Result.Cause)
	}
	return fmt.Sprintf("%s step %q %s", e.Step.Label(), e.Description, e.Result)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *StepError) Unwrap() error {
	return e.Result.Cause
}

// Category returns the error category implied by the recorded result.
func (e *StepError) Category() ErrorCategory {
	switch e.Result.Kind {
	case StepResultFailed:
		return ErrCategoryAssertion
	case StepResultPending:
		return ErrCategoryIncomplete
	default:
		return ErrCategoryInfrastructure
	}
}

// PendingError is the signal raised by a scenario that is not yet
// completely implemented.
type PendingError struct {
	Reason string
}

// Error implements the error interface
func (e *PendingError) Error() string {
	if e.Reason == "" {
		return "scenario pending"
	}
	return "scenario pending: " + e.Reason
}

// VerificationError indicates that a test verification has failed.
type VerificationError struct {
	Message string
	Cause   error
}

// Error implements the error interface
func (e *VerificationError) Error() string {
	switch {
	case e.Message != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	case e.Cause != nil:
		return "verification failed: " + e.Cause.Error()
	case e.Message != "":
		return e.Message
	default:
		return "verification failed"
	}
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *VerificationError) Unwrap() error {
	return e.Cause
}

// PanicError wraps a value recovered from a panic in user code.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// FromPanic converts a recovered value into an error. Errors that already
// carry engine semantics are returned unchanged.
func FromPanic(r any) error {
	switch v := r.(type) {
	case *StepError:
		return v
	case *PendingError:
		return v
	default:
		return &PanicError{Value: r, Stack: debug.Stack()}
	}
}

// CategoryOf classifies an arbitrary error escaping a container.
func CategoryOf(err error) ErrorCategory {
	if err == nil {
		return ErrCategoryNone
	}

	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Category()
	}

	var pendingErr *PendingError
	if errors.As(err, &pendingErr) {
		return ErrCategoryIncomplete
	}

	return ErrCategoryInfrastructure
}

// ResultOf converts an error escaping a scenario body or lifecycle block
// into the container result. A nil error is a pass; a pending signal wins
// wherever it was raised; a failure raised from a Then step is failed;
// anything else is an error. The cause reported is the user's error, not
// the engine wrapper.
func ResultOf(err error) ScenarioResult {
	if err == nil {
		return Passed()
	}

	var pendingErr *PendingError
	if errors.As(err, &pendingErr) {
		return Pending(pendingErr)
	}

	var stepErr *StepError
	if errors.As(err, &stepErr) {
		cause := stepErr.Result.Cause
		if cause == nil {
			cause = stepErr
		}
		if stepErr.Result.Kind == StepResultFailed {
			return Failed(cause)
		}
		return Errored(cause)
	}

	return Errored(err)
}
