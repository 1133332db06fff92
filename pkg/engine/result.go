package engine

import "github.com/devicelab-dev/khaos/pkg/core"

// Status is the outcome reported to a listener.
type Status int

const (
	StatusSuccessful Status = iota
	StatusFailed
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusSuccessful:
		return "successful"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ExecutionResult is the terminal result of a started node.
type ExecutionResult struct {
	Status Status
	Cause  error
	// Outcome is the result the node produced before it was mapped.
	Outcome core.ScenarioResult
}

// HandleResult maps a container or scenario result onto the status reported
// to the listener. PENDING fails only when failOnPending is set.
func HandleResult(result core.ScenarioResult, failOnPending bool) ExecutionResult {
	out := ExecutionResult{Status: StatusSuccessful, Outcome: result}

	switch result.Kind {
	case core.ScenarioPassed:
	case core.ScenarioPending:
		if failOnPending {
			out.Status = StatusFailed
			out.Cause = result.Cause
		}
	default:
		out.Status = StatusFailed
		out.Cause = result.Cause
	}

	return out
}
