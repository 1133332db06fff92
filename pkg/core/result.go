package core

import "fmt"

// StepKind identifies which DSL construct recorded a step.
type StepKind int

const (
	KindGiven   StepKind = iota // Arranges the state of the scenario
	KindWhen                    // Performs the action under test
	KindThen                    // Validates the outcome
	KindInfo                    // Informational log line
	KindPending                 // Marks the scenario as not yet implemented
)

// Label returns the heading printed above a group of steps of this kind.
func (k StepKind) Label() string {
	switch k {
	case KindGiven:
		return "Given"
	case KindWhen:
		return "When"
	case KindThen:
		return "Then"
	case KindInfo:
		return "Info"
	case KindPending:
		return "Pending"
	default:
		return "Unknown"
	}
}

// String implements fmt.Stringer
func (k StepKind) String() string {
	return k.Label()
}

// IsLabelled reports whether steps of this kind are grouped under a label
// when the step log is written.
func (k StepKind) IsLabelled() bool {
	return k == KindGiven || k == KindWhen || k == KindThen
}

// Message is a single entry in a step log.
type Message struct {
	Description string
	Result      StepResult

	// Expected is the value the step validated against, when provided
	Expected    any
	HasExpected bool

	// Evaluated is the value returned by the step, when it completed
	Evaluated    any
	HasEvaluated bool
}

// ExpectedString formats the expected value for output.
func (m Message) ExpectedString() string {
	return formatValue(m.Expected)
}

// EvaluatedString formats the evaluated value for output.
func (m Message) EvaluatedString() string {
	return formatValue(m.Evaluated)
}

// Step is a recorded step together with the construct that produced it.
type Step struct {
	Kind    StepKind
	Message Message
}

// NewLogStep returns an informational step.
func NewLogStep(msg string) Step {
	return Step{Kind: KindInfo, Message: Message{Description: msg, Result: StepNone()}}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	default:
		return fmt.Sprintf("%v", val)
	}
}
