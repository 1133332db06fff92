package engine

// Listener receives the lifecycle of every node. Each node gets either one
// ExecutionSkipped call, or one ExecutionStarted followed by one
// ExecutionFinished. Calls arrive from concurrent goroutines when the engine
// runs in parallel.
type Listener interface {
	ExecutionStarted(d Descriptor)
	ExecutionSkipped(d Descriptor, reason string)
	ExecutionFinished(d Descriptor, result ExecutionResult)
}

// MultiListener forwards every call to each listener in order.
type MultiListener []Listener

func (m MultiListener) ExecutionStarted(d Descriptor) {
	for _, l := range m {
		l.ExecutionStarted(d)
	}
}

func (m MultiListener) ExecutionSkipped(d Descriptor, reason string) {
	for _, l := range m {
		l.ExecutionSkipped(d, reason)
	}
}

func (m MultiListener) ExecutionFinished(d Descriptor, result ExecutionResult) {
	for _, l := range m {
		l.ExecutionFinished(d, result)
	}
}

// NopListener ignores every call.
type NopListener struct{}

func (NopListener) ExecutionStarted(Descriptor)                   {}
func (NopListener) ExecutionSkipped(Descriptor, string)           {}
func (NopListener) ExecutionFinished(Descriptor, ExecutionResult) {}
