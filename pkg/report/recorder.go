package report

import (
	"sync"
	"time"

	"github.com/devicelab-dev/khaos/pkg/core"
	"github.com/devicelab-dev/khaos/pkg/engine"
)

// Recorder is an engine.Listener that fills in a report as the run
// progresses. Multiple node goroutines can update it concurrently.
type Recorder struct {
	mu     sync.Mutex
	report *Report
	nodes  map[string]*NodeEntry
	now    func() time.Time
}

// NewRecorder creates a Recorder for the tree under root.
func NewRecorder(root engine.Descriptor) *Recorder {
	report, nodes := BuildSkeleton(root)
	return &Recorder{report: report, nodes: nodes, now: time.Now}
}

// ExecutionStarted implements engine.Listener
func (r *Recorder) ExecutionStarted(d engine.Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.entry(d)
	if entry == nil {
		return
	}

	now := r.now()
	entry.Status = StatusRunning
	entry.StartTime = &now

	if d.Kind() == engine.KindEngine {
		r.report.Status = StatusRunning
		r.report.StartTime = now
	}
}

// ExecutionSkipped implements engine.Listener. Descendants of a skipped
// node that never started are marked skipped with the same reason.
func (r *Recorder) ExecutionSkipped(d engine.Descriptor, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.entry(d)
	if entry == nil {
		return
	}
	skipTree(entry, reason)

	if d.Kind() == engine.KindEngine {
		r.endLocked()
	}
}

// ExecutionFinished implements engine.Listener
func (r *Recorder) ExecutionFinished(d engine.Descriptor, result engine.ExecutionResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.entry(d)
	if entry == nil {
		return
	}

	now := r.now()
	entry.EndTime = &now
	if entry.StartTime != nil {
		duration := now.Sub(*entry.StartTime).Milliseconds()
		entry.Duration = &duration
	}

	entry.Status = StatusPassed
	if result.Status == engine.StatusFailed {
		entry.Status = StatusFailed
	}
	entry.Outcome = result.Outcome.String()

	if cause := result.Outcome.Cause; cause != nil && !result.Outcome.IsSuccess() {
		entry.Error = &Error{
			Type:    category(result.Outcome.Kind).String(),
			Message: cause.Error(),
		}
	}

	if d.Kind() == engine.KindEngine {
		r.endLocked()
	}
}

// Report returns a snapshot of the report.
func (r *Recorder) Report() *Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := *r.report
	snapshot.Root = r.report.Root.clone()
	snapshot.Summary = computeSummary(snapshot.Root)
	return &snapshot
}

// entry returns the entry of d, or nil for nodes outside the skeleton.
func (r *Recorder) entry(d engine.Descriptor) *NodeEntry {
	return r.nodes[d.UniqueID().String()]
}

// endLocked marks the run as complete; the caller holds the lock.
func (r *Recorder) endLocked() {
	now := r.now()
	duration := now.Sub(r.report.StartTime).Milliseconds()
	r.report.EndTime = &now
	r.report.Duration = &duration
	r.report.Status = computeRunStatus(r.report.Root)
	r.report.Summary = computeSummary(r.report.Root)
}

func category(kind core.ScenarioResultKind) core.ErrorCategory {
	switch kind {
	case core.ScenarioFailed:
		return core.ErrCategoryAssertion
	case core.ScenarioPending:
		return core.ErrCategoryIncomplete
	case core.ScenarioError:
		return core.ErrCategoryInfrastructure
	default:
		return core.ErrCategoryNone
	}
}

func skipTree(entry *NodeEntry, reason string) {
	if entry.Status.IsTerminal() || entry.Status == StatusRunning {
		return
	}
	entry.Status = StatusSkipped
	entry.SkipReason = reason
	for _, c := range entry.Children {
		skipTree(c, reason)
	}
}
