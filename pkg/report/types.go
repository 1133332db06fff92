// Package report records an execution into a structured report.
//
// Architecture:
//   - Recorder: listener that fills a skeleton built from the discovered tree
//   - report.json / report.yaml: the snapshot written once the run completes
//
// Every node of the tree has an entry, including nodes that never ran.
package report

import "time"

// Version is the report schema version.
const Version = "1.0.0"

// Status represents the execution status.
type Status string

// Status values.
const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// IsTerminal returns true if the status is a final state.
func (s Status) IsTerminal() bool {
	return s == StatusPassed || s == StatusFailed || s == StatusSkipped
}

// Report is the document written for a run.
type Report struct {
	Version   string     `json:"version" yaml:"version"`
	RunID     string     `json:"runId" yaml:"runId"`
	Status    Status     `json:"status" yaml:"status"`
	StartTime time.Time  `json:"startTime" yaml:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	Duration  *int64     `json:"duration,omitempty" yaml:"duration,omitempty"` // milliseconds
	Summary   Summary    `json:"summary" yaml:"summary"`
	Root      *NodeEntry `json:"root" yaml:"root"`
}

// Summary contains aggregated scenario counts.
type Summary struct {
	Total   int `json:"total" yaml:"total"`
	Passed  int `json:"passed" yaml:"passed"`
	Failed  int `json:"failed" yaml:"failed"`
	Errored int `json:"errored" yaml:"errored"`
	Pending int `json:"pending" yaml:"pending"` // Scenarios that reported PENDING
	Skipped int `json:"skipped" yaml:"skipped"`
	Running int `json:"running" yaml:"running"`
}

// NodeEntry is the report entry of one descriptor.
type NodeEntry struct {
	ID         string       `json:"id" yaml:"id"`     // Unique id of the descriptor
	Name       string       `json:"name" yaml:"name"` // Display name
	Kind       string       `json:"kind" yaml:"kind"` // engine, specification, feature, scenario
	Tags       []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Status     Status       `json:"status" yaml:"status"`
	Outcome    string       `json:"outcome,omitempty" yaml:"outcome,omitempty"` // PASSED, FAILED, ERROR, PENDING
	StartTime  *time.Time   `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime    *time.Time   `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	Duration   *int64       `json:"duration,omitempty" yaml:"duration,omitempty"` // milliseconds
	SkipReason string       `json:"skipReason,omitempty" yaml:"skipReason,omitempty"`
	Error      *Error       `json:"error,omitempty" yaml:"error,omitempty"`
	Children   []*NodeEntry `json:"children,omitempty" yaml:"children,omitempty"`
}

// Error contains error details.
type Error struct {
	Type    string `json:"type" yaml:"type"` // assertion, infrastructure, incomplete
	Message string `json:"message" yaml:"message"`
}

// clone returns a deep copy of the entry.
func (n *NodeEntry) clone() *NodeEntry {
	if n == nil {
		return nil
	}
	c := *n
	c.Tags = append([]string(nil), n.Tags...)
	if n.Error != nil {
		e := *n.Error
		c.Error = &e
	}
	c.Children = make([]*NodeEntry, len(n.Children))
	for i, child := range n.Children {
		c.Children[i] = child.clone()
	}
	if len(c.Children) == 0 {
		c.Children = nil
	}
	return &c
}
