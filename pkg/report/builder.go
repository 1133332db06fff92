package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/devicelab-dev/khaos/pkg/core"
	"github.com/devicelab-dev/khaos/pkg/engine"
)

// BuildSkeleton creates the initial report structure from a discovered tree.
// All nodes are set to "pending" status.
// This should be called after discovery, before execution starts.
func BuildSkeleton(root engine.Descriptor) (*Report, map[string]*NodeEntry) {
	now := time.Now()
	nodes := make(map[string]*NodeEntry)

	report := &Report{
		Version:   Version,
		RunID:     uuid.NewString(),
		Status:    StatusPending,
		StartTime: now,
		Root:      buildEntry(root, nodes),
	}
	report.Summary = computeSummary(report.Root)

	return report, nodes
}

// buildEntry creates the entry of d and its descendants.
func buildEntry(d engine.Descriptor, nodes map[string]*NodeEntry) *NodeEntry {
	if d == nil {
		return nil
	}

	entry := &NodeEntry{
		ID:     d.UniqueID().String(),
		Name:   d.DisplayName(),
		Kind:   d.Kind().String(),
		Tags:   d.Tags(),
		Status: StatusPending,
	}
	nodes[entry.ID] = entry

	for _, child := range d.Children() {
		entry.Children = append(entry.Children, buildEntry(child, nodes))
	}
	return entry
}

// computeSummary calculates the summary from scenario statuses.
func computeSummary(root *NodeEntry) Summary {
	var s Summary
	var visit func(n *NodeEntry)
	visit = func(n *NodeEntry) {
		if n == nil {
			return
		}
		if n.Kind == engine.KindScenario.String() {
			s.Total++
			switch n.Status {
			case StatusPassed:
				s.Passed++
			case StatusFailed:
				s.Failed++
			case StatusSkipped:
				s.Skipped++
			case StatusRunning:
				s.Running++
			}
			switch n.Outcome {
			case core.ScenarioError.String():
				s.Errored++
			case core.ScenarioPending.String():
				s.Pending++
			}
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(root)
	return s
}

// computeRunStatus determines the overall run status from the tree.
func computeRunStatus(root *NodeEntry) Status {
	if root == nil {
		return StatusPending
	}
	if !root.Status.IsTerminal() {
		return root.Status
	}
	if root.Status == StatusSkipped {
		return StatusSkipped
	}

	hasFailure := false
	var visit func(n *NodeEntry)
	visit = func(n *NodeEntry) {
		if n.Status == StatusFailed {
			hasFailure = true
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(root)

	if hasFailure {
		return StatusFailed
	}
	return StatusPassed
}
