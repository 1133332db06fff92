// Package khaostest runs specifications under go test. Every node of the
// discovered tree becomes a subtest.
//
//	func TestBank(t *testing.T) {
//		khaostest.Run(t, engine.DefaultOptions(), &BankSpecification{})
//	}
package khaostest

import (
	"context"
	"testing"

	"github.com/devicelab-dev/khaos/pkg/core"
	"github.com/devicelab-dev/khaos/pkg/engine"
	"github.com/devicelab-dev/khaos/pkg/khaos"
	"github.com/devicelab-dev/khaos/pkg/report"
)

// Run discovers and executes specs, then replays the outcome of every node
// as a subtest: skipped nodes are skipped, failed nodes fail with their
// cause. Scenarios that are PENDING but not failing are skipped. Output
// goes to the test log unless opts or a specification names an adapter.
func Run(t *testing.T, opts engine.Options, specs ...khaos.Specification) *report.Report {
	t.Helper()

	selectors := make([]engine.Selector, len(specs))
	for i, s := range specs {
		selectors[i] = engine.SelectSpecification(s)
	}
	return RunRequest(t, opts, engine.DiscoveryRequest{Selectors: selectors})
}

// RunRequest is Run for an explicit discovery request.
func RunRequest(t *testing.T, opts engine.Options, req engine.DiscoveryRequest, listeners ...engine.Listener) *report.Report {
	t.Helper()

	root, err := engine.Discover(req)
	if err != nil {
		t.Fatalf("discovery failed: %v", err)
	}

	if opts.LogAdapter == nil {
		opts.LogAdapter = NewTestAdapter(t)
	}

	recorder := report.NewRecorder(root)
	listener := engine.MultiListener(append([]engine.Listener{recorder}, listeners...))
	if err := engine.New(opts).Execute(context.Background(), root, listener); err != nil {
		t.Fatalf("execution failed: %v", err)
	}

	result := recorder.Report()
	replay(testingT{t}, result.Root)
	return result
}

// runner is the part of testing.T the replay needs.
type runner interface {
	Helper()
	Errorf(format string, args ...any)
	Skip(args ...any)
	Run(name string, f func(runner)) bool
}

type testingT struct {
	*testing.T
}

func (t testingT) Run(name string, f func(runner)) bool {
	return t.T.Run(name, func(t *testing.T) { f(testingT{t}) })
}

// replay mirrors entry and its children as nested subtests of t. The
// engine node itself is not a subtest.
func replay(t runner, entry *report.NodeEntry) {
	t.Helper()
	if entry == nil {
		return
	}
	if entry.Status == report.StatusSkipped && len(entry.Children) == 0 {
		t.Skip(entry.SkipReason)
		return
	}
	for _, child := range entry.Children {
		t.Run(child.Name, func(t runner) {
			replayNode(t, child)
		})
	}
}

func replayNode(t runner, entry *report.NodeEntry) {
	t.Helper()

	switch entry.Status {
	case report.StatusSkipped:
		t.Skip(entry.SkipReason)
		return
	case report.StatusFailed:
		t.Errorf("%s %s: %s", entry.Kind, entry.Outcome, message(entry))
	case report.StatusPassed:
		if entry.Outcome == core.ScenarioPending.String() && len(entry.Children) == 0 {
			t.Skip("pending: " + message(entry))
			return
		}
	}

	for _, child := range entry.Children {
		t.Run(child.Name, func(t runner) {
			replayNode(t, child)
		})
	}
}

func message(entry *report.NodeEntry) string {
	if entry.Error == nil {
		return "no cause reported"
	}
	return entry.Error.Message
}
