package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devicelab-dev/khaos/pkg/engine"
	"github.com/devicelab-dev/khaos/pkg/khaos"
	"github.com/devicelab-dev/khaos/pkg/logger"
)

type accountSpec struct {
	khaos.Spec

	Deposits    khaos.FeatureDefinition
	Withdrawals khaos.FeatureDefinition
	Empty       khaos.FeatureDefinition
}

func (accountSpec) SpecificationName() string { return "Accounts" }

func newAccountSpec() *accountSpec {
	return &accountSpec{
		Deposits: khaos.Feature(func(f khaos.FeatureBuilder) {
			f.Scenario("deposit", func(s khaos.ScenarioBuilder) {
				khaos.Then(s, "balance", khaos.Value(10))
			})
			f.Scenario("overdraw", func(s khaos.ScenarioBuilder) {
				khaos.Then(s, "rejected", func() (bool, error) { return false, errors.New("accepted") })
			})
			f.Scenario("interest", func(s khaos.ScenarioBuilder) {
				s.Pending("rates")
			})
		}, "money"),
		Withdrawals: khaos.Feature(func(f khaos.FeatureBuilder) {
			f.SetUpFeature(func(g khaos.GivenStepBuilder) {
				khaos.Given(g, "a vault", func() (int, error) { return 0, errors.New("locked") })
			})
			f.Scenario("withdraw", func(khaos.ScenarioBuilder) {})
		}),
		Empty: khaos.Feature(func(khaos.FeatureBuilder) {}),
	}
}

func run(t *testing.T, ctx context.Context, specs ...khaos.Specification) *Recorder {
	t.Helper()
	selectors := make([]engine.Selector, len(specs))
	for i, s := range specs {
		selectors[i] = engine.SelectSpecification(s)
	}
	root, err := engine.Discover(engine.DiscoveryRequest{Selectors: selectors})
	require.NoError(t, err)

	opts := engine.DefaultOptions()
	opts.Parallel = false
	opts.LogAdapter = logger.NewRecorder()

	rec := NewRecorder(root)
	require.NoError(t, engine.New(opts).Execute(ctx, root, rec))
	return rec
}

func find(n *NodeEntry, name string) *NodeEntry {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := find(c, name); found != nil {
			return found
		}
	}
	return nil
}

func TestBuildSkeleton(t *testing.T) {
	root, err := engine.Discover(engine.DiscoveryRequest{
		Selectors: []engine.Selector{engine.SelectSpecification(newAccountSpec())},
	})
	require.NoError(t, err)

	report, nodes := BuildSkeleton(root)

	assert.Equal(t, Version, report.Version)
	assert.Equal(t, StatusPending, report.Status)
	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)
	assert.Len(t, nodes, 9)
	assert.Equal(t, 4, report.Summary.Total)

	deposit := find(report.Root, "deposit")
	require.NotNil(t, deposit)
	assert.Equal(t, "scenario", deposit.Kind)
	assert.Equal(t, []string{"money"}, deposit.Tags)
	assert.Equal(t, StatusPending, deposit.Status)
	assert.Same(t, deposit, nodes[deposit.ID])
}

func TestRecorder_Outcomes(t *testing.T) {
	report := run(t, context.Background(), newAccountSpec()).Report()

	assert.Equal(t, StatusFailed, report.Status)
	require.NotNil(t, report.EndTime)
	require.NotNil(t, report.Duration)
	assert.Equal(t, Summary{Total: 4, Passed: 1, Failed: 2, Pending: 1, Skipped: 1}, report.Summary)

	deposit := find(report.Root, "deposit")
	assert.Equal(t, StatusPassed, deposit.Status)
	assert.Equal(t, "PASSED", deposit.Outcome)
	assert.Nil(t, deposit.Error)
	assert.NotNil(t, deposit.Duration)

	overdraw := find(report.Root, "overdraw")
	assert.Equal(t, StatusFailed, overdraw.Status)
	assert.Equal(t, "FAILED", overdraw.Outcome)
	require.NotNil(t, overdraw.Error)
	assert.Equal(t, "assertion", overdraw.Error.Type)
	assert.Equal(t, "accepted", overdraw.Error.Message)

	interest := find(report.Root, "interest")
	assert.Equal(t, StatusFailed, interest.Status)
	assert.Equal(t, "PENDING", interest.Outcome)
	assert.Equal(t, "incomplete", interest.Error.Type)

	withdraw := find(report.Root, "withdraw")
	assert.Equal(t, StatusSkipped, withdraw.Status)
	assert.Equal(t, "feature set up did not complete", withdraw.SkipReason)

	withdrawals := find(report.Root, "Withdrawals")
	assert.Equal(t, StatusFailed, withdrawals.Status)
	assert.Equal(t, "ERROR", withdrawals.Outcome)
	assert.Equal(t, "infrastructure", withdrawals.Error.Type)
	assert.Equal(t, "locked", withdrawals.Error.Message)

	empty := find(report.Root, "Empty")
	assert.Equal(t, StatusSkipped, empty.Status)
	assert.Equal(t, "Feature Empty did not contain any scenarios.", empty.SkipReason)
}

func TestRecorder_CancelledRunSkipsTree(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := run(t, ctx, newAccountSpec()).Report()

	assert.Equal(t, StatusSkipped, report.Status)
	assert.Equal(t, 4, report.Summary.Skipped)
	deposit := find(report.Root, "deposit")
	assert.Equal(t, "run cancelled", deposit.SkipReason)
}

func TestRecorder_ReportIsSnapshot(t *testing.T) {
	rec := run(t, context.Background(), newAccountSpec())

	first := rec.Report()
	first.Root.Children[0].Name = "changed"
	first.Root.Children[0].Tags = append(first.Root.Children[0].Tags, "x")

	second := rec.Report()
	assert.Equal(t, "Accounts", second.Root.Children[0].Name)
}

func TestRecorder_Durations(t *testing.T) {
	root, err := engine.Discover(engine.DiscoveryRequest{
		Selectors: []engine.Selector{engine.SelectSpecification(newAccountSpec())},
	})
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := start
	rec := NewRecorder(root)
	rec.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	scenario := root.Specifications()[0].Children()[0].Children()[0]
	rec.ExecutionStarted(scenario)
	rec.ExecutionFinished(scenario, engine.ExecutionResult{Status: engine.StatusSuccessful})

	entry := find(rec.Report().Root, "deposit")
	require.NotNil(t, entry.Duration)
	assert.Equal(t, int64(1000), *entry.Duration)
	assert.Equal(t, start.Add(time.Second), *entry.StartTime)
}

func TestSkipTree_KeepsFinishedNodes(t *testing.T) {
	root := &NodeEntry{Status: StatusPending, Children: []*NodeEntry{
		{Status: StatusPassed},
		{Status: StatusPending},
	}}

	skipTree(root, "stop")

	assert.Equal(t, StatusSkipped, root.Status)
	assert.Equal(t, StatusPassed, root.Children[0].Status)
	assert.Empty(t, root.Children[0].SkipReason)
	assert.Equal(t, StatusSkipped, root.Children[1].Status)
	assert.Equal(t, "stop", root.Children[1].SkipReason)
}
