package engine

import (
	"context"
	"fmt"

	"github.com/devicelab-dev/khaos/pkg/core"
	"github.com/devicelab-dev/khaos/pkg/format"
	"github.com/devicelab-dev/khaos/pkg/khaos"
	"github.com/devicelab-dev/khaos/pkg/logger"
)

const (
	reasonCancelled       = "run cancelled"
	reasonSetUpIncomplete = "feature set up did not complete"
	funnelBuffer          = 64
)

// execution is the state of one Execute call.
type execution struct {
	engine   *Engine
	listener Listener
}

func (r *execution) execute(ctx context.Context, d Descriptor, log logger.Context) error {
	exec, ok := r.engine.executors[d.Kind()]
	if !ok {
		return fmt.Errorf("no executor for %s descriptor %s", d.Kind(), d.UniqueID())
	}

	if ctx.Err() != nil {
		r.skip(d, reasonCancelled)
		return nil
	}
	return exec(ctx, r, d, log)
}

func (r *execution) skip(d Descriptor, reason string) {
	logger.Debug("skipped %s: %s", d.UniqueID(), reason)
	r.listener.ExecutionSkipped(d, reason)
}

// executeContainer reports an empty container as skipped; otherwise it
// reports the container started, runs body and reports its result.
func (r *execution) executeContainer(d Descriptor, emptyReason string, body func() core.ScenarioResult) {
	if len(d.base().children) == 0 {
		r.skip(d, emptyReason)
		return
	}
	r.executeTest(d, body)
}

func (r *execution) executeTest(d Descriptor, body func() core.ScenarioResult) {
	r.listener.ExecutionStarted(d)
	result := body()
	r.listener.ExecutionFinished(d, HandleResult(result, r.engine.opts.FailOnPending))
}

func (r *execution) fanout(ctx context.Context, d Descriptor, fn func(ctx context.Context, idx int, child Descriptor) error) error {
	opts := r.engine.opts
	return fanout(ctx, d.base().children, opts.Parallel, opts.MaxParallel, fn)
}

// executeChildren gives every child its own log context, created in
// declaration order before any child starts.
func (r *execution) executeChildren(ctx context.Context, d Descriptor, log logger.Context) error {
	logs := make([]logger.Context, len(d.base().children))
	for i := range logs {
		logs[i] = log.Child()
	}
	return r.fanout(ctx, d, func(ctx context.Context, idx int, child Descriptor) error {
		return r.execute(ctx, child, logs[idx])
	})
}

func (r *execution) adapterFor(spec *SpecDescriptor) logger.Adapter {
	if a := spec.Specification.LogAdapter(); a != nil {
		return a
	}
	return r.engine.opts.LogAdapter
}

func (r *execution) formatFor(spec *SpecDescriptor) format.Provider {
	if p := spec.Specification.FormatProvider(); p != nil {
		return p
	}
	return r.engine.opts.Format
}

func executeEngine(ctx context.Context, r *execution, d Descriptor, _ logger.Context) error {
	var err error
	r.executeContainer(d, "No test specifications found.", func() core.ScenarioResult {
		if !r.engine.opts.Parallel {
			err = r.fanout(ctx, d, func(ctx context.Context, _ int, child Descriptor) error {
				spec := child.(*SpecDescriptor)
				return r.execute(ctx, spec, logger.NewDelegating(r.adapterFor(spec)))
			})
			return core.Passed()
		}

		// Each specification buffers its output and hands it to the
		// funnel as one block once it completes.
		funnel := logger.NewFunnel(funnelBuffer)
		defer funnel.Close()

		err = r.fanout(ctx, d, func(ctx context.Context, _ int, child Descriptor) error {
			spec := child.(*SpecDescriptor)
			log := logger.NewBuffered(funnel.Adapter(r.adapterFor(spec)))
			defer log.Flush()
			return r.execute(ctx, spec, log)
		})
		return core.Passed()
	})
	return err
}

func executeSpecification(ctx context.Context, r *execution, d Descriptor, log logger.Context) error {
	spec := d.(*SpecDescriptor)
	emptyReason := fmt.Sprintf("Specification %s did not contain any features.", spec.name)

	var err error
	r.executeContainer(d, emptyReason, func() core.ScenarioResult {
		writer := r.formatFor(spec).NewWriter(log)
		writer.PrintSpecBanner(spec.name)

		err = r.executeChildren(ctx, d, log)
		return core.Passed()
	})
	return err
}

func executeFeature(ctx context.Context, r *execution, d Descriptor, log logger.Context) error {
	feature := d.(*FeatureDescriptor)
	emptyReason := fmt.Sprintf("Feature %s did not contain any scenarios.", feature.name)

	var err error
	r.executeContainer(d, emptyReason, func() core.ScenarioResult {
		writer := r.formatFor(feature.Spec).NewWriter(log)
		writer.PrintFeatureBanner(feature.name, feature.tags)

		ran := false
		result := khaos.NewFeatureExecution().Execute(writer, feature.SetUp, feature.CleanUp, func() {
			ran = true

			err = r.executeChildren(ctx, d, log)
		})

		if !ran {
			for _, child := range feature.children {
				r.skip(child, reasonSetUpIncomplete)
			}
		}
		return result
	})
	return err
}

func executeScenario(_ context.Context, r *execution, d Descriptor, log logger.Context) error {
	scenario := d.(*ScenarioDescriptor)

	r.executeTest(d, func() core.ScenarioResult {
		writer := r.formatFor(scenario.Feature.Spec).NewWriter(log)
		writer.PrintScenarioBanner(scenario.name, scenario.tags)

		result := khaos.NewScenarioExecution().Execute(writer, scenario.SetUp, scenario.CleanUp, scenario.Body)

		writer.PrintScenarioResultBanner(result)
		logger.Debug("scenario %s finished: %s", scenario.id, result)
		return result
	})
	return nil
}
