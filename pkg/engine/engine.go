// Package engine discovers specifications into a descriptor tree and
// executes it, reporting every node to a Listener.
package engine

import (
	"context"
	"errors"

	"github.com/devicelab-dev/khaos/pkg/format"
	"github.com/devicelab-dev/khaos/pkg/logger"
)

// Options configures an Engine.
type Options struct {
	// Parallel runs siblings at every level concurrently.
	Parallel bool
	// FailOnPending reports PENDING scenarios as failed.
	FailOnPending bool
	// MaxParallel bounds the concurrent siblings per level; 0 is unbounded.
	MaxParallel int

	// LogAdapter is used by specifications that do not provide one.
	LogAdapter logger.Adapter
	// Format is used by specifications that do not provide one.
	Format format.Provider
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{Parallel: true, FailOnPending: true}
}

type nodeExecutor func(ctx context.Context, r *execution, d Descriptor, log logger.Context) error

// Engine executes descriptor trees.
type Engine struct {
	opts      Options
	executors map[Kind]nodeExecutor
}

// New creates an Engine.
func New(opts Options) *Engine {
	if opts.LogAdapter == nil {
		opts.LogAdapter = logger.Console()
	}
	if opts.Format == nil {
		opts.Format = format.Markdown
	}
	if opts.MaxParallel < 0 {
		opts.MaxParallel = 0
	}

	return &Engine{
		opts: opts,
		executors: map[Kind]nodeExecutor{
			KindEngine:        executeEngine,
			KindSpecification: executeSpecification,
			KindFeature:       executeFeature,
			KindScenario:      executeScenario,
		},
	}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Execute runs the tree under root. Scenario outcomes are reported to the
// listener; the returned error is reserved for trees the engine cannot
// execute.
func (e *Engine) Execute(ctx context.Context, root *EngineDescriptor, listener Listener) error {
	if root == nil {
		return errors.New("nil engine descriptor")
	}
	if listener == nil {
		listener = NopListener{}
	}

	r := &execution{engine: e, listener: listener}
	return r.execute(ctx, root, logger.NewDelegating(e.opts.LogAdapter))
}
