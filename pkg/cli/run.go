package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/khaos/pkg/config"
	"github.com/devicelab-dev/khaos/pkg/engine"
	"github.com/devicelab-dev/khaos/pkg/khaos"
	"github.com/devicelab-dev/khaos/pkg/logger"
	"github.com/devicelab-dev/khaos/pkg/metrics"
	"github.com/devicelab-dev/khaos/pkg/report"
)

// selectionFlags choose what gets discovered. run and list share them.
func selectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "include-tags",
			Usage: "Only include scenarios with these tags",
		},
		&cli.StringSliceFlag{
			Name:  "exclude-tags",
			Usage: "Exclude scenarios with these tags",
		},
		&cli.StringSliceFlag{
			Name:  "select",
			Usage: "Only run these unique ids and their children (see list)",
		},
		&cli.StringSliceFlag{
			Name:    "param",
			Aliases: []string{"P"},
			Usage:   "Configuration parameters (KEY=VALUE)",
		},
	}
}

func newRunCommand(specs []khaos.Specification) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the specifications",
		Description: `Discovers and runs every specification, then prints a summary.

Configuration is resolved from defaults, khaos.yaml, KHAOS_* environment
variables, --param values and finally the flags below.

Examples:
  khaos run --sequential
  khaos run --param khaos.failOnPending=false
  khaos run --select "[engine:khaos]/[specification:Bank]" --report out/report.yaml`,
		Flags: append(selectionFlags(),
			&cli.BoolFlag{
				Name:  "sequential",
				Usage: "Run specifications, features and scenarios one at a time",
			},
			&cli.BoolFlag{
				Name:  "fail-on-pending",
				Usage: "Report pending scenarios as failed",
				Value: true,
			},
			&cli.IntFlag{
				Name:  "max-parallel",
				Usage: "Bound concurrent siblings per level (0 = unbounded)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format (markdown, text)",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write a report (.json, .yaml, .yml); bare names go to $KHAOS_HOME/reports",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write Prometheus metrics in text format to this file",
			},
		),
		Action: func(c *cli.Context) error {
			return runSpecs(c, specs)
		},
	}
}

// RunConfig holds everything resolved for one run.
type RunConfig struct {
	Config      *config.Config
	Selected    []engine.UniqueID
	MetricsFile string
	NoColor     bool
}

// buildRunConfig layers the command line over the resolved configuration.
func buildRunConfig(c *cli.Context) (*RunConfig, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	params, err := parseParams(c.StringSlice("param"))
	if err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(c.String("config"), dir, nil, params)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if c.IsSet("sequential") {
		cfg.Parallel = !c.Bool("sequential")
	}
	if c.IsSet("fail-on-pending") {
		cfg.FailOnPending = c.Bool("fail-on-pending")
	}
	if c.IsSet("max-parallel") {
		cfg.MaxParallel = c.Int("max-parallel")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	if c.IsSet("report") {
		cfg.ReportPath = c.String("report")
	}
	if c.IsSet("include-tags") {
		cfg.IncludeTags = c.StringSlice("include-tags")
	}
	if c.IsSet("exclude-tags") {
		cfg.ExcludeTags = c.StringSlice("exclude-tags")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rc := &RunConfig{
		Config:      cfg,
		MetricsFile: c.String("metrics-file"),
		NoColor:     c.Bool("no-color") || os.Getenv("NO_COLOR") != "",
	}
	for _, raw := range c.StringSlice("select") {
		id, err := engine.ParseUniqueID(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --select value: %w", err)
		}
		rc.Selected = append(rc.Selected, id)
	}
	return rc, nil
}

// discover builds the tree the run configuration selects.
func (rc *RunConfig) discover(specs []khaos.Specification) (*engine.EngineDescriptor, error) {
	selectors := make([]engine.Selector, len(specs))
	for i, s := range specs {
		selectors[i] = engine.SelectSpecification(s)
	}
	req := rc.Config.DiscoveryRequest(selectors...)
	req.UniqueIDs = rc.Selected
	return engine.Discover(req)
}

// setupDiagnostics routes engine diagnostics to the configured log file, or
// to stderr when only a level was requested. The returned func restores
// the previous state.
func setupDiagnostics(c *cli.Context, cfg *config.Config) (func(), error) {
	if cfg.LogFile != "" {
		if err := logger.Init(cfg.LogFile, cfg.LogLevel); err != nil {
			return nil, err
		}
		return logger.Close, nil
	}
	if c.IsSet("log-level") {
		l, err := logger.New(cfg.LogLevel, c.App.ErrWriter)
		if err != nil {
			return nil, err
		}
		logger.SetDiagnostics(l)
		return func() { logger.SetDiagnostics(nil) }, nil
	}
	return func() {}, nil
}

func runSpecs(c *cli.Context, specs []khaos.Specification) error {
	rc, err := buildRunConfig(c)
	if err != nil {
		return err
	}
	cfg := rc.Config

	restore, err := setupDiagnostics(c, cfg)
	if err != nil {
		return err
	}
	defer restore()

	root, err := rc.discover(specs)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	opts.LogAdapter = logger.NewConsole(c.App.Writer)

	recorder := report.NewRecorder(root)
	listeners := engine.MultiListener{recorder}

	var registry *prometheus.Registry
	if rc.MetricsFile != "" {
		registry = prometheus.NewRegistry()
		listeners = append(listeners, metrics.NewListener(registry))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("running %d specifications (parallel=%v, failOnPending=%v)",
		len(root.Children()), opts.Parallel, opts.FailOnPending)
	if err := engine.New(opts).Execute(ctx, root, listeners); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	result := recorder.Report()
	printSummary(c.App.Writer, result, newPalette(!rc.NoColor))

	if cfg.ReportPath != "" {
		path := config.ReportPath(cfg.ReportPath)
		if err := report.Write(path, result); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Report written to %s\n", path)
	}
	if registry != nil {
		if err := metrics.WriteTextfile(rc.MetricsFile, registry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	if result.Status == report.StatusFailed {
		return fmt.Errorf("run failed: %d of %d scenarios failed", result.Summary.Failed, result.Summary.Total)
	}
	return nil
}

// parseParams parses KEY=VALUE pairs.
func parseParams(params []string) (map[string]string, error) {
	result := make(map[string]string)
	for _, p := range params {
		parts := strings.SplitN(p, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected KEY=VALUE)", p)
		}
		result[parts[0]] = parts[1]
	}
	return result, nil
}
