// Package cli provides the command-line interface for khaos specifications.
//
// A test binary hands its specifications to Main:
//
//	func main() {
//		cli.Main(&BankAccountSpecification{}, &ExampleSpecification{})
//	}
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/khaos/pkg/khaos"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "config",
		Usage: "Path to khaos.yaml (default: ./khaos.yaml, then $KHAOS_HOME/khaos.yaml)",
	},
	&cli.StringFlag{
		Name:  "log-level",
		Usage: "Engine diagnostics level (debug, info, warn, error)",
	},
	&cli.StringFlag{
		Name:  "log-file",
		Usage: "Write engine diagnostics to this file",
	},
	&cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable ANSI colors",
	},
}

// NewApp builds the CLI application for specs.
func NewApp(specs ...khaos.Specification) *cli.App {
	return &cli.App{
		Name:    "khaos",
		Usage:   "Run Given/When/Then specifications",
		Version: Version,
		Description: `Runs the specifications compiled into this binary.

Examples:
  khaos run
  khaos run --sequential --format text
  khaos run --include-tags smoke --report report.json
  khaos list`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			newRunCommand(specs),
			newListCommand(specs),
		},
	}
}

// Main runs the CLI for specs with the process arguments and exits
// non-zero on failure.
func Main(specs ...khaos.Specification) {
	if err := NewApp(specs...).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
