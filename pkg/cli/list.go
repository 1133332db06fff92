package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/khaos/pkg/engine"
	"github.com/devicelab-dev/khaos/pkg/khaos"
)

func newListCommand(specs []khaos.Specification) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List discovered specifications, features and scenarios",
		Description: `Prints the discovered tree with the unique id of every node.
Pass an id to "run --select" to run just that subtree.`,
		Flags: selectionFlags(),
		Action: func(c *cli.Context) error {
			rc, err := buildRunConfig(c)
			if err != nil {
				return err
			}
			root, err := rc.discover(specs)
			if err != nil {
				return fmt.Errorf("discovery failed: %w", err)
			}
			printTree(c.App.Writer, root, newPalette(!rc.NoColor))
			return nil
		},
	}
}

func printTree(w io.Writer, root *engine.EngineDescriptor, p palette) {
	for _, child := range root.Children() {
		printNode(w, child, 0, p)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, countLine(root))
}

func printNode(w io.Writer, d engine.Descriptor, depth int, p palette) {
	indent := strings.Repeat("  ", depth)
	name := d.DisplayName()
	if d.Kind() != engine.KindScenario {
		name = p.bold(name)
	}
	line := indent + name
	if tags := d.Tags(); len(tags) > 0 && d.Kind() != engine.KindSpecification {
		line += " " + p.cyan("["+strings.Join(tags, ", ")+"]")
	}
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "%s  %s\n", indent, p.gray(d.UniqueID().String()))
	for _, child := range d.Children() {
		printNode(w, child, depth+1, p)
	}
}
