// Package format renders specification output. A Writer turns banners and
// recorded steps into lines on a logger.Adapter; a Provider builds writers.
package format

import (
	"fmt"
	"strings"

	"github.com/devicelab-dev/khaos/pkg/core"
	"github.com/devicelab-dev/khaos/pkg/logger"
)

// Writer prints the banners and step lines of a specification run.
type Writer interface {
	PrintSpecBanner(displayName string)
	PrintFeatureBanner(displayName string, tags []string)
	PrintFeatureLifecycleBanner(displayName string)
	PrintScenarioBanner(displayName string, tags []string)
	PrintScenarioResultBanner(result core.ScenarioResult)
	// PrintStepLabel prints the heading of a group of steps, e.g. "Given".
	PrintStepLabel(label string)
	PrintStep(msg core.Message)
	PrintStepMessage(msg string)
	PrintLine()
}

// Provider builds a Writer bound to a log adapter.
type Provider interface {
	NewWriter(log logger.Adapter) Writer
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(log logger.Adapter) Writer

// NewWriter implements Provider
func (f ProviderFunc) NewWriter(log logger.Adapter) Writer { return f(log) }

var (
	// Markdown renders output as Markdown.
	Markdown Provider = ProviderFunc(func(log logger.Adapter) Writer { return NewMarkdownWriter(log) })
	// Text renders output as plain text banners.
	Text Provider = ProviderFunc(func(log logger.Adapter) Writer { return NewTextWriter(log) })
)

// Names lists the providers accepted by ProviderByName.
var Names = []string{"markdown", "text"}

// ProviderByName returns the provider registered under name.
func ProviderByName(name string) (Provider, error) {
	switch strings.ToLower(name) {
	case "", "markdown", "md":
		return Markdown, nil
	case "text", "txt":
		return Text, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (must be one of %s)", name, strings.Join(Names, ", "))
	}
}
