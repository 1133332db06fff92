package format

import (
	"strings"

	"github.com/devicelab-dev/khaos/pkg/core"
	"github.com/devicelab-dev/khaos/pkg/logger"
)

// Markdown needs two trailing spaces to force a line break.
const mdBreak = "  "

// MarkdownWriter prints output that renders as a Markdown document.
type MarkdownWriter struct {
	log logger.Adapter
}

// NewMarkdownWriter returns a MarkdownWriter writing to log.
func NewMarkdownWriter(log logger.Adapter) *MarkdownWriter {
	return &MarkdownWriter{log: log}
}

func (w *MarkdownWriter) PrintSpecBanner(displayName string) {
	w.log.Info("## SPECIFICATION: " + displayName)
	w.log.Info("")
	w.log.Info(strings.Repeat("-", 40))
	w.log.Info(mdBreak)
}

func (w *MarkdownWriter) PrintFeatureBanner(displayName string, tags []string) {
	w.log.Info("### FEATURE: " + displayName)
	w.printTags(tags)
	w.log.Info("")
	w.log.Info(strings.Repeat("-", 20))
}

func (w *MarkdownWriter) PrintFeatureLifecycleBanner(displayName string) {
	w.log.Info("#### Feature - " + displayName)
}

func (w *MarkdownWriter) PrintScenarioBanner(displayName string, tags []string) {
	w.log.Info("")
	w.log.Info("#### SCENARIO: " + displayName)
	w.printTags(tags)
}

func (w *MarkdownWriter) PrintScenarioResultBanner(result core.ScenarioResult) {
	w.log.Info("> Scenario Result: **" + result.String() + "**")
	w.log.Info(mdBreak)
}

func (w *MarkdownWriter) PrintStepLabel(label string) {
	w.log.Info("")
	w.log.Info("**" + label + ":**" + mdBreak)
}

func (w *MarkdownWriter) PrintStep(msg core.Message) {
	var b strings.Builder
	b.WriteString("* ")
	b.WriteString(msg.Description)
	if msg.HasExpected {
		b.WriteString(" (`" + msg.ExpectedString() + "`)")
	}
	if msg.HasEvaluated {
		b.WriteString(" : `" + msg.EvaluatedString() + "`")
	}
	if msg.Result.Kind != core.StepResultNone {
		b.WriteString(" -> **" + msg.Result.String() + "**")
	}
	b.WriteString(mdBreak)
	w.log.Info(b.String())
}

func (w *MarkdownWriter) PrintStepMessage(msg string) {
	w.log.Info(msg + mdBreak)
}

func (w *MarkdownWriter) PrintLine() {
	w.log.Info(mdBreak)
}

func (w *MarkdownWriter) printTags(tags []string) {
	if len(tags) == 0 {
		return
	}
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = "`[" + tag + "]`"
	}
	w.log.Info("  Tags: " + strings.Join(quoted, " "))
}
