package format

import (
	"strings"

	"github.com/devicelab-dev/khaos/pkg/core"
	"github.com/devicelab-dev/khaos/pkg/logger"
)

var (
	specRule     = strings.Repeat("*", 80)
	featureRule  = strings.Repeat("=", 60)
	scenarioRule = strings.Repeat("-", 40)
)

// TextWriter prints plain text banners framed with rules.
type TextWriter struct {
	log logger.Adapter
}

// NewTextWriter returns a TextWriter writing to log.
func NewTextWriter(log logger.Adapter) *TextWriter {
	return &TextWriter{log: log}
}

func (w *TextWriter) PrintSpecBanner(displayName string) {
	w.log.Info(specRule)
	w.log.Info("*")
	w.log.Info("*   SPECIFICATION: " + displayName)
	w.log.Info("*")
	w.log.Info(specRule)
}

func (w *TextWriter) PrintFeatureBanner(displayName string, tags []string) {
	w.log.Info(featureRule)
	if len(tags) > 0 {
		w.log.Info("|| FEATURE:")
		for _, tag := range tags {
			w.log.Info("||   [" + tag + "]")
		}
		w.log.Info("|| " + displayName)
	} else {
		w.log.Info("|| FEATURE: " + displayName)
	}
	w.log.Info(featureRule)
}

func (w *TextWriter) PrintFeatureLifecycleBanner(displayName string) {
	w.PrintScenarioBanner(displayName, nil)
}

func (w *TextWriter) PrintScenarioBanner(displayName string, tags []string) {
	w.log.Info(scenarioRule)
	if len(tags) > 0 {
		w.log.Info("| SCENARIO:")
		for _, tag := range tags {
			w.log.Info("|   [" + tag + "]")
		}
		w.log.Info("| " + displayName)
	} else {
		w.log.Info("| SCENARIO: " + displayName)
	}
	w.log.Info(scenarioRule)
}

func (w *TextWriter) PrintScenarioResultBanner(result core.ScenarioResult) {
	w.log.Info(scenarioRule)
	w.log.Info("| Scenario Result: " + result.String())
	w.log.Info(scenarioRule)
}

func (w *TextWriter) PrintStepLabel(label string) {
	w.log.Info(label)
}

func (w *TextWriter) PrintStep(msg core.Message) {
	var b strings.Builder
	b.WriteString("* ")
	b.WriteString(msg.Description)
	if msg.HasExpected {
		b.WriteString(" (" + msg.ExpectedString() + ")")
	}
	if msg.HasEvaluated {
		b.WriteString(" : " + msg.EvaluatedString())
	}
	if msg.Result.Kind != core.StepResultNone {
		b.WriteString(" -> " + msg.Result.String())
	}
	w.log.Info(b.String())
}

func (w *TextWriter) PrintStepMessage(msg string) {
	w.log.Info(msg)
}

func (w *TextWriter) PrintLine() {
	w.log.Info("")
}
