package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devicelab-dev/khaos/pkg/core"
	"github.com/devicelab-dev/khaos/pkg/logger"
)

func TestTextWriter_Banners(t *testing.T) {
	r := logger.NewRecorder()
	w := NewTextWriter(r)

	w.PrintSpecBanner("Bank")
	w.PrintFeatureBanner("Deposits", nil)
	w.PrintScenarioBanner("Deposit cash", []string{"smoke"})
	w.PrintScenarioResultBanner(core.Passed())

	assert.Equal(t, []string{
		strings.Repeat("*", 80),
		"*",
		"*   SPECIFICATION: Bank",
		"*",
		strings.Repeat("*", 80),
		strings.Repeat("=", 60),
		"|| FEATURE: Deposits",
		strings.Repeat("=", 60),
		strings.Repeat("-", 40),
		"| SCENARIO:",
		"|   [smoke]",
		"| Deposit cash",
		strings.Repeat("-", 40),
		strings.Repeat("-", 40),
		"| Scenario Result: PASSED",
		strings.Repeat("-", 40),
	}, r.Lines())
}

func TestTextWriter_TaggedFeatureAndLifecycle(t *testing.T) {
	r := logger.NewRecorder()
	w := NewTextWriter(r)

	w.PrintFeatureBanner("Withdrawals", []string{"a", "b"})
	w.PrintFeatureLifecycleBanner("Set Up")

	assert.Equal(t, []string{
		strings.Repeat("=", 60),
		"|| FEATURE:",
		"||   [a]",
		"||   [b]",
		"|| Withdrawals",
		strings.Repeat("=", 60),
		strings.Repeat("-", 40),
		"| SCENARIO: Set Up",
		strings.Repeat("-", 40),
	}, r.Lines())
}

func TestTextWriter_Steps(t *testing.T) {
	tests := []struct {
		name string
		msg  core.Message
		want string
	}{
		{
			name: "full",
			msg:  core.Message{Description: "the sum", Expected: 6, HasExpected: true, Evaluated: 6, HasEvaluated: true, Result: core.StepPassed()},
			want: "* the sum (6) : 6 -> PASSED",
		},
		{
			name: "no expected",
			msg:  core.Message{Description: "a value", Evaluated: "x", HasEvaluated: true, Result: core.StepPassed()},
			want: "* a value : x -> PASSED",
		},
		{
			name: "assumed",
			msg:  core.Message{Description: "an account", Result: core.StepAssumed()},
			want: "* an account -> ASSUMED",
		},
		{
			name: "none result",
			msg:  core.Message{Description: "hello", Result: core.StepNone()},
			want: "* hello",
		},
		{
			name: "failed without evaluated",
			msg:  core.Message{Description: "check", Expected: 1, HasExpected: true, Result: core.StepFailed(errors.New("x"))},
			want: "* check (1) -> FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := logger.NewRecorder()
			NewTextWriter(r).PrintStep(tt.msg)
			assert.Equal(t, []string{tt.want}, r.Lines())
		})
	}
}

func TestTextWriter_LabelMessageLine(t *testing.T) {
	r := logger.NewRecorder()
	w := NewTextWriter(r)

	w.PrintStepLabel("When")
	w.PrintStepMessage("note")
	w.PrintLine()

	assert.Equal(t, []string{"When", "note", ""}, r.Lines())
}

func TestMarkdownWriter_Banners(t *testing.T) {
	r := logger.NewRecorder()
	w := NewMarkdownWriter(r)

	w.PrintSpecBanner("Bank")
	w.PrintFeatureBanner("Deposits", []string{"a", "b"})
	w.PrintFeatureLifecycleBanner("Set Up")
	w.PrintScenarioBanner("Deposit cash", nil)
	w.PrintScenarioResultBanner(core.Failed(errors.New("x")))

	assert.Equal(t, []string{
		"## SPECIFICATION: Bank",
		"",
		strings.Repeat("-", 40),
		"  ",
		"### FEATURE: Deposits",
		"  Tags: `[a]` `[b]`",
		"",
		strings.Repeat("-", 20),
		"#### Feature - Set Up",
		"",
		"#### SCENARIO: Deposit cash",
		"> Scenario Result: **FAILED**",
		"  ",
	}, r.Lines())
}

func TestMarkdownWriter_Steps(t *testing.T) {
	r := logger.NewRecorder()
	w := NewMarkdownWriter(r)

	w.PrintStepLabel("Then")
	w.PrintStep(core.Message{Description: "the sum", Expected: 6, HasExpected: true, Evaluated: 6, HasEvaluated: true, Result: core.StepPassed()})
	w.PrintStep(core.Message{Description: "info", Result: core.StepNone()})
	w.PrintStepMessage("Scenario pending: later")
	w.PrintLine()

	assert.Equal(t, []string{
		"",
		"**Then:**  ",
		"* the sum (`6`) : `6` -> **PASSED**  ",
		"* info  ",
		"Scenario pending: later  ",
		"  ",
	}, r.Lines())
}

func TestProviderByName(t *testing.T) {
	tests := []struct {
		name    string
		want    Provider
		wantErr bool
	}{
		{"", Markdown, false},
		{"markdown", Markdown, false},
		{"MD", Markdown, false},
		{"text", Text, false},
		{"txt", Text, false},
		{"html", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProviderByName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			r := logger.NewRecorder()
			gotWriter := got.NewWriter(r)
			wantWriter := tt.want.NewWriter(r)
			assert.IsType(t, wantWriter, gotWriter)
		})
	}
}
