package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devicelab-dev/khaos/pkg/core"
)

func TestHandleResult(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name          string
		result        core.ScenarioResult
		failOnPending bool
		status        Status
		cause         error
	}{
		{"passed", core.Passed(), true, StatusSuccessful, nil},
		{"failed", core.Failed(cause), true, StatusFailed, cause},
		{"error", core.Errored(cause), false, StatusFailed, cause},
		{"pending fails", core.Pending(cause), true, StatusFailed, cause},
		{"pending succeeds", core.Pending(cause), false, StatusSuccessful, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HandleResult(tt.result, tt.failOnPending)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.cause, got.Cause)
			assert.Equal(t, tt.result, got.Outcome)
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "successful", StatusSuccessful.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", Status(7).String())
}

func TestKindAndType_String(t *testing.T) {
	assert.Equal(t, "engine", KindEngine.String())
	assert.Equal(t, "specification", KindSpecification.String())
	assert.Equal(t, "feature", KindFeature.String())
	assert.Equal(t, "scenario", KindScenario.String())
	assert.Equal(t, "unknown", Kind(9).String())
	assert.Equal(t, "container", TypeContainer.String())
	assert.Equal(t, "test", TypeTest.String())
}
