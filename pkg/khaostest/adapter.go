package khaostest

import (
	"testing"

	"github.com/devicelab-dev/khaos/pkg/logger"
)

// TestAdapter writes lines to a test log.
type TestAdapter struct {
	t testing.TB
}

var _ logger.Adapter = (*TestAdapter)(nil)

// NewTestAdapter returns an adapter logging through t.
func NewTestAdapter(t testing.TB) *TestAdapter {
	return &TestAdapter{t: t}
}

func (a *TestAdapter) Info(msg string)  { a.t.Log(msg) }
func (a *TestAdapter) Warn(msg string)  { a.t.Log("WARN " + msg) }
func (a *TestAdapter) Error(msg string) { a.t.Log("ERROR " + msg) }
