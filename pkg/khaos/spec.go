// Package khaos is the authoring DSL for behaviour specifications.
//
// A specification is a struct whose exported FeatureDefinition fields are
// features. Each feature declares scenarios built from Given, When and Then
// steps:
//
//	type Calculator struct {
//		khaos.Spec
//		Addition khaos.FeatureDefinition
//	}
//
//	func NewCalculator() *Calculator {
//		return &Calculator{Addition: khaos.Feature(func(f khaos.FeatureBuilder) {
//			f.Scenario("add one", func(s khaos.ScenarioBuilder) {
//				a := khaos.Given(s, "a number", khaos.Value(5))
//				r := khaos.When(s, "one is added", func() (int, error) { return a + 1, nil })
//				khaos.ThenExpect(s, "the sum", 6, func(want int) (int, error) {
//					return r, verify.Equal(want, r)
//				})
//			})
//		})}
//	}
package khaos

import (
	"github.com/devicelab-dev/khaos/pkg/format"
	"github.com/devicelab-dev/khaos/pkg/logger"
)

// Specification is implemented by every specification type. A nil adapter
// or provider selects the engine defaults.
type Specification interface {
	LogAdapter() logger.Adapter
	FormatProvider() format.Provider
}

// Spec provides the default Specification methods when embedded.
type Spec struct{}

// LogAdapter implements Specification
func (Spec) LogAdapter() logger.Adapter { return nil }

// FormatProvider implements Specification
func (Spec) FormatProvider() format.Provider { return nil }

// Named is implemented by specifications that choose their display name.
type Named interface {
	SpecificationName() string
}
