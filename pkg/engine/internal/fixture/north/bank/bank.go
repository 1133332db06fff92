// Package bank declares a specification whose type name is shared with
// another fixture package.
package bank

import "github.com/devicelab-dev/khaos/pkg/khaos"

// Spec has one feature with one scenario.
type Spec struct {
	khaos.Spec

	Branch khaos.FeatureDefinition
}

// New returns a Spec whose scenario is named after the branch.
func New() *Spec {
	return &Spec{
		Branch: khaos.Feature(func(f khaos.FeatureBuilder) {
			f.Scenario("open the north branch", func(s khaos.ScenarioBuilder) {
				s.Then("the branch is open")
			})
		}),
	}
}
