package khaos

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/devicelab-dev/khaos/pkg/core"
)

// FeatureDefinition is the value held by a specification's feature fields.
type FeatureDefinition struct {
	tags  []string
	build func(FeatureBuilder)
}

// Feature defines a feature. The build block runs each time the owning
// specification is discovered.
func Feature(build func(FeatureBuilder), tags ...string) FeatureDefinition {
	return FeatureDefinition{tags: append([]string(nil), tags...), build: build}
}

// Tags returns the feature level tags.
func (d FeatureDefinition) Tags() []string {
	return append([]string(nil), d.tags...)
}

// IsZero reports whether the definition was never built with Feature.
func (d FeatureDefinition) IsZero() bool {
	return d.build == nil
}

// ScenarioDefinition is a scenario declared inside a feature.
type ScenarioDefinition struct {
	Name    string
	Tags    []string
	Body    ScenarioBlock
	CleanUp CleanUpBlock
}

// FeatureSteps is the evaluated content of a feature definition.
type FeatureSteps struct {
	SetUpFeature        []SetUpBlock
	CleanUpFeature      []CleanUpBlock
	SetUpEachScenario   []SetUpBlock
	CleanUpEachScenario []CleanUpBlock

	// Scenarios keeps declaration order; redefining a name replaces the
	// earlier scenario in place.
	Scenarios *orderedmap.OrderedMap[string, *ScenarioDefinition]
}

// Define evaluates the build block of the definition.
func (d FeatureDefinition) Define() (steps *FeatureSteps, err error) {
	steps = &FeatureSteps{Scenarios: orderedmap.New[string, *ScenarioDefinition]()}
	if d.build == nil {
		return steps, nil
	}

	defer func() {
		if r := recover(); r != nil {
			steps = nil
			err = fmt.Errorf("feature definition panicked: %w", core.FromPanic(r))
		}
	}()

	d.build(&featureBuilder{steps: steps})
	return steps, nil
}

// ScenarioList returns the scenarios in declaration order.
func (s *FeatureSteps) ScenarioList() []*ScenarioDefinition {
	out := make([]*ScenarioDefinition, 0, s.Scenarios.Len())
	for pair := s.Scenarios.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// ScenarioCleanUp returns the clean up blocks of a scenario: its own block
// first, then the feature's CleanUpEachScenario blocks.
func (s *FeatureSteps) ScenarioCleanUp(def *ScenarioDefinition) []CleanUpBlock {
	out := make([]CleanUpBlock, 0, len(s.CleanUpEachScenario)+1)
	if def.CleanUp != nil {
		out = append(out, def.CleanUp)
	}
	return append(out, s.CleanUpEachScenario...)
}

type featureBuilder struct {
	steps *FeatureSteps
}

func (b *featureBuilder) SetUpFeature(definition func(GivenStepBuilder)) {
	b.steps.SetUpFeature = append(b.steps.SetUpFeature, definition)
}

func (b *featureBuilder) CleanUpFeature(definition func(ThenStepBuilder)) {
	b.steps.CleanUpFeature = append(b.steps.CleanUpFeature, definition)
}

func (b *featureBuilder) SetUpEachScenario(definition func(GivenStepBuilder)) {
	b.steps.SetUpEachScenario = append(b.steps.SetUpEachScenario, definition)
}

func (b *featureBuilder) CleanUpEachScenario(definition func(ThenStepBuilder)) {
	b.steps.CleanUpEachScenario = append(b.steps.CleanUpEachScenario, definition)
}

func (b *featureBuilder) Tagged(tags ...string) ScenarioDefinitionBuilder {
	return &taggedBuilder{steps: b.steps, tags: append([]string(nil), tags...)}
}

func (b *featureBuilder) Scenario(name string, definition func(ScenarioBuilder)) ScenarioCleanUpBuilder {
	return b.steps.define(name, nil, definition)
}

type taggedBuilder struct {
	steps *FeatureSteps
	tags  []string
}

func (b *taggedBuilder) Scenario(name string, definition func(ScenarioBuilder)) ScenarioCleanUpBuilder {
	return b.steps.define(name, b.tags, definition)
}

func (s *FeatureSteps) define(name string, tags []string, body func(ScenarioBuilder)) ScenarioCleanUpBuilder {
	def := &ScenarioDefinition{Name: name, Tags: tags, Body: body}
	s.Scenarios.Set(name, def)
	return cleanUpBuilder{def: def}
}

type cleanUpBuilder struct {
	def *ScenarioDefinition
}

func (b cleanUpBuilder) CleanUp(definition func(ThenStepBuilder)) {
	b.def.CleanUp = definition
}
