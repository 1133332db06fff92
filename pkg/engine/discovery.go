package engine

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/devicelab-dev/khaos/pkg/khaos"
	"github.com/devicelab-dev/khaos/pkg/logger"
)

// Selector yields a specification to discover.
type Selector interface {
	specification() (khaos.Specification, error)
}

type instanceSelector struct {
	spec khaos.Specification
}

func (s instanceSelector) specification() (khaos.Specification, error) {
	return s.spec, nil
}

type factorySelector struct {
	factory func() (khaos.Specification, error)
}

func (s factorySelector) specification() (khaos.Specification, error) {
	if s.factory == nil {
		return nil, errors.New("nil specification factory")
	}
	return s.factory()
}

// SelectSpecification selects a specification instance. The same instance
// is reused by every discovery.
func SelectSpecification(spec khaos.Specification) Selector {
	return instanceSelector{spec: spec}
}

// SelectFactory selects a specification built fresh for every discovery.
func SelectFactory(factory func() (khaos.Specification, error)) Selector {
	return factorySelector{factory: factory}
}

// DiscoveryRequest describes what to discover.
type DiscoveryRequest struct {
	Selectors []Selector

	// IncludeTags keeps only scenarios carrying at least one of the tags.
	IncludeTags []string
	// ExcludeTags drops scenarios carrying any of the tags.
	ExcludeTags []string
	// UniqueIDs keeps only the selected nodes and their descendants.
	UniqueIDs []UniqueID
}

const featureTag = "khaos"

var (
	featureType    = reflect.TypeOf(khaos.FeatureDefinition{})
	featurePtrType = reflect.TypeOf(&khaos.FeatureDefinition{})
)

// Discover builds the descriptor tree for the request. It fails when a
// selector cannot produce a specification or a feature definition cannot
// be evaluated.
func Discover(req DiscoveryRequest) (*EngineDescriptor, error) {
	root := newEngineDescriptor()
	filter := newTagFilter(req.IncludeTags, req.ExcludeTags)
	seen := make(map[string]reflect.Type)

	for i, sel := range req.Selectors {
		if sel == nil {
			return nil, fmt.Errorf("selector %d is nil", i)
		}
		spec, err := sel.specification()
		if err != nil {
			return nil, fmt.Errorf("selector %d: failed to create specification: %w", i, err)
		}
		if spec == nil {
			return nil, fmt.Errorf("selector %d: specification is nil", i)
		}

		ident, err := identify(spec)
		if err != nil {
			return nil, fmt.Errorf("selector %d: %w", i, err)
		}

		id := root.id.Append(segmentSpecification, ident.key)
		if prev, ok := seen[ident.key]; ok {
			if prev != ident.typ {
				return nil, fmt.Errorf("selector %d: specifications %s and %s both resolve to %s", i, prev, ident.typ, id)
			}
			logger.Debug("skipping duplicate specification %s", id)
			continue
		}
		seen[ident.key] = ident.typ

		specDesc, err := buildSpecification(spec, ident.name, id, root, filter)
		if err != nil {
			return nil, err
		}
		root.addChild(specDesc)
	}

	if len(req.UniqueIDs) > 0 {
		prune(root, req.UniqueIDs)
	}

	counts := Count(root)
	logger.Debug("discovered %d specifications, %d features, %d scenarios",
		counts[KindSpecification], counts[KindFeature], counts[KindScenario])
	return root, nil
}

// identity names a specification. key is the unique id value: the
// SpecificationName when one is given, else the import path qualified type
// name. name is what banners and reports show.
type identity struct {
	key  string
	name string
	typ  reflect.Type
}

func identify(spec khaos.Specification) (identity, error) {
	t := reflect.TypeOf(spec)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return identity{}, fmt.Errorf("specification %s is not a struct", t)
	}

	if named, ok := spec.(khaos.Named); ok && named.SpecificationName() != "" {
		return identity{key: named.SpecificationName(), name: named.SpecificationName(), typ: t}, nil
	}

	key := t.String()
	if t.PkgPath() != "" && t.Name() != "" {
		key = t.PkgPath() + "." + t.Name()
	}
	return identity{key: key, name: t.String(), typ: t}, nil
}

func buildSpecification(spec khaos.Specification, name string, id UniqueID, root *EngineDescriptor, filter tagFilter) (*SpecDescriptor, error) {
	specDesc := &SpecDescriptor{
		node:          node{id: id, name: name, kind: KindSpecification, parent: root},
		Specification: spec,
	}

	v := reflect.ValueOf(spec)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, fmt.Errorf("specification %s is a nil pointer", name)
		}
		v = v.Elem()
	}
	t := v.Type()
	seen := make(map[string]bool)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Anonymous {
			continue
		}

		featureName := field.Name
		if tag, ok := field.Tag.Lookup(featureTag); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				featureName = tag
			}
		}

		var def khaos.FeatureDefinition
		switch field.Type {
		case featureType:
			def = v.Field(i).Interface().(khaos.FeatureDefinition)
		case featurePtrType:
			ptr := v.Field(i).Interface().(*khaos.FeatureDefinition)
			if ptr == nil {
				continue
			}
			def = *ptr
		default:
			continue
		}

		if seen[featureName] {
			return nil, fmt.Errorf("specification %s declares feature %q more than once", name, featureName)
		}
		seen[featureName] = true

		featureDesc, err := buildFeature(def, featureName, specDesc, filter)
		if err != nil {
			return nil, err
		}
		specDesc.addChild(featureDesc)
	}

	return specDesc, nil
}

func buildFeature(def khaos.FeatureDefinition, name string, spec *SpecDescriptor, filter tagFilter) (*FeatureDescriptor, error) {
	steps, err := def.Define()
	if err != nil {
		return nil, fmt.Errorf("feature %s of %s: %w", name, spec.name, err)
	}

	featureDesc := &FeatureDescriptor{
		node: node{
			id:     spec.id.Append(segmentFeature, name),
			name:   name,
			kind:   KindFeature,
			tags:   def.Tags(),
			parent: spec,
		},
		Spec:    spec,
		SetUp:   steps.SetUpFeature,
		CleanUp: steps.CleanUpFeature,
	}

	for _, scenario := range steps.ScenarioList() {
		tags := mergeTags(scenario.Tags, featureDesc.tags)
		if !filter.keep(tags) {
			logger.Debug("scenario %q of feature %s filtered by tags %v", scenario.Name, name, tags)
			continue
		}
		featureDesc.addChild(&ScenarioDescriptor{
			node: node{
				id:     featureDesc.id.Append(segmentScenario, scenario.Name),
				name:   scenario.Name,
				kind:   KindScenario,
				tags:   tags,
				parent: featureDesc,
			},
			Feature: featureDesc,
			SetUp:   steps.SetUpEachScenario,
			CleanUp: steps.ScenarioCleanUp(scenario),
			Body:    scenario.Body,
		})
	}

	return featureDesc, nil
}

// mergeTags returns the scenario tags followed by the feature tags without
// duplicates.
func mergeTags(scenarioTags, featureTags []string) []string {
	seen := make(map[string]bool, len(scenarioTags)+len(featureTags))
	var out []string
	for _, group := range [][]string{scenarioTags, featureTags} {
		for _, tag := range group {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}

type tagFilter struct {
	include map[string]bool
	exclude map[string]bool
}

func newTagFilter(include, exclude []string) tagFilter {
	f := tagFilter{include: make(map[string]bool), exclude: make(map[string]bool)}
	for _, t := range include {
		f.include[t] = true
	}
	for _, t := range exclude {
		f.exclude[t] = true
	}
	return f
}

func (f tagFilter) keep(tags []string) bool {
	included := len(f.include) == 0
	for _, t := range tags {
		if f.exclude[t] {
			return false
		}
		if f.include[t] {
			included = true
		}
	}
	return included
}

// prune removes every node that is neither selected, an ancestor of a
// selected node nor a descendant of one.
func prune(root *EngineDescriptor, ids []UniqueID) {
	var keep func(d Descriptor) bool
	keep = func(d Descriptor) bool {
		id := d.UniqueID()
		for _, sel := range ids {
			if id.HasPrefix(sel) {
				return true
			}
		}

		n := d.base()
		kept := n.children[:0]
		for _, c := range n.children {
			if keep(c) {
				kept = append(kept, c)
			}
		}
		n.children = kept
		return len(kept) > 0
	}

	keep(root)
}
