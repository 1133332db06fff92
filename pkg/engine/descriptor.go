package engine

import (
	"github.com/devicelab-dev/khaos/pkg/khaos"
)

// Kind identifies the level of a descriptor in the tree.
type Kind int

const (
	KindEngine Kind = iota
	KindSpecification
	KindFeature
	KindScenario
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindEngine:
		return "engine"
	case KindSpecification:
		return "specification"
	case KindFeature:
		return "feature"
	case KindScenario:
		return "scenario"
	default:
		return "unknown"
	}
}

// Type tells whether a descriptor groups other nodes or is a test.
type Type int

const (
	TypeContainer Type = iota
	TypeTest
)

// String returns the lower-case type name.
func (t Type) String() string {
	if t == TypeTest {
		return "test"
	}
	return "container"
}

// Descriptor is a node of the discovered tree.
type Descriptor interface {
	UniqueID() UniqueID
	DisplayName() string
	Kind() Kind
	Type() Type
	Tags() []string
	Parent() Descriptor
	Children() []Descriptor

	base() *node
}

type node struct {
	id       UniqueID
	name     string
	kind     Kind
	tags     []string
	parent   Descriptor
	children []Descriptor
}

func (n *node) UniqueID() UniqueID  { return n.id }
func (n *node) DisplayName() string { return n.name }
func (n *node) Kind() Kind          { return n.kind }
func (n *node) Parent() Descriptor  { return n.parent }
func (n *node) base() *node         { return n }

func (n *node) Type() Type {
	if n.kind == KindScenario {
		return TypeTest
	}
	return TypeContainer
}

func (n *node) Tags() []string {
	return append([]string(nil), n.tags...)
}

func (n *node) Children() []Descriptor {
	return append([]Descriptor(nil), n.children...)
}

func (n *node) addChild(child Descriptor) {
	n.children = append(n.children, child)
}

// EngineDescriptor is the root of the tree.
type EngineDescriptor struct {
	node
}

func newEngineDescriptor() *EngineDescriptor {
	return &EngineDescriptor{node: node{id: RootID(), name: "Khaos", kind: KindEngine}}
}

// Specifications returns the specification children.
func (d *EngineDescriptor) Specifications() []*SpecDescriptor {
	out := make([]*SpecDescriptor, 0, len(d.children))
	for _, c := range d.children {
		if s, ok := c.(*SpecDescriptor); ok {
			out = append(out, s)
		}
	}
	return out
}

// SpecDescriptor is a discovered specification.
type SpecDescriptor struct {
	node
	Specification khaos.Specification
}

// FeatureDescriptor is a feature of a specification. It carries the one-time
// lifecycle blocks of the feature.
type FeatureDescriptor struct {
	node
	Spec    *SpecDescriptor
	SetUp   []khaos.SetUpBlock
	CleanUp []khaos.CleanUpBlock
}

// ScenarioDescriptor is a runnable scenario. SetUp holds the feature's
// SetUpEachScenario blocks; CleanUp holds the scenario's own block followed
// by the feature's CleanUpEachScenario blocks.
type ScenarioDescriptor struct {
	node
	Feature *FeatureDescriptor
	SetUp   []khaos.SetUpBlock
	CleanUp []khaos.CleanUpBlock
	Body    khaos.ScenarioBlock
}

// Walk visits d and its descendants depth first in declaration order.
// Returning false from fn skips the children of that node.
func Walk(d Descriptor, fn func(Descriptor) bool) {
	if !fn(d) {
		return
	}
	for _, c := range d.base().children {
		Walk(c, fn)
	}
}

// Count returns the number of descriptors of each kind under root,
// root included.
func Count(root Descriptor) map[Kind]int {
	counts := make(map[Kind]int)
	Walk(root, func(d Descriptor) bool {
		counts[d.Kind()]++
		return true
	})
	return counts
}
