package engine

import (
	"sync"

	"github.com/devicelab-dev/khaos/pkg/format"
	"github.com/devicelab-dev/khaos/pkg/khaos"
	"github.com/devicelab-dev/khaos/pkg/logger"
)

type event struct {
	kind   string
	id     string
	reason string
	result ExecutionResult
}

type recordingListener struct {
	mu     sync.Mutex
	events []event
}

func (l *recordingListener) add(e event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *recordingListener) ExecutionStarted(d Descriptor) {
	l.add(event{kind: "started", id: d.UniqueID().String()})
}

func (l *recordingListener) ExecutionSkipped(d Descriptor, reason string) {
	l.add(event{kind: "skipped", id: d.UniqueID().String(), reason: reason})
}

func (l *recordingListener) ExecutionFinished(d Descriptor, result ExecutionResult) {
	l.add(event{kind: "finished", id: d.UniqueID().String(), result: result})
}

func (l *recordingListener) all() []event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]event(nil), l.events...)
}

// terminal returns the finishing or skipping event of every node by id.
func (l *recordingListener) terminal() map[string]event {
	out := make(map[string]event)
	for _, e := range l.all() {
		if e.kind != "started" {
			out[e.id] = e
		}
	}
	return out
}

// recordedSpec writes to its own recorder in text format.
type recordedSpec struct {
	log *logger.Recorder
}

func (s recordedSpec) LogAdapter() logger.Adapter {
	if s.log == nil {
		return nil
	}
	return s.log
}

func (s recordedSpec) FormatProvider() format.Provider { return format.Text }

type calculatorSpec struct {
	recordedSpec

	Addition    khaos.FeatureDefinition
	Subtraction *khaos.FeatureDefinition `khaos:"Taking away"`
	Ignored     khaos.FeatureDefinition  `khaos:"-"`
	hidden      khaos.FeatureDefinition
	Count       int
}

func newCalculatorSpec(log *logger.Recorder) *calculatorSpec {
	sub := khaos.Feature(func(f khaos.FeatureBuilder) {
		f.Scenario("subtract one", func(s khaos.ScenarioBuilder) {
			r := khaos.When(s, "5 - 1", func() (int, error) { return 4, nil })
			khaos.ThenExpect(s, "the result", 4, func(want int) (int, error) { return r, nil })
		})
	})

	return &calculatorSpec{
		recordedSpec: recordedSpec{log: log},
		Addition: khaos.Feature(func(f khaos.FeatureBuilder) {
			f.Scenario("add one", func(s khaos.ScenarioBuilder) {
				a := khaos.Given(s, "a", khaos.Value(5))
				khaos.When(s, "add 1", func() (int, error) { return a + 1, nil })
			})
			f.Tagged("slow").Scenario("add many", func(s khaos.ScenarioBuilder) {
				s.Then("it adds")
			})
		}, "math"),
		Subtraction: &sub,
		Ignored:     khaos.Feature(func(f khaos.FeatureBuilder) { f.Scenario("x", func(khaos.ScenarioBuilder) {}) }),
		hidden:      khaos.Feature(func(f khaos.FeatureBuilder) { f.Scenario("y", func(khaos.ScenarioBuilder) {}) }),
	}
}

type emptySpec struct {
	khaos.Spec
}

type namedSpec struct {
	khaos.Spec
	Only khaos.FeatureDefinition
}

func (namedSpec) SpecificationName() string { return "Named" }
