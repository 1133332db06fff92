package logger

import "sync"

type record struct {
	target  Adapter
	entries []Entry
}

// Funnel serializes lines from concurrent runs onto one dedicated goroutine.
// Lines reach their targets in the order they were submitted, and a flushed
// BufferedContext is delivered as one uninterrupted block.
type Funnel struct {
	records chan record
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewFunnel starts the funnel goroutine. buffer is the channel capacity.
func NewFunnel(buffer int) *Funnel {
	if buffer < 0 {
		buffer = 0
	}
	f := &Funnel{
		records: make(chan record, buffer),
		done:    make(chan struct{}),
	}
	go f.run()
	return f
}

func (f *Funnel) run() {
	defer close(f.done)
	for r := range f.records {
		deliver(r)
	}
}

func deliver(r record) {
	for _, e := range r.entries {
		Write(r.target, e.Level, e.Message)
	}
}

func (f *Funnel) submit(r record) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		deliver(r)
		return
	}
	f.records <- r
}

// Adapter returns an Adapter whose lines are delivered to target by the
// funnel goroutine.
func (f *Funnel) Adapter(target Adapter) Adapter {
	return &funneled{funnel: f, target: target}
}

// Close stops accepting lines and waits for everything submitted to be
// written. Lines submitted after Close are written synchronously.
func (f *Funnel) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		<-f.done
		return
	}
	f.closed = true
	close(f.records)
	f.mu.Unlock()
	<-f.done
}

type funneled struct {
	funnel *Funnel
	target Adapter
}

func (a *funneled) line(level Level, msg string) {
	a.funnel.submit(record{target: a.target, entries: []Entry{{Level: level, Message: msg}}})
}

func (a *funneled) Info(msg string)  { a.line(LevelInfo, msg) }
func (a *funneled) Warn(msg string)  { a.line(LevelWarn, msg) }
func (a *funneled) Error(msg string) { a.line(LevelError, msg) }

func (a *funneled) writeBatch(entries []Entry) {
	a.funnel.submit(record{target: a.target, entries: entries})
}
