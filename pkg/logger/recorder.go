package logger

import "sync"

// Entry is a single line captured by a Recorder.
type Entry struct {
	Level   Level
	Message string
}

// Recorder is an in-memory Adapter. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg})
}

// Info implements Adapter
func (r *Recorder) Info(msg string) { r.add(LevelInfo, msg) }

// Warn implements Adapter
func (r *Recorder) Warn(msg string) { r.add(LevelWarn, msg) }

// Error implements Adapter
func (r *Recorder) Error(msg string) { r.add(LevelError, msg) }

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lines returns the recorded messages in order.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Message
	}
	return out
}

// Reset discards all recorded entries.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
