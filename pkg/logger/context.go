package logger

import "sync"

// Context is the log destination handed to a specification, feature or
// scenario run. Child contexts are created for nested runs; Flush writes
// whatever the context has held back.
type Context interface {
	Adapter
	Child() Context
	Flush()
}

// DelegatingContext writes every line straight to its target. It is used
// when siblings run one at a time.
type DelegatingContext struct {
	target Adapter
}

// NewDelegating returns a context writing through to target.
func NewDelegating(target Adapter) *DelegatingContext {
	return &DelegatingContext{target: target}
}

// Info implements Adapter
func (c *DelegatingContext) Info(msg string) { c.target.Info(msg) }

// Warn implements Adapter
func (c *DelegatingContext) Warn(msg string) { c.target.Warn(msg) }

// Error implements Adapter
func (c *DelegatingContext) Error(msg string) { c.target.Error(msg) }

// Child returns a context sharing the same target.
func (c *DelegatingContext) Child() Context { return &DelegatingContext{target: c.target} }

// Flush is a no-op; nothing is held back.
func (c *DelegatingContext) Flush() {}

// batchAdapter accepts a block of lines that must be written contiguously.
type batchAdapter interface {
	writeBatch(entries []Entry)
}

// bufferedItem is either a line or a nested context.
type bufferedItem struct {
	level Level
	msg   string
	child *BufferedContext
}

// BufferedContext holds lines and child contexts in creation order until
// Flush. Concurrent siblings each write into their own child, so the
// flushed output keeps every run contiguous.
type BufferedContext struct {
	target Adapter

	mu    sync.Mutex
	items []bufferedItem
}

// NewBuffered returns a context that writes to target on Flush.
func NewBuffered(target Adapter) *BufferedContext {
	return &BufferedContext{target: target}
}

func (c *BufferedContext) add(level Level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, bufferedItem{level: level, msg: msg})
}

// Info implements Adapter
func (c *BufferedContext) Info(msg string) { c.add(LevelInfo, msg) }

// Warn implements Adapter
func (c *BufferedContext) Warn(msg string) { c.add(LevelWarn, msg) }

// Error implements Adapter
func (c *BufferedContext) Error(msg string) { c.add(LevelError, msg) }

// Child creates a nested buffer positioned after everything written so far.
func (c *BufferedContext) Child() Context {
	child := &BufferedContext{target: c.target}
	c.mu.Lock()
	c.items = append(c.items, bufferedItem{child: child})
	c.mu.Unlock()
	return child
}

// Flush writes held lines and nested contexts in order, then clears. The
// lines are handed over as one batch when the target supports it.
func (c *BufferedContext) Flush() {
	entries := c.drain(nil)
	if len(entries) == 0 {
		return
	}
	if b, ok := c.target.(batchAdapter); ok {
		b.writeBatch(entries)
		return
	}
	for _, e := range entries {
		Write(c.target, e.Level, e.Message)
	}
}

func (c *BufferedContext) drain(out []Entry) []Entry {
	c.mu.Lock()
	items := c.items
	c.items = nil
	c.mu.Unlock()

	for _, item := range items {
		if item.child != nil {
			out = item.child.drain(out)
			continue
		}
		out = append(out, Entry{Level: item.level, Message: item.msg})
	}
	return out
}

// Len returns how many entries are held, counting nested contexts as one.
func (c *BufferedContext) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
