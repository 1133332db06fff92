package logger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelegatingContext_WritesThrough(t *testing.T) {
	r := NewRecorder()
	ctx := NewDelegating(r)

	ctx.Info("spec")
	child := ctx.Child()
	child.Info("feature")
	child.Flush()
	ctx.Flush()

	assert.Equal(t, []string{"spec", "feature"}, r.Lines())
}

func TestBufferedContext_HoldsUntilFlush(t *testing.T) {
	r := NewRecorder()
	ctx := NewBuffered(r)

	ctx.Info("one")
	ctx.Warn("two")
	assert.Empty(t, r.Lines())
	assert.Equal(t, 2, ctx.Len())

	ctx.Flush()
	assert.Equal(t, []string{"one", "two"}, r.Lines())
	assert.Equal(t, 0, ctx.Len())

	// A second flush writes nothing new.
	ctx.Flush()
	assert.Len(t, r.Lines(), 2)
}

func TestBufferedContext_ChildrenInCreationOrder(t *testing.T) {
	r := NewRecorder()
	root := NewBuffered(r)

	root.Info("spec banner")
	first := root.Child()
	second := root.Child()
	root.Info("spec done")

	// Written out of order; flushed in creation order.
	second.Info("feature B")
	first.Info("feature A")
	grandchild := first.Child()
	grandchild.Info("scenario A1")

	root.Flush()
	assert.Equal(t, []string{"spec banner", "feature A", "scenario A1", "feature B", "spec done"}, r.Lines())
}

func TestBufferedContext_ConcurrentChildren(t *testing.T) {
	r := NewRecorder()
	root := NewBuffered(r)

	children := make([]Context, 10)
	for i := range children {
		children[i] = root.Child()
	}

	var wg sync.WaitGroup
	for i, child := range children {
		wg.Add(1)
		go func(i int, c Context) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				c.Info(fmt.Sprintf("%d-%d", i, j))
			}
		}(i, child)
	}
	wg.Wait()
	root.Flush()

	lines := r.Lines()
	assert.Len(t, lines, 50)
	for i := 0; i < 10; i++ {
		for j := 0; j < 5; j++ {
			assert.Equal(t, fmt.Sprintf("%d-%d", i, j), lines[i*5+j])
		}
	}
}

func TestBufferedContext_PreservesLevels(t *testing.T) {
	r := NewRecorder()
	ctx := NewBuffered(r)
	ctx.Error("bad")
	ctx.Flush()

	assert.Equal(t, []Entry{{Level: LevelError, Message: "bad"}}, r.Entries())
}

func TestFunnel_DeliversInOrder(t *testing.T) {
	r := NewRecorder()
	f := NewFunnel(4)
	a := f.Adapter(r)

	for i := 0; i < 20; i++ {
		a.Info(fmt.Sprintf("line %d", i))
	}
	f.Close()

	lines := r.Lines()
	assert.Len(t, lines, 20)
	assert.Equal(t, "line 0", lines[0])
	assert.Equal(t, "line 19", lines[19])
}

func TestFunnel_ConcurrentBufferedFlushesDoNotInterleave(t *testing.T) {
	r := NewRecorder()
	f := NewFunnel(0)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := NewBuffered(f.Adapter(r))
			for j := 0; j < 3; j++ {
				ctx.Info(fmt.Sprintf("spec%d", i))
			}
			ctx.Flush()
		}(i)
	}
	wg.Wait()
	f.Close()

	lines := r.Lines()
	assert.Len(t, lines, 12)
	for k := 0; k < 12; k += 3 {
		assert.Equal(t, lines[k], lines[k+1])
		assert.Equal(t, lines[k], lines[k+2])
	}
}

func TestFunnel_AfterClose(t *testing.T) {
	r := NewRecorder()
	f := NewFunnel(1)
	a := f.Adapter(r)
	f.Close()
	f.Close()

	a.Warn("late")
	assert.Equal(t, []Entry{{Level: LevelWarn, Message: "late"}}, r.Entries())
}
