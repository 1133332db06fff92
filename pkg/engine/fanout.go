package engine

import (
	"context"
	"errors"
	"sync"
)

// fanout runs fn for every child and waits for all of them. In parallel mode
// each child gets its own goroutine; maxParallel > 0 bounds how many run at
// once at this level. Sequential mode keeps declaration order.
func fanout(ctx context.Context, children []Descriptor, parallel bool, maxParallel int, fn func(ctx context.Context, idx int, child Descriptor) error) error {
	if !parallel || len(children) <= 1 {
		var errs []error
		for i, child := range children {
			if err := fn(ctx, i, child); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	var sem chan struct{}
	if maxParallel > 0 {
		sem = make(chan struct{}, maxParallel)
	}

	errs := make([]error, len(children))
	var wg sync.WaitGroup
	for i := range children {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}        // Acquire
				defer func() { <-sem }() // Release
			}
			errs[idx] = fn(ctx, idx, children[idx])
		}(i)
	}
	wg.Wait()

	return errors.Join(errs...)
}
