package service

import (
	"context"
	"fmt"
	"sync"
)

// Result is the settled outcome of one lookup.
type Result[T any] struct {
	Value T
	Err   error
}

// SettleAll runs fn for every input concurrently and waits for all of them.
// It never fails as a whole: every input gets its own Result, in input order.
func SettleAll[I any, T any](ctx context.Context, inputs []I, fn func(context.Context, I) (T, error)) []Result[T] {
	results := make([]Result[T], len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in I) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = Result[T]{Err: fmt.Errorf("lookup panicked: %v", r)}
				}
			}()
			value, err := fn(ctx, in)
			results[i] = Result[T]{Value: value, Err: err}
		}(i, in)
	}
	wg.Wait()
	return results
}
