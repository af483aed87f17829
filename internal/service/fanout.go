package service

import "sync"

// mapConcurrent applies fn to every item on its own goroutine and
// returns results in input order. fn must fold its own failures into
// the result value; per-item degradation keeps one bad row from
// failing the whole view.
func mapConcurrent[T, R any](items []T, fn func(T) R) []R {
	results := make([]R, len(items))
	var wg sync.WaitGroup
	wg.Add(len(items))
	for i, item := range items {
		go func(i int, item T) {
			defer wg.Done()
			results[i] = fn(item)
		}(i, item)
	}
	wg.Wait()
	return results
}
