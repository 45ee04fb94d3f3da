// Package crawl — ordered work list with deduplication.
package crawl

// Queue keeps activities in discovery order and drops repeated URLs.
type Queue[T any] struct {
	items   []T
	visited map[string]bool
	idx     int // current read position
}

// NewQueue creates an empty Queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		visited: make(map[string]bool),
	}
}

// Add enqueues item under key unless key was seen before.
// It reports whether the item was added.
func (q *Queue[T]) Add(key string, item T) bool {
	if q.visited[key] {
		return false
	}
	q.visited[key] = true
	q.items = append(q.items, item)
	return true
}

// HasNext returns true if there are unprocessed items.
func (q *Queue[T]) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed item and advances the pointer.
func (q *Queue[T]) Next() T {
	item := q.items[q.idx]
	q.idx++
	return item
}

// Len returns the number of unique items seen.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// All returns every item in discovery order.
func (q *Queue[T]) All() []T {
	return q.items
}
