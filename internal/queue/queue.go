// Package queue provides a small FIFO used to pass tokens from the
// learned-settings lexer to its parser.
package queue

// Queue is a first-in first-out queue of T backed by a slice.
//
// It is not safe for concurrent use.
type Queue[T any] struct {
	items []T
	head  int
}

// New creates an empty queue with room for prealloc items.
func New[T any](prealloc int) *Queue[T] {
	return &Queue[T]{items: make([]T, 0, prealloc)}
}

// Enqueue adds an item to the tail of the queue.
func (q *Queue[T]) Enqueue(item T) {
	q.items = append(q.items, item)
}

// Dequeue removes and returns the item at the head of the queue.
// ok is false when the queue is empty.
func (q *Queue[T]) Dequeue() (item T, ok bool) {
	if q.head >= len(q.items) {
		return item, false
	}
	item = q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head++
	if q.head == len(q.items) {
		q.Reset()
	}

	return item, true
}

// Peek returns the item at the head of the queue without removing it.
func (q *Queue[T]) Peek() (item T, ok bool) {
	if q.head >= len(q.items) {
		return item, false
	}

	return q.items[q.head], true
}

// Reset empties the queue and keeps the underlying array for reuse.
func (q *Queue[T]) Reset() {
	q.items = q.items[:0]
	q.head = 0
}

// IsEmpty returns true if the queue is empty, false otherwise.
func (q *Queue[T]) IsEmpty() bool {
	return q.Length() == 0
}

// Length returns the number of items in the queue.
func (q *Queue[T]) Length() int {
	return len(q.items) - q.head
}
