package service

import (
	"sync"
)

// FraudQueue is the ordered FIFO of message texts awaiting
// classification. Callers push concurrently; the single fraud worker
// pops. The queue is unbounded, backpressure is out of scope.
type FraudQueue struct {
	mu    sync.Mutex
	items []string
}

// NewFraudQueue creates an empty queue.
func NewFraudQueue() *FraudQueue {
	return &FraudQueue{}
}

// Push appends a message text to the tail of the queue.
func (q *FraudQueue) Push(text string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, text)
}

// Pop removes and returns the oldest entry. The second return value is
// false when the queue is drained.
func (q *FraudQueue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return "", false
	}
	item := q.items[0]
	q.items[0] = "" // release the backing reference
	q.items = q.items[1:]
	return item, true
}

// Len returns the number of queued entries.
func (q *FraudQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Snapshot returns a copy of the queued entries in order.
func (q *FraudQueue) Snapshot() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := make([]string, len(q.items))
	copy(items, q.items)
	return items
}
