package machine

import (
	"sync"

	"golang.org/x/exp/slices"
)

// Queue is an unbounded FIFO of integers. Push and Pop are atomic with
// respect to each other, so a queue may sit on a routing edge between
// instances driven from different goroutines.
type Queue struct {
	mu    sync.Mutex
	items []int64
	head  int
}

// NewQueue returns a queue holding values in order.
func NewQueue(values ...int64) *Queue {
	return &Queue{items: slices.Clone(values)}
}

// Push appends values to the tail.
func (q *Queue) Push(values ...int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, values...)
}

// Pop removes the head value. ok is false when the queue is empty.
func (q *Queue) Pop() (v int64, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head == len(q.items) {
		return 0, false
	}
	v = q.items[q.head]
	q.head++
	q.compact()
	return v, true
}

// compact reclaims the consumed prefix once it dominates the buffer.
func (q *Queue) compact() {
	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= 64 && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
}

// Len is the number of queued values.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Drain removes and returns every queued value.
func (q *Queue) Drain() []int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := slices.Clone(q.items[q.head:])
	q.items = q.items[:0]
	q.head = 0
	return out
}

// Values returns a copy of the queued values without consuming them.
func (q *Queue) Values() []int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.items[q.head:])
}
