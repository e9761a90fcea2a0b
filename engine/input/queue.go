package input

import "sync"

// Queue is a FIFO of input events shared between the window thread, which pushes,
// and the update thread, which drains once per tick.
type Queue struct {
	mu     *sync.Mutex
	events []Event
}

// NewQueue creates an empty Queue.
//
// Returns:
//   - *Queue: the queue
func NewQueue() *Queue {
	return &Queue{mu: &sync.Mutex{}}
}

// Push appends an event.
//
// Parameters:
//   - ev: the event to enqueue
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, ev)
}

// Drain removes and returns every queued event in arrival order.
//
// Returns:
//   - []Event: the queued events, nil if none
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
