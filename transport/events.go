package transport

import (
	"sync"

	proto "github.com/ystepanoff/triggerlink/protocol"
)

// TriggerEvent is the handoff from the receive dispatch context to the poll
// loop: one event per qualifying broadcast frame.
type TriggerEvent struct {
	Source proto.PeerAddress
	Seq    uint32
	At     uint32 // receive timestamp, monotonic milliseconds
}

const triggerQueueCapacity = 16

// triggerQueue is a fixed-capacity ring shared between the receive dispatch
// (producer) and the poll loop (consumer). push never blocks; when the ring
// is full the oldest event is overwritten, which is harmless because the
// actuation timer re-arms idempotently off the newest event anyway.
type triggerQueue struct {
	mu         sync.Mutex
	data       [triggerQueueCapacity]TriggerEvent
	head, tail int // head = next pop, tail = next push
	count      int
}

func (q *triggerQueue) push(ev TriggerEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == triggerQueueCapacity {
		q.head = (q.head + 1) % triggerQueueCapacity
		q.count--
	}
	q.data[q.tail] = ev
	q.tail = (q.tail + 1) % triggerQueueCapacity
	q.count++
}

func (q *triggerQueue) pop() (TriggerEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == 0 {
		return TriggerEvent{}, false
	}
	ev := q.data[q.head]
	q.head = (q.head + 1) % triggerQueueCapacity
	q.count--
	return ev, true
}
