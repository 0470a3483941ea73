package styx

import (
	"sync"
	"time"
)

// msgQueue is an unbounded FIFO safe for multiple producers and multiple
// consumers. It deliberately has no capacity limit: a slow consumer lets
// it grow, which is the documented tradeoff of the runtime design.
type msgQueue struct {
	mu    sync.Mutex
	items []string
	wake  chan struct{}
}

func newMsgQueue() *msgQueue {
	return &msgQueue{wake: make(chan struct{}, 1)}
}

func (q *msgQueue) put(msg string) {
	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// take pops the head of the queue, blocking up to timeout. ok=false means
// the wait expired with no message; expiry has no side effects.
func (q *msgQueue) take(timeout time.Duration) (string, bool) {
	if msg, ok := q.tryTake(); ok {
		return msg, true
	}
	if timeout <= 0 {
		return "", false
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-q.wake:
			if msg, ok := q.tryTake(); ok {
				return msg, true
			}
			// Another consumer won the race; keep waiting out the clock.
		case <-timer.C:
			// A put may have landed between the last check and the timer
			// firing; drain once more before reporting absence.
			return q.tryTake()
		}
	}
}

func (q *msgQueue) tryTake() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return "", false
	}
	msg := q.items[0]
	q.items = q.items[1:]
	if len(q.items) > 0 {
		// Re-arm the signal so sibling consumers see the remainder.
		select {
		case q.wake <- struct{}{}:
		default:
		}
	}
	return msg, true
}

// Send enqueues one opaque message. Delivery is at-most-once FIFO to
// whichever single consumer dequeues it.
func (ns *Namespace) Send(msg string) {
	ns.queue.put(msg)
}

// Recv dequeues the next message, blocking up to timeout. A zero or
// negative timeout is a non-blocking poll.
func (ns *Namespace) Recv(timeout time.Duration) (string, bool) {
	return ns.queue.take(timeout)
}
