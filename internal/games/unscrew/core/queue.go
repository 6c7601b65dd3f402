package core

// PushResult is the typed outcome of HoldingQueue.Push.
type PushResult uint8

const (
	PushOK       PushResult = iota // Color appended to the tail
	PushOverflow                   // Queue was full; nothing changed
)

// String returns the string representation of a push result.
func (r PushResult) String() string {
	switch r {
	case PushOK:
		return "ok"
	case PushOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// HoldingQueue is a bounded FIFO of color tokens (index 0 is the head).
type HoldingQueue struct {
	items    []Color
	capacity int
}

// NewHoldingQueue creates an empty queue with the given capacity.
func NewHoldingQueue(capacity int) *HoldingQueue {
	return &HoldingQueue{
		items:    make([]Color, 0, capacity),
		capacity: capacity,
	}
}

// Push appends c to the tail. A push against a full queue is rejected with
// PushOverflow and leaves the queue untouched.
func (q *HoldingQueue) Push(c Color) PushResult {
	if len(q.items) >= q.capacity {
		return PushOverflow
	}
	q.items = append(q.items, c)
	return PushOK
}

// Pop removes and returns the head. ok is false when the queue is empty.
func (q *HoldingQueue) Pop() (c Color, ok bool) {
	if len(q.items) == 0 {
		return NoColor, false
	}
	c = q.items[0]
	copy(q.items, q.items[1:])
	q.items = q.items[:len(q.items)-1]
	return c, true
}

// Head returns the head without removing it.
func (q *HoldingQueue) Head() (c Color, ok bool) {
	if len(q.items) == 0 {
		return NoColor, false
	}
	return q.items[0], true
}

// At returns the color at position i (0 is the head).
func (q *HoldingQueue) At(i int) (c Color, ok bool) {
	if i < 0 || i >= len(q.items) {
		return NoColor, false
	}
	return q.items[i], true
}

// Take removes the color at position i, keeping the order of the rest.
func (q *HoldingQueue) Take(i int) (c Color, ok bool) {
	if i < 0 || i >= len(q.items) {
		return NoColor, false
	}
	c = q.items[i]
	q.items = append(q.items[:i], q.items[i+1:]...)
	return c, true
}

// Snapshot returns a copy of the queued colors, head first.
func (q *HoldingQueue) Snapshot() []Color {
	out := make([]Color, len(q.items))
	copy(out, q.items)
	return out
}

// Size returns the number of queued colors.
func (q *HoldingQueue) Size() int {
	return len(q.items)
}

// Capacity returns the maximum number of queued colors.
func (q *HoldingQueue) Capacity() int {
	return q.capacity
}

// IsEmpty returns true if nothing is queued.
func (q *HoldingQueue) IsEmpty() bool {
	return len(q.items) == 0
}

// IsFull returns true if the next push would overflow.
func (q *HoldingQueue) IsFull() bool {
	return len(q.items) >= q.capacity
}
