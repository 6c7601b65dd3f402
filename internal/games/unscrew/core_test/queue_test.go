package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/core"
)

func TestQueueOverflowAtCapacity(t *testing.T) {
	q := core.NewHoldingQueue(4)
	for _, c := range []core.Color{core.C1, core.C2, core.C3, core.C4} {
		if res := q.Push(c); res != core.PushOK {
			t.Fatalf("push %v: expected ok, got %v", c, res)
		}
	}
	if !q.IsFull() {
		t.Error("queue should be full")
	}
	if res := q.Push(core.C1); res != core.PushOverflow {
		t.Errorf("5th push: expected overflow, got %v", res)
	}
	if q.Size() != 4 {
		t.Errorf("overflow must not change the queue, size = %d", q.Size())
	}
}

func TestQueueFIFO(t *testing.T) {
	q := core.NewHoldingQueue(3)
	q.Push(core.C5)
	q.Push(core.C6)

	if head, ok := q.Head(); !ok || head != core.C5 {
		t.Errorf("expected head C5, got %v (ok=%v)", head, ok)
	}
	if c, _ := q.Pop(); c != core.C5 {
		t.Errorf("expected C5 first, got %v", c)
	}
	if c, _ := q.Pop(); c != core.C6 {
		t.Errorf("expected C6 second, got %v", c)
	}
	if _, ok := q.Pop(); ok {
		t.Error("pop on empty queue should report !ok")
	}
	if !q.IsEmpty() {
		t.Error("queue should be empty")
	}
}

func TestQueueSnapshotIsCopy(t *testing.T) {
	q := core.NewHoldingQueue(2)
	q.Push(core.C1)
	snap := q.Snapshot()
	snap[0] = core.C7
	if head, _ := q.Head(); head != core.C1 {
		t.Error("mutating a snapshot changed the queue")
	}
}

func TestQueueTakeKeepsOrder(t *testing.T) {
	q := core.NewHoldingQueue(4)
	for _, c := range []core.Color{core.C1, core.C2, core.C3} {
		q.Push(c)
	}
	if c, ok := q.Take(1); !ok || c != core.C2 {
		t.Fatalf("expected to take C2, got %v (ok=%v)", c, ok)
	}
	snap := q.Snapshot()
	if len(snap) != 2 || snap[0] != core.C1 || snap[1] != core.C3 {
		t.Errorf("expected [C1 C3], got %v", snap)
	}
	if _, ok := q.Take(5); ok {
		t.Error("take out of range should report !ok")
	}
}

func TestQueueZeroCapacity(t *testing.T) {
	q := core.NewHoldingQueue(0)
	if res := q.Push(core.C0); res != core.PushOverflow {
		t.Errorf("expected overflow on zero-capacity queue, got %v", res)
	}
}
