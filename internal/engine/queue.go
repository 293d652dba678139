package engine

import "container/heap"

// entry is one pending resumption: a process due at a wake time, with the
// spawn-order counter as deterministic tie-break.
type entry struct {
	wake  float64
	order int64
	proc  Proc
}

// runQueue is a min-heap of pending resumptions ordered by wake time
// ascending, ties broken by spawn order. The heap is only touched from
// the scheduler's single-threaded loop, so it needs no locking.
type runQueue struct {
	entries entryHeap
}

func newRunQueue() *runQueue {
	return &runQueue{entries: make(entryHeap, 0, 16)}
}

// push inserts a pending resumption.
func (q *runQueue) push(e *entry) {
	heap.Push(&q.entries, e)
}

// pop removes and returns the earliest-due entry.
// Returns (nil, false) when the queue is empty.
func (q *runQueue) pop() (*entry, bool) {
	if len(q.entries) == 0 {
		return nil, false
	}
	e := heap.Pop(&q.entries).(*entry)
	return e, true
}

// len returns the number of pending resumptions.
func (q *runQueue) len() int {
	return len(q.entries)
}

// entryHeap implements heap.Interface.
type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].wake != h[j].wake {
		return h[i].wake < h[j].wake
	}
	return h[i].order < h[j].order
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(*entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil // allow GC of the entry's proc
	*h = old[:n-1]
	return e
}
