package crawl

import (
	"container/heap"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/fwojciec/linkcheck"
)

// Compile-time interface verification.
var (
	_ linkcheck.TaskFrontier = (*Frontier)(nil)
	_ linkcheck.VisitedSet   = (*VisitedSet)(nil)
)

// Frontier is an in-memory task queue ordered by depth: shallower tasks
// are popped first, FIFO within a depth. It is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	queue *taskHeap
	seq   uint64
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	h := &taskHeap{}
	heap.Init(h)
	return &Frontier{queue: h}
}

// Push adds a task to the frontier. Deduplication is not the frontier's
// job; callers claim URLs through the VisitedSet before pushing.
func (f *Frontier) Push(task linkcheck.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	heap.Push(f.queue, frontierItem{task: task, seq: f.seq})
}

// Pop returns the next task by depth order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (linkcheck.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return linkcheck.Task{}, false
	}
	item, _ := heap.Pop(f.queue).(frontierItem)
	return item.task, true
}

// Len returns the number of queued tasks.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// frontierItem pairs a task with an insertion sequence number so equal
// depths pop in FIFO order.
type frontierItem struct {
	task linkcheck.Task
	seq  uint64
}

// taskHeap implements heap.Interface as a min-heap on task depth.
type taskHeap []frontierItem

func (h taskHeap) Len() int { return len(h) }

// Less orders by depth, then by insertion order.
func (h taskHeap) Less(i, j int) bool {
	if h[i].task.Depth != h[j].task.Depth {
		return h[i].task.Depth < h[j].task.Depth
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	item, _ := x.(frontierItem)
	*h = append(*h, item)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// VisitedSet is an exact, thread-safe set of canonical URLs. Membership
// must be exact: an approximate structure would occasionally report an
// unseen URL as seen and silently drop it from the crawl.
type VisitedSet struct {
	set mapset.Set[string]
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{set: mapset.NewSet[string]()}
}

// Visit atomically adds the URL, reporting whether it was newly added.
// Of any number of concurrent callers with the same URL, exactly one
// sees true.
func (v *VisitedSet) Visit(url string) bool {
	return v.set.Add(url)
}

// Len returns the number of visited URLs.
func (v *VisitedSet) Len() int {
	return v.set.Cardinality()
}
