package crawler

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Entry is one pending unit of crawl work
type Entry struct {
	URL   string
	Depth int
}

// Queue implements the FIFO BFS frontier with global URL deduplication.
// Traversal across pages is sequential, so no locking is needed here; the
// visited set only ever grows within a single run.
type Queue struct {
	items   []Entry
	visited mapset.Set[string]
}

// NewQueue creates an empty frontier
func NewQueue() *Queue {
	return &Queue{
		items:   make([]Entry, 0),
		visited: mapset.NewThreadUnsafeSet[string](),
	}
}

// Push enqueues an entry unless its URL was already seen this run.
// Returns true if the entry was accepted.
func (q *Queue) Push(entry Entry) bool {
	// Add reports false when the URL is already a member
	if !q.visited.Add(entry.URL) {
		return false
	}
	q.items = append(q.items, entry)
	return true
}

// Pop removes and returns the oldest entry.
// Returns false when the frontier is empty.
func (q *Queue) Pop() (Entry, bool) {
	if len(q.items) == 0 {
		return Entry{}, false
	}
	entry := q.items[0]
	q.items = q.items[1:]
	return entry, true
}

// Size returns the number of pending entries
func (q *Queue) Size() int {
	return len(q.items)
}

// VisitedCount returns how many distinct URLs have been enqueued this run
func (q *Queue) VisitedCount() int {
	return q.visited.Cardinality()
}

// Seen reports whether the URL has already been enqueued this run
func (q *Queue) Seen(url string) bool {
	return q.visited.Contains(url)
}
