package crawler

import (
	"testing"
)

func TestQueuePushPopOrder(t *testing.T) {
	q := NewQueue()

	urls := []string{"http://x/a", "http://x/b", "http://x/c"}
	for i, u := range urls {
		if !q.Push(Entry{URL: u, Depth: i}) {
			t.Fatalf("Push(%q) = false, want true", u)
		}
	}

	for i, want := range urls {
		entry, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() #%d empty, want %q", i, want)
		}
		if entry.URL != want {
			t.Errorf("Pop() #%d = %q, want %q (FIFO order)", i, entry.URL, want)
		}
	}

	if _, ok := q.Pop(); ok {
		t.Error("Pop() on empty queue reported an entry")
	}
}

func TestQueueEnqueueOnce(t *testing.T) {
	q := NewQueue()

	if !q.Push(Entry{URL: "http://x/a", Depth: 0}) {
		t.Fatal("first Push rejected")
	}
	if q.Push(Entry{URL: "http://x/a", Depth: 1}) {
		t.Error("duplicate URL accepted at different depth")
	}

	if q.Size() != 1 {
		t.Errorf("Size() = %d, want 1", q.Size())
	}
	if q.VisitedCount() != 1 {
		t.Errorf("VisitedCount() = %d, want 1", q.VisitedCount())
	}

	// Popping does not allow re-enqueueing: visited never shrinks
	q.Pop()
	if q.Push(Entry{URL: "http://x/a", Depth: 2}) {
		t.Error("URL re-enqueued after being processed")
	}
}

func TestQueueSeen(t *testing.T) {
	q := NewQueue()
	q.Push(Entry{URL: "http://x/a", Depth: 0})

	if !q.Seen("http://x/a") {
		t.Error("Seen() = false for enqueued URL")
	}
	if q.Seen("http://x/b") {
		t.Error("Seen() = true for unknown URL")
	}
}
