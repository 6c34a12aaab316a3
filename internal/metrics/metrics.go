package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Snapshot tracks crawl statistics for export on exit
type Snapshot struct {
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	PagesFetched  int       `json:"pages_fetched"`
	PagesSkipped  int       `json:"pages_skipped"`
	LinksEnqueued int       `json:"links_enqueued"`
	ImagesChecked int       `json:"images_checked"`
	BrokenAssets  int       `json:"broken_assets"`
}

// Tracker holds and manages crawl metrics
type Tracker struct {
	mu   sync.Mutex
	data Snapshot
}

// NewTracker creates a new metrics tracker
func NewTracker() *Tracker {
	return &Tracker{
		data: Snapshot{
			StartTime: time.Now(),
		},
	}
}

// IncrementPagesFetched increments the successful fetch counter
func (t *Tracker) IncrementPagesFetched() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.PagesFetched++
}

// IncrementPagesSkipped increments the failed/non-HTML fetch counter
func (t *Tracker) IncrementPagesSkipped() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.PagesSkipped++
}

// AddLinksEnqueued adds n newly discovered frontier entries
func (t *Tracker) AddLinksEnqueued(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.LinksEnqueued += n
}

// AddImagesChecked adds n dispatched image checks
func (t *Tracker) AddImagesChecked(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.ImagesChecked += n
}

// AddBrokenAssets adds n broken-asset findings
func (t *Tracker) AddBrokenAssets(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.BrokenAssets += n
}

// GetSnapshot returns a copy of current metrics
func (t *Tracker) GetSnapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data
}

// WriteToFile exports metrics to a JSON file
func (t *Tracker) WriteToFile(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.data.EndTime = time.Now()

	jsonData, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}

	return nil
}

// LogProgress prints current metrics to console
func (t *Tracker) LogProgress() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return fmt.Sprintf("Pages: %d fetched, %d skipped | Links enqueued: %d | Images: %d checked, %d broken",
		t.data.PagesFetched,
		t.data.PagesSkipped,
		t.data.LinksEnqueued,
		t.data.ImagesChecked,
		t.data.BrokenAssets,
	)
}
