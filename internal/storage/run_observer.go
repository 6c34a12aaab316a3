package storage

import (
	"github.com/sirupsen/logrus"
)

// RunObserver subscribes to crawl notifications and persists each page's
// broken-asset findings under one run. Write failures are logged and
// swallowed so persistence problems never abort the crawl.
type RunObserver struct {
	store *Store
	runID int64
}

// NewRunObserver creates an observer recording findings for the given run
func NewRunObserver(store *Store, runID int64) *RunObserver {
	return &RunObserver{store: store, runID: runID}
}

// Receive persists this page's broken assets
func (o *RunObserver) Receive(pageURL string, brokenAssets []string) {
	if err := o.store.RecordAssets(o.runID, pageURL, brokenAssets); err != nil {
		logrus.Warnf("Failed to persist findings for %s: %v", pageURL, err)
	}
}
