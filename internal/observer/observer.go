// Package observer fans out per-page broken-asset findings to subscribers.
package observer

import (
	"github.com/sirupsen/logrus"
)

// Record is one broken asset found on a page. AssetRef is either the
// resolved absolute image URL or the MISSING_SRC sentinel.
type Record struct {
	PageURL  string `csv:"Page" json:"page"`
	AssetRef string `csv:"Broken Image URL" json:"broken_image_url"`
}

// Observer receives the broken-asset findings of each scanned page.
// Receive is called exactly once per successfully fetched page, in BFS
// visitation order.
type Observer interface {
	Receive(pageURL string, brokenAssets []string)
}

// Lifecycle is optionally implemented by observers that want to know when
// the crawl starts and ends, e.g. to report scan duration.
type Lifecycle interface {
	OnStart()
	OnEnd()
}

// Bus notifies a fixed, registration-ordered list of observers.
// Subscribers are registered once before the crawl and outlive it.
type Bus struct {
	observers []Observer
}

// NewBus creates a bus over the given subscribers
func NewBus(observers ...Observer) *Bus {
	return &Bus{observers: observers}
}

// Notify delivers one page's findings to every subscriber in registration
// order. A panicking subscriber is isolated and logged so the remaining
// subscribers are still notified and the crawl continues.
func (b *Bus) Notify(pageURL string, brokenAssets []string) {
	for _, obs := range b.observers {
		b.deliver(obs, pageURL, brokenAssets)
	}
}

func (b *Bus) deliver(obs Observer, pageURL string, brokenAssets []string) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Observer failed while recording page %s: %v", pageURL, r)
		}
	}()
	obs.Receive(pageURL, brokenAssets)
}

// Start invokes OnStart on every subscriber that tracks lifecycle
func (b *Bus) Start() {
	for _, obs := range b.observers {
		if lc, ok := obs.(Lifecycle); ok {
			lc.OnStart()
		}
	}
}

// End invokes OnEnd on every subscriber that tracks lifecycle
func (b *Bus) End() {
	for _, obs := range b.observers {
		if lc, ok := obs.(Lifecycle); ok {
			lc.OnEnd()
		}
	}
}
