// Package imagecheck verifies that image URLs resolve to live resources.
package imagecheck

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultWorkers caps the number of concurrent in-flight checks per page
const DefaultWorkers = 20

// userAgent is sent on every check; some origins reject empty agents
const userAgent = "Mozilla/5.0"

// Checker performs image reachability checks over one shared HTTP client.
// The client lives for exactly one crawl run.
type Checker struct {
	client  *http.Client
	workers int
}

// NewChecker creates a checker with the given per-request timeout and
// worker pool size. Non-positive workers fall back to DefaultWorkers.
func NewChecker(timeout time.Duration, workers int) *Checker {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Checker{
		client:  &http.Client{Timeout: timeout},
		workers: workers,
	}
}

// IsReachable reports whether the image URL resolves to a live resource.
// A GET is used rather than HEAD because some servers misreport HEAD
// support. Status codes below 400 count as healthy, so redirects pass.
// Transport failures and timeouts report false; no error is ever returned.
func (c *Checker) IsReachable(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 400
}

// CheckAll checks every URL concurrently through the bounded worker pool
// and returns the unreachable subset. It blocks until every dispatched
// check has completed, so the returned list is always complete for the
// page. Order of the result is unspecified.
func (c *Checker) CheckAll(urls []string) []string {
	if len(urls) == 0 {
		return nil
	}

	jobs := make(chan string, len(urls))
	unreachable := make(chan string, len(urls))

	workers := c.workers
	if len(urls) < workers {
		workers = len(urls)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				if !c.IsReachable(u) {
					unreachable <- u
				}
			}
		}()
	}

	for _, u := range urls {
		jobs <- u
	}
	close(jobs)

	wg.Wait()
	close(unreachable)

	var broken []string
	for u := range unreachable {
		logrus.Debugf("Image check failed: %s", u)
		broken = append(broken, u)
	}

	return broken
}
