// Package crawler drives the breadth-first scan of a website for broken
// image assets.
package crawler

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Dimos082/website-monitor/internal/metrics"
	"github.com/Dimos082/website-monitor/internal/observer"
	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// ImageChecker classifies a page's image URLs as reachable or broken
type ImageChecker interface {
	CheckAll(urls []string) []string
}

// Crawler orchestrates the breadth-first traversal. Pages are processed
// strictly one at a time: a page is fetched, its images checked and its
// links extracted before the next frontier entry is touched. Only the
// image-check worker pool runs in parallel.
type Crawler struct {
	seed      *url.URL
	maxDepth  int
	collector *colly.Collector
	checker   ImageChecker
	bus       *observer.Bus
	tracker   *metrics.Tracker
	queue     *Queue

	// current accumulates the in-flight visit. Traversal is sequential,
	// so exactly one visit is active at any time.
	current *pageVisit
}

// pageVisit collects what the collector callbacks saw for one page
type pageVisit struct {
	depth     int
	base      *url.URL
	isHTML    bool
	failed    bool
	links     []string
	imageRefs []string
}

// Options configures a crawl run
type Options struct {
	SeedURL  string
	MaxDepth int
	Timeout  time.Duration
}

// New creates a crawler for one run. The seed URL must be an absolute
// http or https URL; anything else is a configuration error.
func New(opts Options, checker ImageChecker, bus *observer.Bus, tracker *metrics.Tracker) (*Crawler, error) {
	seed, err := url.Parse(opts.SeedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL: %w", err)
	}
	if seed.Scheme != "http" && seed.Scheme != "https" {
		return nil, fmt.Errorf("invalid seed URL scheme %q", seed.Scheme)
	}
	if seed.Host == "" {
		return nil, fmt.Errorf("seed URL %q has no host", opts.SeedURL)
	}

	c := &Crawler{
		seed:     seed,
		maxDepth: opts.MaxDepth,
		checker:  checker,
		bus:      bus,
		tracker:  tracker,
		queue:    NewQueue(),
	}

	c.setupCollector(opts.Timeout)
	return c, nil
}

// setupCollector configures the Colly collector with callbacks
func (c *Crawler) setupCollector(timeout time.Duration) {
	c.collector = colly.NewCollector(
		colly.UserAgent("Mozilla/5.0"),
		colly.MaxDepth(0), // Managed manually via queue depth
	)
	c.collector.SetRequestTimeout(timeout)

	// Non-2xx pages are still scanned; only transport failures and
	// non-HTML responses skip a page.
	c.collector.ParseHTTPErrorResponse = true

	c.collector.OnResponse(func(r *colly.Response) {
		visit := c.current
		if visit == nil {
			return
		}
		visit.base = r.Request.URL

		contentType := strings.ToLower(r.Headers.Get("Content-Type"))
		if strings.Contains(contentType, "text/html") {
			visit.isHTML = true
		} else {
			logrus.Warnf("[WARNING] Non-HTML content: %s", r.Request.URL)
		}
	})

	c.collector.OnHTML("html", func(e *colly.HTMLElement) {
		visit := c.current
		if visit == nil {
			return
		}

		visit.imageRefs = extractImageRefs(e.DOM)

		// Links are only needed while depth remains
		if visit.depth < c.maxDepth {
			visit.links = extractLinks(e.DOM, e.Request.URL, c.seed.Host)
		}
	})

	c.collector.OnError(func(r *colly.Response, err error) {
		if c.current != nil {
			c.current.failed = true
		}
		if r != nil && r.Request != nil {
			logrus.Errorf("[ERROR] %v while accessing %s", err, r.Request.URL)
		} else {
			logrus.Errorf("[ERROR] %v", err)
		}
	})
}

// Run crawls from the seed until the frontier is empty, notifying the
// observer bus once per successfully fetched page in BFS order.
func (c *Crawler) Run() {
	logrus.Infof("[START] Scanning up to depth=%d, base URL: %s", c.maxDepth, c.seed)

	c.queue.Push(Entry{URL: c.seed.String(), Depth: 0})
	c.bus.Start()

	for {
		entry, ok := c.queue.Pop()
		if !ok {
			break
		}
		c.crawlPage(entry)
	}

	c.bus.End()
	logrus.Info("[DONE] Website scan completed.")
}

// crawlPage fetches one frontier entry, scans its images, notifies the
// bus and enqueues newly discovered links. Fetch failures and non-HTML
// responses skip the page without notification.
func (c *Crawler) crawlPage(entry Entry) {
	logrus.Infof("[CRAWLING] %s (depth=%d)", entry.URL, entry.Depth)

	visit := &pageVisit{depth: entry.Depth}
	c.current = visit
	err := c.collector.Visit(entry.URL)
	c.current = nil

	if err != nil {
		logrus.Errorf("[ERROR] %v while accessing %s", err, entry.URL)
		c.tracker.IncrementPagesSkipped()
		return
	}
	if visit.failed || !visit.isHTML {
		c.tracker.IncrementPagesSkipped()
		return
	}

	c.tracker.IncrementPagesFetched()

	broken := c.scanImages(entry.URL, visit)
	c.bus.Notify(entry.URL, broken)

	if entry.Depth < c.maxDepth {
		added := 0
		for _, link := range visit.links {
			if c.queue.Push(Entry{URL: link, Depth: entry.Depth + 1}) {
				added++
			}
		}
		c.tracker.AddLinksEnqueued(added)
	}
}

// scanImages classifies the page's image references and returns the
// broken ones. Refs without a usable src are recorded with the
// MissingSrc sentinel and never hit the network; the rest are resolved
// to absolute URLs and checked concurrently. The returned list is
// complete for the page before this method returns.
func (c *Crawler) scanImages(pageURL string, visit *pageVisit) []string {
	var broken []string
	var toCheck []string

	for _, src := range visit.imageRefs {
		if src == "" {
			logrus.Warnf("[BROKEN IMAGE] %s (page: %s)", MissingSrc, pageURL)
			broken = append(broken, MissingSrc)
			continue
		}

		if abs, ok := resolveImageURL(visit.base, src); ok {
			toCheck = append(toCheck, abs)
		} else {
			// Unparsable src goes to the checker as-is; it will be
			// classified unreachable without a network call.
			toCheck = append(toCheck, src)
		}
	}

	c.tracker.AddImagesChecked(len(toCheck))

	for _, u := range c.checker.CheckAll(toCheck) {
		logrus.Warnf("[BROKEN IMAGE] %s (page: %s)", u, pageURL)
		broken = append(broken, u)
	}

	c.tracker.AddBrokenAssets(len(broken))
	return broken
}

// VisitedCount returns how many distinct URLs were enqueued this run
func (c *Crawler) VisitedCount() int {
	return c.queue.VisitedCount()
}
