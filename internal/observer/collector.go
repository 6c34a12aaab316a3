package observer

import (
	"github.com/rodaine/table"
)

// Collector accumulates every broken-asset record reported during a run
type Collector struct {
	records []Record
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Receive appends this page's broken assets to the collected records
func (c *Collector) Receive(pageURL string, brokenAssets []string) {
	for _, ref := range brokenAssets {
		c.records = append(c.records, Record{PageURL: pageURL, AssetRef: ref})
	}
}

// Records returns the accumulated records in notification order
func (c *Collector) Records() []Record {
	return c.records
}

// PrintSummary writes a console table of the collected records
func (c *Collector) PrintSummary() {
	tbl := table.New("Broken Image URL", "Found on Page")
	for _, rec := range c.records {
		tbl.AddRow(rec.AssetRef, rec.PageURL)
	}
	tbl.Print()
}
