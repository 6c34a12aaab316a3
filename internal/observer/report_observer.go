package observer

import (
	"time"

	"github.com/Dimos082/website-monitor/internal/report"
	"github.com/sirupsen/logrus"
)

// ReportObserver gathers broken-asset records plus crawl timestamps and
// produces the final HTML report.
type ReportObserver struct {
	outputPath string
	records    []Record
	startTime  time.Time
	endTime    time.Time
}

// NewReportObserver creates a report observer writing to outputPath
func NewReportObserver(outputPath string) *ReportObserver {
	return &ReportObserver{outputPath: outputPath}
}

// Receive saves this page's broken assets for the final report
func (r *ReportObserver) Receive(pageURL string, brokenAssets []string) {
	for _, ref := range brokenAssets {
		r.records = append(r.records, Record{PageURL: pageURL, AssetRef: ref})
	}
}

// OnStart records when the scan began
func (r *ReportObserver) OnStart() {
	r.startTime = time.Now()
}

// OnEnd records when the scan finished
func (r *ReportObserver) OnEnd() {
	r.endTime = time.Now()
}

// GenerateReport writes the HTML report listing every broken asset
func (r *ReportObserver) GenerateReport() error {
	rows := make([]report.Row, 0, len(r.records))
	for _, rec := range r.records {
		rows = append(rows, report.Row{AssetRef: rec.AssetRef, PageURL: rec.PageURL})
	}

	data := report.Data{
		GeneratedAt: time.Now(),
		Rows:        rows,
	}
	if !r.startTime.IsZero() && !r.endTime.IsZero() {
		data.Duration = r.endTime.Sub(r.startTime)
		data.HasDuration = true
	}

	if err := report.WriteFile(r.outputPath, data); err != nil {
		return err
	}

	logrus.Infof("[REPORT GENERATED] %s", r.outputPath)
	return nil
}
