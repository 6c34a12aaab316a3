// Package export writes broken-asset records to machine-readable files.
package export

import (
	"fmt"
	"os"

	"github.com/Dimos082/website-monitor/internal/observer"
	"github.com/gocarina/gocsv"
)

// Exporter writes the accumulated records to the given path
type Exporter interface {
	Export(records []observer.Record, path string) error
}

// CSVExporter writes one row per broken asset
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter
func NewCSVExporter() Exporter {
	return &CSVExporter{}
}

// Export writes the records as CSV to path
func (e *CSVExporter) Export(records []observer.Record, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	rows := make([]*observer.Record, 0, len(records))
	for i := range records {
		rows = append(rows, &records[i])
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write CSV export: %w", err)
	}
	return nil
}
