// Package report renders the HTML broken-images report.
package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"time"
)

// Row is one report line: a broken asset and the page it was found on
type Row struct {
	AssetRef string
	PageURL  string
}

// Data carries everything the report template needs
type Data struct {
	GeneratedAt time.Time
	Rows        []Row
	Duration    time.Duration
	HasDuration bool
}

var reportTemplate = template.Must(template.New("report").Parse(`<html><head>
<meta charset='utf-8'>
<title>Broken Images Report</title>
<style>
  body { font-family: Arial, sans-serif; margin: 20px; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #ccc; padding: 8px; }
  th { background-color: #f9f9f9; }
  .error { color: red; font-weight: bold; }
</style></head><body>
<h1>Broken Images Report</h1>
<p>Report generated on: <strong>{{.GeneratedAt.Format "2006-01-02 15:04:05"}}</strong></p>
<h2>Summary</h2>
<p>Broken Images: <span class='error'>{{len .Rows}}</span></p>
{{if .HasDuration}}<p>Scan Duration: <span class='error'>{{printf "%.2f" .Duration.Seconds}} seconds</span></p>
{{end}}<table>
<tr><th>Broken Image URL</th><th>Found on Page</th></tr>
{{range .Rows}}<tr><td>{{.AssetRef}}</td><td><a href='{{.PageURL}}'>{{.PageURL}}</a></td></tr>
{{end}}</table></body></html>
`))

// Write renders the report document to w
func Write(w io.Writer, data Data) error {
	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// WriteFile renders the report document to the given path
func WriteFile(path string, data Data) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	return Write(file, data)
}
