package main

import (
	"io"
	"os"

	"github.com/Dimos082/website-monitor/internal/config"
	"github.com/Dimos082/website-monitor/internal/crawler"
	"github.com/Dimos082/website-monitor/internal/export"
	"github.com/Dimos082/website-monitor/internal/imagecheck"
	"github.com/Dimos082/website-monitor/internal/metrics"
	"github.com/Dimos082/website-monitor/internal/observer"
	"github.com/Dimos082/website-monitor/internal/storage"
	"github.com/Dimos082/website-monitor/internal/version"
	"github.com/sirupsen/logrus"
)

const defaultLogFile = "website-monitor.log"

func main() {
	closeLog := setupLogging()
	defer closeLog()

	logrus.Infof("website-monitor v%s starting...", version.Version)

	// Load configuration; bad arguments are the only fatal errors
	cfg, err := config.FromFlags(os.Args[0], os.Args[1:])
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logrus.Infof("Configuration loaded: seed=%s, depth=%d, timeout=%ds, workers=%d",
		cfg.SeedURL, cfg.MaxDepth, cfg.TimeoutSeconds, cfg.ImageWorkers)

	// Register observers: collector first, report generator second, as
	// the report depends on nothing the collector does
	assetCollector := observer.NewCollector()
	reportObserver := observer.NewReportObserver(cfg.OutputPath)
	observers := []observer.Observer{assetCollector, reportObserver}

	// Optional findings history
	var store *storage.Store
	var runID int64
	if cfg.DBPath != "" {
		store, err = storage.NewStore(cfg.DBPath)
		if err != nil {
			logrus.Fatalf("Failed to initialize storage: %v", err)
		}
		defer store.Close()

		runID, err = store.BeginRun(cfg.SeedURL)
		if err != nil {
			logrus.Fatalf("Failed to begin run: %v", err)
		}
		observers = append(observers, storage.NewRunObserver(store, runID))

		logrus.Infof("Findings database initialized: %s (run %d)", cfg.DBPath, runID)
	}

	bus := observer.NewBus(observers...)
	tracker := metrics.NewTracker()
	checker := imagecheck.NewChecker(cfg.Timeout(), cfg.ImageWorkers)

	c, err := crawler.New(crawler.Options{
		SeedURL:  cfg.SeedURL,
		MaxDepth: cfg.MaxDepth,
		Timeout:  cfg.Timeout(),
	}, checker, bus, tracker)
	if err != nil {
		logrus.Fatalf("Failed to initialize crawler: %v", err)
	}

	c.Run()

	// Report and exports always run; findings do not affect exit code
	if err := reportObserver.GenerateReport(); err != nil {
		logrus.Errorf("Failed to generate report: %v", err)
	}

	if cfg.CSVPath != "" {
		if err := export.NewCSVExporter().Export(assetCollector.Records(), cfg.CSVPath); err != nil {
			logrus.Errorf("Failed to export CSV: %v", err)
		} else {
			logrus.Infof("CSV export written to %s", cfg.CSVPath)
		}
	}

	if store != nil {
		if err := store.FinishRun(runID); err != nil {
			logrus.Warnf("Failed to finalize run: %v", err)
		}
	}

	if cfg.MetricsPath != "" {
		if err := tracker.WriteToFile(cfg.MetricsPath); err != nil {
			logrus.Errorf("Failed to write metrics: %v", err)
		} else {
			logrus.Infof("Metrics written to %s", cfg.MetricsPath)
		}
	}

	assetCollector.PrintSummary()
	logrus.Info("Final stats: " + tracker.LogProgress())
}

// setupLogging configures logrus to write to stderr and the log file.
// The file path comes from LOG_FILE when set.
func setupLogging() func() {
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	path := os.Getenv("LOG_FILE")
	if path == "" {
		path = defaultLogFile
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logrus.Warnf("Failed to open log file %s, logging to stderr only: %v", path, err)
		return func() {}
	}

	logrus.SetOutput(io.MultiWriter(os.Stderr, file))
	return func() { file.Close() }
}
