package main

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/user/game_ingest_go/internal/analysis"
	"github.com/user/game_ingest_go/internal/config"
	"github.com/user/game_ingest_go/internal/logger"
	"github.com/user/game_ingest_go/internal/parser"
	"github.com/user/game_ingest_go/internal/report"
)

// App runs one ingestion and whatever outputs the configuration asks for.
type App struct {
	cfg config.Config
	out io.Writer
	log logger.Logger
}

// NewApp creates a new App writing user-facing output to out.
func NewApp(cfg config.Config, out io.Writer, log logger.Logger) *App {
	return &App{cfg: cfg, out: out, log: log}
}

func (a *App) needsAnalysis() bool {
	return a.cfg.Summary || a.cfg.ReportPDF != "" || a.cfg.ExportSeasonsCSV != ""
}

// Run ingests the configured input. A parse failure aborts the run before
// any optional output is produced.
func (a *App) Run(ctx context.Context) error {
	a.log.Debugf("config: %s", a.cfg)

	in := parser.NewIngestor(a.cfg.Ingest, a.out)
	in.Log = a.log.WithPrefix("[ingest] ")
	res, err := in.IngestFile(ctx, a.cfg.Input)
	if err != nil {
		return errors.Wrap(err, "ingesting game data")
	}

	if a.cfg.ExportXLSX != "" {
		if err := report.WriteTableXLSX(a.cfg.ExportXLSX, res.Table); err != nil {
			return err
		}
		a.log.Infof("game table written to %s", a.cfg.ExportXLSX)
	}

	if !a.needsAnalysis() {
		return nil
	}
	results, err := analysis.AnalyzeGameTable(res.Table)
	if err == analysis.ErrEmptyTable {
		a.log.Warnf("no rows ingested, skipping summary and reports")
		return nil
	} else if err != nil {
		return errors.Wrap(err, "analyzing game data")
	}
	for _, e := range results.AnalysisErrors {
		a.log.Warnf("analysis: %s", e)
	}

	if a.cfg.Summary {
		if err := report.WriteColumnSummary(a.out, results); err != nil {
			return err
		}
	}

	if a.cfg.ExportSeasonsCSV != "" {
		if err := report.WriteSeasonsCSV(a.cfg.ExportSeasonsCSV, results.Seasons); err != nil {
			return err
		}
		a.log.Infof("season summaries written to %s", a.cfg.ExportSeasonsCSV)
	}

	if a.cfg.ReportPDF != "" {
		if err := a.buildReport(res, results); err != nil {
			return err
		}
		a.log.Infof("PDF report written to %s", a.cfg.ReportPDF)
	}
	return nil
}

func (a *App) buildReport(res *parser.IngestResult, results *analysis.AnalysisResults) error {
	plotImages := make(map[string][]byte)
	plotConfigs := []struct {
		Name   string
		Metric string
	}{
		{report.PlotHomeWinPct, report.MetricHomeWinPct},
		{report.PlotPoints, report.MetricPoints},
	}
	for _, pc := range plotConfigs {
		img, err := report.CreateSeasonLinePlot(results, pc.Metric)
		if err != nil {
			a.log.Warnf("plot %s: %v", pc.Name, err)
			continue
		}
		plotImages[pc.Name] = img
	}
	if img, err := report.CreateCorrelationHeatmap(results); err != nil {
		a.log.Warnf("plot %s: %v", report.PlotCorrelation, err)
	} else {
		plotImages[report.PlotCorrelation] = img
	}

	return report.BuildPDFReport(a.cfg.ReportPDF, results, res.Counted, plotImages)
}
