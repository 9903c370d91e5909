package report

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/pkg/errors"
	"github.com/user/game_ingest_go/internal/analysis"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Metrics accepted by CreateSeasonLinePlot.
const (
	MetricHomeWinPct = "home_win_pct"
	MetricPoints     = "points"
)

var plotColors = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}, // blue
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 255}, // red
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 255}, // green
}

type seasonSeries struct {
	label string
	value func(analysis.SeasonSummary) float64
}

// CreateSeasonLinePlot plots a per-season metric as PNG bytes.
func CreateSeasonLinePlot(results *analysis.AnalysisResults, metric string) ([]byte, error) {
	if results == nil || len(results.Seasons) == 0 {
		return nil, errors.New("no season summaries to plot")
	}

	p := plot.New()
	p.X.Label.Text = "Season"

	var series []seasonSeries
	switch metric {
	case MetricHomeWinPct:
		p.Title.Text = "Home Win Percentage by Season"
		p.Y.Label.Text = "Home Wins (%)"
		p.Y.Min = 0
		p.Y.Max = 100
		series = []seasonSeries{
			{"Home Win %", func(s analysis.SeasonSummary) float64 { return s.HomeWinPct }},
		}
		// coin-flip reference
		ref, err := plotter.NewLine(plotter.XYs{
			{X: float64(results.Seasons[0].Season), Y: 50},
			{X: float64(results.Seasons[len(results.Seasons)-1].Season), Y: 50},
		})
		if err != nil {
			return nil, errors.Wrap(err, "creating reference line")
		}
		ref.Color = color.Gray{Y: 128}
		ref.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(ref)
	case MetricPoints:
		p.Title.Text = "Mean Points per Game by Season"
		p.Y.Label.Text = "Points"
		series = []seasonSeries{
			{"Home", func(s analysis.SeasonSummary) float64 { return s.MeanHomePts }},
			{"Away", func(s analysis.SeasonSummary) float64 { return s.MeanAwayPts }},
		}
	default:
		return nil, errors.Errorf("unknown plot metric: %s", metric)
	}

	p.Add(plotter.NewGrid())
	p.X.Tick.Marker = plot.ConstantTicks(seasonTicks(results.Seasons))

	for i, s := range series {
		pts := make(plotter.XYs, len(results.Seasons))
		for j, season := range results.Seasons {
			pts[j] = plotter.XY{X: float64(season.Season), Y: s.value(season)}
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "creating line for %s", s.label)
		}
		line.Color = plotColors[i%len(plotColors)]
		line.LineStyle.Width = vg.Points(1.5)
		points.GlyphStyle.Color = line.Color
		p.Add(line, points)
		p.Legend.Add(s.label, line, points)
	}
	p.Legend.Top = true

	return renderPNG(p, vg.Points(800), vg.Points(400))
}

// seasonTicks labels every season, or every fifth one when there are many.
func seasonTicks(seasons []analysis.SeasonSummary) []plot.Tick {
	step := 1
	if len(seasons) > 12 {
		step = 5
	}
	ticks := make([]plot.Tick, 0, len(seasons))
	for i, s := range seasons {
		label := ""
		if i%step == 0 {
			label = fmt.Sprintf("%d", s.Season)
		}
		ticks = append(ticks, plot.Tick{Value: float64(s.Season), Label: label})
	}
	return ticks
}

func renderPNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, errors.Wrap(err, "creating plot writer")
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, errors.Wrap(err, "writing plot to buffer")
	}
	return buf.Bytes(), nil
}
