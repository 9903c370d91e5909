package report

import (
	"image/color"

	"github.com/pkg/errors"
	"github.com/user/game_ingest_go/internal/analysis"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// correlationGrid exposes a correlation matrix as a plotter.GridXYZ, with
// column j on X and column i on Y.
type correlationGrid struct {
	m *mat.SymDense
}

func (g correlationGrid) Dims() (c, r int) {
	n := g.m.SymmetricDim()
	return n, n
}

func (g correlationGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g correlationGrid) X(c int) float64    { return float64(c) }
func (g correlationGrid) Y(r int) float64    { return float64(r) }

// CreateCorrelationHeatmap draws the column correlation matrix as PNG bytes.
func CreateCorrelationHeatmap(results *analysis.AnalysisResults) ([]byte, error) {
	if results == nil || results.Correlation == nil {
		return nil, errors.New("no correlation matrix to plot")
	}
	n := results.Correlation.SymmetricDim()
	if n != len(results.ColumnNames) {
		return nil, errors.Errorf("correlation matrix has %d columns, expected %d", n, len(results.ColumnNames))
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	hm := plotter.NewHeatMap(correlationGrid{m: results.Correlation}, cm.Palette(255))
	hm.Min = -1
	hm.Max = 1
	hm.NaN = color.Gray{Y: 200}

	p := plot.New()
	p.Title.Text = "Column Correlation (Pearson)"
	ticks := make([]plot.Tick, n)
	for i, name := range results.ColumnNames {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = 1.2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Min = -0.5
	p.X.Max = float64(n) - 0.5
	p.Y.Min = -0.5
	p.Y.Max = float64(n) - 0.5
	p.Add(hm)

	return renderPNG(p, vg.Points(700), vg.Points(600))
}
