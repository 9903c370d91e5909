package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	"github.com/user/game_ingest_go/internal/analysis"
)

// Keys of the plot images BuildPDFReport looks for.
const (
	PlotHomeWinPct  = "season_home_win_pct"
	PlotPoints      = "season_points"
	PlotCorrelation = "correlation_heatmap"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and the flow position for PDF generation.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

// writeTable draws a bordered table. widths are fractions of the content
// width. The header is repeated after a page break.
func (s *pdfStyler) writeTable(headers []string, widths []float64, rows [][]string) {
	abs := make([]float64, len(widths))
	for i, rel := range widths {
		abs[i] = rel * pdfContentWidth
	}
	writeHeader := func() {
		s.applyStyle("tableHeader")
		x := pdfMargin
		for i, h := range headers {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(abs[i], s.lineHeight, h, "1", 0, "C", true, 0, "")
			x += abs[i]
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(2 * s.lineHeight)
	writeHeader()
	for _, row := range rows {
		if s.currentY+s.lineHeight > s.pageHeight {
			s.newPage()
			writeHeader()
		}
		s.applyStyle("tableCell")
		x := pdfMargin
		for i, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(abs[i], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			x += abs[i]
		}
		s.currentY += s.lineHeight
	}
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64, caption string) {
	s.pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(imageBytes))
	if width > pdfContentWidth {
		height *= pdfContentWidth / width
		width = pdfContentWidth
	}
	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	s.pdf.ImageOptions(imageName, pdfMargin, s.currentY, width, height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height
	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

// BuildPDFReport writes the ingestion report to path. Missing plots are
// noted in the report instead of failing it.
func BuildPDFReport(path string, results *analysis.AnalysisResults, counted int, plotImages map[string][]byte) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)
	styler.writeParagraph(fmt.Sprintf("Game Data Ingestion Report (%d Rows Counted)", counted), "h1", "C")
	styler.addSpacer(5)

	if results == nil || len(results.Columns) == 0 {
		styler.writeParagraph("No analysis results to display.", "normal", "L")
		return errors.Wrap(pdf.OutputFileAndClose(path), "writing pdf")
	}

	styler.writeParagraph("Column Statistics", "h2", "L")
	colRows := make([][]string, 0, len(results.Columns))
	for _, c := range results.Columns {
		colRows = append(colRows, []string{c.Name, strconv.Itoa(c.Count), f3(c.Mean), f3(c.StdDev), f3(c.Min), f3(c.Max), f3(c.Range)})
	}
	styler.writeTable(
		[]string{"Column", "Count", "Mean", "Std Dev", "Min", "Max", "Range"},
		[]float64{0.22, 0.1, 0.14, 0.14, 0.14, 0.13, 0.13},
		colRows,
	)
	styler.addSpacer(5)

	styler.writeParagraph("Season Summary", "h2", "L")
	if len(results.Seasons) > 0 {
		seasonRows := make([][]string, 0, len(results.Seasons))
		for _, s := range results.Seasons {
			seasonRows = append(seasonRows, []string{
				strconv.Itoa(s.Season), strconv.Itoa(s.Games), strconv.Itoa(s.HomeWins),
				f3(s.HomeWinPct), f3(s.MeanHomePts), f3(s.MeanAwayPts), f3(s.MeanMargin),
			})
		}
		styler.writeTable(
			[]string{"Season", "Games", "Home Wins", "Home Win %", "Home Pts", "Away Pts", "Margin"},
			[]float64{0.13, 0.13, 0.14, 0.15, 0.15, 0.15, 0.15},
			seasonRows,
		)
	} else {
		styler.writeParagraph("No season summary available.", "normal", "L")
	}
	styler.addSpacer(5)

	styler.writeParagraph("Top 10 Columns by Correlation with Home Win", "h2", "L")
	if len(results.RankedByWinCorrelation) > 0 {
		rankRows := make([][]string, 0, 10)
		for i, r := range results.RankedByWinCorrelation {
			if i >= 10 {
				break
			}
			rankRows = append(rankRows, []string{strconv.Itoa(i + 1), r.Name, f3(r.Value)})
		}
		styler.writeTable([]string{"Rank", "Column", "Correlation"}, []float64{0.15, 0.5, 0.35}, rankRows)
	} else {
		styler.writeParagraph("No correlation ranking available.", "normal", "L")
	}

	if len(results.AnalysisErrors) > 0 {
		styler.addSpacer(5)
		styler.writeParagraph("Analysis Warnings", "h2", "L")
		for _, e := range results.AnalysisErrors {
			styler.writeParagraph("- "+e, "normal", "L")
		}
	}

	styler.newPage()
	styler.writeParagraph("Graphical Analysis", "h1", "C")
	styler.addSpacer(5)

	plotDefs := []struct {
		Key     string
		Title   string
		Caption string
		Aspect  float64
	}{
		{PlotHomeWinPct, "Home Win Percentage", "Share of games won by the home team, per season", 0.5},
		{PlotPoints, "Points per Game", "Mean home and away points, per season", 0.5},
		{PlotCorrelation, "Column Correlation", "Pearson correlation between ingested columns", 6.0 / 7.0},
	}
	imgWidth := pdfContentWidth * 0.8
	for i, pDef := range plotDefs {
		if i > 0 {
			styler.newPage()
		}
		styler.writeParagraph(pDef.Title, "h2", "L")
		imgBytes, ok := plotImages[pDef.Key]
		if !ok || len(imgBytes) == 0 {
			styler.writeParagraph(fmt.Sprintf("Plot for %s not available.", pDef.Title), "normal", "L")
			continue
		}
		w := imgWidth
		h := w * pDef.Aspect
		// keep tall plots on one page
		if maxH := styler.pageHeight - styler.currentY - 2*styler.lineHeight; h > maxH {
			w *= maxH / h
			h = maxH
		}
		styler.addImage(imgBytes, pDef.Key, w, h, pDef.Caption)
	}

	return errors.Wrap(pdf.OutputFileAndClose(path), "writing pdf")
}
