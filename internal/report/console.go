package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/table"
	"github.com/jedib0t/go-pretty/text"
	"github.com/pkg/errors"
	"github.com/user/game_ingest_go/internal/analysis"
)

// WriteColumnSummary renders per-column statistics, and the season
// summaries when present, as text tables on w.
func WriteColumnSummary(w io.Writer, results *analysis.AnalysisResults) error {
	if results == nil {
		return errors.New("attempt to write out nil analysis results")
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	// Don't uppercase the header values.
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"Column", "Count", "Mean", "Std Dev", "Min", "Max", "Range"})
	for _, c := range results.Columns {
		t.AppendRow(table.Row{c.Name, c.Count, f3(c.Mean), f3(c.StdDev), f3(c.Min), f3(c.Max), f3(c.Range)})
	}
	t.Render()

	if len(results.Seasons) > 0 {
		st := table.NewWriter()
		st.SetOutputMirror(w)
		st.Style().Format.Header = text.FormatDefault
		st.AppendHeader(table.Row{"Season", "Games", "Home Wins", "Home Win %", "Home Pts", "Away Pts", "Margin"})
		for _, s := range results.Seasons {
			st.AppendRow(table.Row{s.Season, s.Games, s.HomeWins, f3(s.HomeWinPct), f3(s.MeanHomePts), f3(s.MeanAwayPts), f3(s.MeanMargin)})
		}
		st.Render()
	}

	for _, e := range results.AnalysisErrors {
		if _, err := fmt.Fprintf(w, "- %s\n", e); err != nil {
			return errors.Wrap(err, "writing analysis warning")
		}
	}
	return nil
}

func f3(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
