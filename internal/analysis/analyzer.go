package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/user/game_ingest_go/internal/parser"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptyTable is returned when there is nothing to analyze.
var ErrEmptyTable = errors.New("game table is nil or empty, cannot analyze")

// AnalyzeGameTable computes column statistics, season summaries and the
// column correlation matrix of an ingested table.
func AnalyzeGameTable(table *parser.GameTable) (*AnalysisResults, error) {
	if table.Len() == 0 {
		return nil, ErrEmptyTable
	}
	dense := table.Dense()
	rows, cols := dense.Dims()

	results := NewAnalysisResults()
	results.ColumnNames = table.Columns

	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, dense)
		results.Columns = append(results.Columns, columnStats(table.Columns[j], col))
	}

	seasons, err := summarizeSeasons(table)
	if err != nil {
		results.AnalysisErrors = append(results.AnalysisErrors, fmt.Sprintf("Skipping season summary: %v", err))
	} else {
		results.Seasons = seasons
	}

	if rows < 2 {
		results.AnalysisErrors = append(results.AnalysisErrors, "Correlation needs at least two rows.")
		return results, nil
	}
	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, dense, nil)
	results.Correlation = &corr

	winIdx := table.ColumnIndex(ColHomeTeamWins)
	if winIdx < 0 {
		results.AnalysisErrors = append(results.AnalysisErrors, fmt.Sprintf("Column %s not selected, no win correlation ranking.", ColHomeTeamWins))
		return results, nil
	}
	for j, name := range table.Columns {
		if j == winIdx {
			continue
		}
		c := results.Correlation.At(j, winIdx)
		// constant columns have no defined correlation
		if math.IsNaN(c) {
			continue
		}
		results.RankedByWinCorrelation = append(results.RankedByWinCorrelation, RankedColumn{Name: name, Value: c})
	}
	sort.SliceStable(results.RankedByWinCorrelation, func(i, j int) bool {
		return math.Abs(results.RankedByWinCorrelation[i].Value) > math.Abs(results.RankedByWinCorrelation[j].Value)
	})

	return results, nil
}

func columnStats(name string, data []float64) ColumnStats {
	mean, variance := stat.PopMeanVariance(data, nil)
	cs := ColumnStats{
		Name:   name,
		Count:  len(data),
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		Min:    floats.Min(data),
		Max:    floats.Max(data),
	}
	cs.Range = cs.Max - cs.Min
	if len(data) == 1 {
		cs.StdDev = 0
	}
	return cs
}

func summarizeSeasons(table *parser.GameTable) ([]SeasonSummary, error) {
	seasonIdx := table.ColumnIndex(ColSeason)
	homeIdx := table.ColumnIndex(ColPtsHome)
	awayIdx := table.ColumnIndex(ColPtsAway)
	winIdx := table.ColumnIndex(ColHomeTeamWins)
	required := []struct {
		name string
		idx  int
	}{{ColSeason, seasonIdx}, {ColPtsHome, homeIdx}, {ColPtsAway, awayIdx}, {ColHomeTeamWins, winIdx}}
	for _, r := range required {
		if r.idx < 0 {
			return nil, errors.Errorf("column %s not selected", r.name)
		}
	}

	bySeason := make(map[int]*SeasonSummary)
	for _, row := range table.Rows {
		season := int(row[seasonIdx])
		s, ok := bySeason[season]
		if !ok {
			s = &SeasonSummary{Season: season}
			bySeason[season] = s
		}
		s.Games++
		if row[winIdx] == 1 {
			s.HomeWins++
		}
		// running sums, turned into means below
		s.MeanHomePts += row[homeIdx]
		s.MeanAwayPts += row[awayIdx]
	}

	out := make([]SeasonSummary, 0, len(bySeason))
	for _, s := range bySeason {
		n := float64(s.Games)
		s.HomeWinPct = 100 * float64(s.HomeWins) / n
		s.MeanHomePts /= n
		s.MeanAwayPts /= n
		s.MeanMargin = s.MeanHomePts - s.MeanAwayPts
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Season < out[j].Season
	})
	return out, nil
}
