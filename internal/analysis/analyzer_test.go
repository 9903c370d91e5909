package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/game_ingest_go/internal/parser"
)

func sampleTable() *parser.GameTable {
	tbl := parser.NewGameTable([]string{ColSeason, ColPtsHome, ColPtsAway, ColHomeTeamWins}, 4)
	tbl.Rows = append(tbl.Rows,
		parser.FilteredRecord{2005, 100, 90, 1},
		parser.FilteredRecord{2005, 80, 95, 0},
		parser.FilteredRecord{2004, 110, 100, 1},
		parser.FilteredRecord{2004, 120, 105, 1},
	)
	return tbl
}

func TestAnalyzeGameTableColumns(t *testing.T) {
	res, err := AnalyzeGameTable(sampleTable())
	require.NoError(t, err)
	require.Len(t, res.Columns, 4)

	home := res.Columns[1]
	assert.Equal(t, ColPtsHome, home.Name)
	assert.Equal(t, 4, home.Count)
	assert.InDelta(t, 102.5, home.Mean, 1e-9)
	// population std dev of 100, 80, 110, 120
	assert.InDelta(t, math.Sqrt(218.75), home.StdDev, 1e-9)
	assert.Equal(t, 80.0, home.Min)
	assert.Equal(t, 120.0, home.Max)
	assert.Equal(t, 40.0, home.Range)
	assert.Empty(t, res.AnalysisErrors)
}

func TestAnalyzeGameTableSeasons(t *testing.T) {
	res, err := AnalyzeGameTable(sampleTable())
	require.NoError(t, err)
	require.Len(t, res.Seasons, 2)

	s04, s05 := res.Seasons[0], res.Seasons[1]
	assert.Equal(t, 2004, s04.Season)
	assert.Equal(t, 2, s04.Games)
	assert.Equal(t, 2, s04.HomeWins)
	assert.InDelta(t, 100.0, s04.HomeWinPct, 1e-9)
	assert.InDelta(t, 115.0, s04.MeanHomePts, 1e-9)
	assert.InDelta(t, 102.5, s04.MeanAwayPts, 1e-9)
	assert.InDelta(t, 12.5, s04.MeanMargin, 1e-9)

	assert.Equal(t, 2005, s05.Season)
	assert.Equal(t, 1, s05.HomeWins)
	assert.InDelta(t, 50.0, s05.HomeWinPct, 1e-9)
	assert.InDelta(t, -2.5, s05.MeanMargin, 1e-9)
}

func TestAnalyzeGameTableCorrelation(t *testing.T) {
	res, err := AnalyzeGameTable(sampleTable())
	require.NoError(t, err)
	require.NotNil(t, res.Correlation)

	assert.Equal(t, 4, res.Correlation.SymmetricDim())
	assert.InDelta(t, 1.0, res.Correlation.At(2, 2), 1e-9)
	require.Len(t, res.RankedByWinCorrelation, 3)
	for i := 1; i < len(res.RankedByWinCorrelation); i++ {
		assert.GreaterOrEqual(t, math.Abs(res.RankedByWinCorrelation[i-1].Value), math.Abs(res.RankedByWinCorrelation[i].Value))
	}
	// home points track wins more closely than anything else here
	assert.Equal(t, ColPtsHome, res.RankedByWinCorrelation[0].Name)
}

func TestAnalyzeGameTableMissingColumns(t *testing.T) {
	tbl := parser.NewGameTable([]string{"AST_home", "REB_home"}, 2)
	tbl.Rows = append(tbl.Rows, parser.FilteredRecord{20, 40}, parser.FilteredRecord{25, 44})

	res, err := AnalyzeGameTable(tbl)
	require.NoError(t, err)
	assert.Empty(t, res.Seasons)
	assert.Len(t, res.AnalysisErrors, 2)
}

func TestAnalyzeGameTableSingleRow(t *testing.T) {
	tbl := parser.NewGameTable([]string{ColSeason, ColPtsHome, ColPtsAway, ColHomeTeamWins}, 1)
	tbl.Rows = append(tbl.Rows, parser.FilteredRecord{2010, 99, 98, 1})

	res, err := AnalyzeGameTable(tbl)
	require.NoError(t, err)
	assert.Nil(t, res.Correlation)
	assert.Equal(t, 0.0, res.Columns[1].StdDev)
	assert.Equal(t, 0.0, res.Columns[1].Range)
}

func TestAnalyzeGameTableEmpty(t *testing.T) {
	_, err := AnalyzeGameTable(parser.NewGameTable([]string{"a"}, 0))
	assert.ErrorIs(t, err, ErrEmptyTable)
	_, err = AnalyzeGameTable(nil)
	assert.ErrorIs(t, err, ErrEmptyTable)
}
