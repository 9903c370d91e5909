package analysis

import "gonum.org/v1/gonum/mat"

// Column names the season summary depends on.
const (
	ColSeason       = "SEASON"
	ColPtsHome      = "PTS_home"
	ColPtsAway      = "PTS_away"
	ColHomeTeamWins = "HOME_TEAM_WINS"
)

// ColumnStats holds descriptive statistics for one Game Table column.
type ColumnStats struct {
	Name   string
	Count  int
	Mean   float64
	StdDev float64 // population standard deviation
	Min    float64
	Max    float64
	Range  float64
}

// SeasonSummary aggregates the games of one season.
type SeasonSummary struct {
	Season      int     `csv:"season"`
	Games       int     `csv:"games"`
	HomeWins    int     `csv:"home_wins"`
	HomeWinPct  float64 `csv:"home_win_pct"`
	MeanHomePts float64 `csv:"mean_home_pts"`
	MeanAwayPts float64 `csv:"mean_away_pts"`
	MeanMargin  float64 `csv:"mean_margin"` // home minus away
}

// RankedColumn is used for ranking columns by a single value.
type RankedColumn struct {
	Name  string
	Value float64
}

// AnalysisResults holds all results from the analysis.
type AnalysisResults struct {
	Columns []ColumnStats
	Seasons []SeasonSummary // ascending by season
	// Correlation is the Pearson correlation between columns, nil with
	// fewer than two rows.
	Correlation *mat.SymDense
	ColumnNames []string
	// RankedByWinCorrelation orders columns by absolute correlation with
	// HOME_TEAM_WINS, descending.
	RankedByWinCorrelation []RankedColumn
	AnalysisErrors         []string
}

func NewAnalysisResults() *AnalysisResults {
	return &AnalysisResults{
		Columns:                make([]ColumnStats, 0),
		Seasons:                make([]SeasonSummary, 0),
		RankedByWinCorrelation: make([]RankedColumn, 0),
		AnalysisErrors:         make([]string, 0),
	}
}
