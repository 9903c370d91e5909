package parser

import (
	"gonum.org/v1/gonum/mat"
)

// Default column layout of the NBA games.csv file.
const (
	ColHomeTeamID    = 3
	ColVisitorTeamID = 4
	ColSeason        = 5
	ColPtsHome       = 7
	ColHomeTeamWins  = 20

	// DefaultSkipSeason marks the season whose rows carry no box-score detail.
	DefaultSkipSeason = "2003"

	DefaultRowCap        = 2000
	DefaultProgressEvery = 5000
	// DefaultProgressTotal is an assumed row count for the progress
	// percentage. It is not derived from the input.
	DefaultProgressTotal = 25267
)

// DefaultColumns is the ordered selection making up a FilteredRecord:
// SEASON, both team ids, then the home and away box-score columns, then
// HOME_TEAM_WINS. Indices 6 and 13 (per-side TEAM_ID) are dropped.
var DefaultColumns = []int{5, 3, 4, 7, 8, 9, 10, 11, 12, 14, 15, 16, 17, 18, 19, 20}

// RawRecord is one unparsed CSV row.
type RawRecord []string

// FilteredRecord holds the selected fields of a RawRecord, parsed as floats.
type FilteredRecord []float64

// GameTable is the accumulated result of an ingestion run.
type GameTable struct {
	Columns []string // header names of the selected columns, in record order
	Rows    []FilteredRecord
}

// NewGameTable returns an empty table with room for capacity rows.
func NewGameTable(columns []string, capacity int) *GameTable {
	if capacity < 0 {
		capacity = 0
	}
	return &GameTable{
		Columns: columns,
		Rows:    make([]FilteredRecord, 0, capacity),
	}
}

// Len returns the number of rows in the table.
func (t *GameTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Shape returns (rows, columns).
func (t *GameTable) Shape() (int, int) {
	if t == nil {
		return 0, 0
	}
	return len(t.Rows), len(t.Columns)
}

// ColumnIndex returns the position of name within a FilteredRecord, or -1.
func (t *GameTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Dense copies the table into a row-major gonum matrix. It returns nil for
// an empty table since mat.NewDense panics on zero dimensions.
func (t *GameTable) Dense() *mat.Dense {
	r, c := t.Shape()
	if r == 0 || c == 0 {
		return nil
	}
	data := make([]float64, 0, r*c)
	for _, row := range t.Rows {
		data = append(data, row...)
	}
	return mat.NewDense(r, c, data)
}

// StopReason tells why ingestion ended.
type StopReason int

const (
	StopEOF StopReason = iota
	StopRowCap
	StopEmptyField
)

func (s StopReason) String() string {
	switch s {
	case StopEOF:
		return "end of input"
	case StopRowCap:
		return "row cap reached"
	case StopEmptyField:
		return "empty checked field"
	}
	return "unknown"
}

// IngestResult is returned by a successful ingestion run.
type IngestResult struct {
	Header  RawRecord
	Table   *GameTable
	Counted int // rows counted, including one stopped on an empty field
	Stop    StopReason
}
