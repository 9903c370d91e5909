package report

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/user/game_ingest_go/internal/analysis"
	"github.com/user/game_ingest_go/internal/parser"
	"github.com/xuri/excelize/v2"
)

// TableSheet is the worksheet WriteTableXLSX fills.
const TableSheet = "Sheet1"

// WriteTableXLSX writes the Game Table to a workbook: the column names on
// row 1 and one FilteredRecord per following row.
func WriteTableXLSX(path string, table *parser.GameTable) error {
	if table == nil {
		return errors.New("attempt to export nil game table")
	}
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(TableSheet, "A1", &header); err != nil {
		return errors.Wrap(err, "writing header row")
	}

	row := make([]interface{}, len(table.Columns))
	for i, rec := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrapf(err, "addressing row %d", i+2)
		}
		for j, v := range rec {
			row[j] = v
		}
		if err := f.SetSheetRow(TableSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "writing row %d", i+2)
		}
	}

	return errors.Wrap(f.SaveAs(path), "saving workbook")
}

// WriteSeasonsCSV writes season summaries as CSV, one season per line.
func WriteSeasonsCSV(path string, seasons []analysis.SeasonSummary) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "creating seasons csv")
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&seasons, out); err != nil {
		return errors.Wrap(err, "marshalling seasons")
	}
	return out.Close()
}
