package parser

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/user/game_ingest_go/internal/logger"
)

// Options controls which fields are selected and when ingestion stops.
type Options struct {
	Columns      []int  // raw indices making up a FilteredRecord, in order
	SeasonColumn int    // raw index compared against SkipSeason
	SkipSeason   string // rows with this literal season are ignored entirely
	CheckColumn  int    // raw index whose empty value stops ingestion

	RowCap        int // stop after this many counted rows; <= 0 disables
	ProgressEvery int // print progress every N counted rows; <= 0 disables
	ProgressTotal int // denominator of the progress percentage
}

// DefaultOptions returns the options matching the games.csv layout.
func DefaultOptions() Options {
	cols := make([]int, len(DefaultColumns))
	copy(cols, DefaultColumns)
	return Options{
		Columns:       cols,
		SeasonColumn:  ColSeason,
		SkipSeason:    DefaultSkipSeason,
		CheckColumn:   ColPtsHome,
		RowCap:        DefaultRowCap,
		ProgressEvery: DefaultProgressEvery,
		ProgressTotal: DefaultProgressTotal,
	}
}

// Validate checks the options for values that cannot index a record.
func (o Options) Validate() error {
	if len(o.Columns) == 0 {
		return errors.Wrap(ErrInvalidOptions, "no columns selected")
	}
	for _, c := range o.Columns {
		if c < 0 {
			return errors.Wrapf(ErrInvalidOptions, "negative column index %d", c)
		}
	}
	if o.SeasonColumn < 0 {
		return errors.Wrapf(ErrInvalidOptions, "negative season column %d", o.SeasonColumn)
	}
	if o.CheckColumn < 0 {
		return errors.Wrapf(ErrInvalidOptions, "negative check column %d", o.CheckColumn)
	}
	if o.ProgressEvery > 0 && o.ProgressTotal <= 0 {
		return errors.Wrapf(ErrInvalidOptions, "progress total must be positive, got %d", o.ProgressTotal)
	}
	return nil
}

// Ingestor reads game rows into a GameTable. Progress and summary lines go
// to Out; diagnostics go to Log.
type Ingestor struct {
	Options Options
	Out     io.Writer
	Log     logger.Logger
}

// NewIngestor returns an Ingestor writing its progress to out.
func NewIngestor(opts Options, out io.Writer) *Ingestor {
	if out == nil {
		out = io.Discard
	}
	return &Ingestor{
		Options: opts,
		Out:     out,
		Log:     logger.NopLogger,
	}
}

// IngestFile opens path and ingests it. The file is closed on every return.
func (in *Ingestor) IngestFile(ctx context.Context, path string) (*IngestResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening game data")
	}
	defer f.Close()

	in.Log.Infof("ingesting %s", path)
	return in.Ingest(ctx, f)
}

// Ingest reads a header and data rows from r.
//
// Rows whose season equals SkipSeason are dropped before counting. A row
// with an empty check field stops the loop and keeps what was read so far.
// A selected field that is not numeric aborts with a *ParseError and no
// table. Reading stops as soon as RowCap rows have been counted.
func (in *Ingestor) Ingest(ctx context.Context, r io.Reader) (*IngestResult, error) {
	opts := in.Options
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	} else if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	names := make([]string, len(opts.Columns))
	for i, c := range opts.Columns {
		if c >= len(header) {
			return nil, &FieldError{Line: 1, Column: c, Width: len(header)}
		}
		names[i] = header[c]
	}
	fmt.Fprintf(in.Out, "game_data header is %v\n", names)

	capacity := opts.RowCap
	if capacity <= 0 || capacity > 4096 {
		capacity = 4096
	}
	result := &IngestResult{
		Header: header,
		Table:  NewGameTable(names, capacity),
		Stop:   StopEOF,
	}

	counter := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "reading game data")
		}
		line, _ := reader.FieldPos(0)

		if opts.SeasonColumn >= len(row) {
			return nil, &FieldError{Line: line, Column: opts.SeasonColumn, Width: len(row)}
		}
		if row[opts.SeasonColumn] == opts.SkipSeason {
			continue
		}
		counter++

		if opts.CheckColumn >= len(row) {
			return nil, &FieldError{Line: line, Column: opts.CheckColumn, Width: len(row)}
		}
		if row[opts.CheckColumn] == "" {
			fmt.Fprintln(in.Out, counter)
			fmt.Fprintf(in.Out, "%q\n", row)
			in.Log.Warnf("line %d: column %d is empty, stopping after %d rows", line, opts.CheckColumn, counter)
			result.Stop = StopEmptyField
			break
		}

		rec, err := filterRecord(row, opts.Columns, line)
		if err != nil {
			return nil, err
		}
		result.Table.Rows = append(result.Table.Rows, rec)

		if counter == opts.RowCap {
			in.Log.Debugf("row cap %d reached at line %d", opts.RowCap, line)
			result.Stop = StopRowCap
			break
		}
		if opts.ProgressEvery > 0 && counter%opts.ProgressEvery == 0 {
			fmt.Fprintf(in.Out, "%s %% done\n", formatPercent(100*float64(counter)/float64(opts.ProgressTotal)))
		}
	}
	result.Counted = counter

	rows, cols := result.Table.Shape()
	fmt.Fprintf(in.Out, "%d game data stored\n", counter)
	fmt.Fprintf(in.Out, "(%d, %d)\n", rows, cols)
	in.Log.Infof("ingestion finished: %s, %d rows counted", result.Stop, counter)
	return result, nil
}

func filterRecord(row []string, columns []int, line int) (FilteredRecord, error) {
	rec := make(FilteredRecord, len(columns))
	for i, c := range columns {
		if c >= len(row) {
			return nil, &FieldError{Line: line, Column: c, Width: len(row)}
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
		if err != nil {
			return nil, &ParseError{Line: line, Column: c, Value: row[c], Err: err}
		}
		rec[i] = v
	}
	return rec, nil
}

// formatPercent prints whole numbers with a trailing ".0" so 50 reads as
// "50.0" while 12.5 stays "12.5".
func formatPercent(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
