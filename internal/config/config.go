// Package config defines the ingest configuration and loads it from command
// line flags, environment variables and an optional TOML file.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/user/game_ingest_go/internal/parser"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GAMEINGEST"

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("invalid configuration")

// Config is everything a run of game_ingest needs.
type Config struct {
	ConfigFile string
	Input      string
	Ingest     parser.Options

	Verbose bool
	// Summary prints per-column statistics after ingestion.
	Summary          bool
	ReportPDF        string
	ExportXLSX       string
	ExportSeasonsCSV string
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Input:  "games.csv",
		Ingest: parser.DefaultOptions(),
	}
}

// BindFlags registers c's fields on fs, using the current values as
// defaults.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.ConfigFile, "config", "c", c.ConfigFile, "Configuration file to read from (TOML).")
	fs.StringVar(&c.Input, "input", c.Input, "Path of the games CSV file.")
	fs.IntSliceVar(&c.Ingest.Columns, "columns", c.Ingest.Columns, "Raw column indices to keep, in output order.")
	fs.IntVar(&c.Ingest.SeasonColumn, "season-column", c.Ingest.SeasonColumn, "Column holding the season year.")
	fs.StringVar(&c.Ingest.SkipSeason, "skip-season", c.Ingest.SkipSeason, "Season whose rows are ignored.")
	fs.IntVar(&c.Ingest.CheckColumn, "check-column", c.Ingest.CheckColumn, "Column whose empty value stops ingestion.")
	fs.IntVar(&c.Ingest.RowCap, "row-cap", c.Ingest.RowCap, "Stop after this many counted rows (0 for no cap).")
	fs.IntVar(&c.Ingest.ProgressEvery, "progress-every", c.Ingest.ProgressEvery, "Print progress every N counted rows (0 to disable).")
	fs.IntVar(&c.Ingest.ProgressTotal, "progress-total", c.Ingest.ProgressTotal, "Assumed row total used for the progress percentage.")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "Enable debug logging.")
	fs.BoolVar(&c.Summary, "summary", c.Summary, "Print per-column statistics of the ingested table.")
	fs.StringVar(&c.ReportPDF, "report-pdf", c.ReportPDF, "Write a PDF report to this path.")
	fs.StringVar(&c.ExportXLSX, "export-xlsx", c.ExportXLSX, "Write the ingested table to this XLSX path.")
	fs.StringVar(&c.ExportSeasonsCSV, "export-seasons-csv", c.ExportSeasonsCSV, "Write per-season summaries to this CSV path.")
}

// Validate checks that c can drive an ingestion run.
func (c Config) Validate() error {
	if c.Input == "" {
		return errors.Wrap(ErrInvalid, "no input file")
	}
	if err := c.Ingest.Validate(); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

// Load takes fs as the definition of all configuration options and their
// defaults. It reads the command line, the environment and a config file
// (if --config is set) and applies them in that priority order. Each flag
// holds a pointer to where its value is stored, so the bound Config is
// modified in place.
//
// Environment variables are capitalized flag names with dashes replaced by
// underscores, prefixed with EnvPrefix and an underscore.
func Load(fs *pflag.FlagSet) error {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	validTags := make(map[string]bool)
	fs.VisitAll(func(f *pflag.Flag) {
		validTags[f.Name] = true
	})

	if c := v.GetString("config"); c != "" {
		v.SetConfigFile(c)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading configuration file '%s'", c)
		}
		for _, key := range v.AllKeys() {
			if !validTags[key] {
				return errors.Wrapf(ErrInvalid, "unknown option in configuration file: %v", key)
			}
		}
	}

	var flagErr error
	fs.VisitAll(func(f *pflag.Flag) {
		// A flag given on the command line wins over everything else.
		if flagErr != nil || f.Changed {
			return
		}
		var value string
		if f.Value.Type() == "intSlice" {
			value = intSliceValue(v, f.Name)
			if value == "" {
				return
			}
		} else {
			value = v.GetString(f.Name)
		}
		if err := f.Value.Set(value); err != nil {
			flagErr = errors.Wrapf(err, "setting %s", f.Name)
		}
	})
	return flagErr
}

// intSliceValue renders an int slice option as the comma separated form
// pflag expects. Env vars and flag defaults arrive as strings, config
// files as lists.
func intSliceValue(v *viper.Viper, key string) string {
	if s, ok := v.Get(key).(string); ok {
		return strings.Trim(s, "[]")
	}
	ints := v.GetIntSlice(key)
	parts := make([]string, len(ints))
	for i, n := range ints {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// String renders the effective configuration for debug logging.
func (c Config) String() string {
	return fmt.Sprintf("input=%s columns=%v season-column=%d skip-season=%q check-column=%d row-cap=%d progress-every=%d progress-total=%d",
		c.Input, c.Ingest.Columns, c.Ingest.SeasonColumn, c.Ingest.SkipSeason, c.Ingest.CheckColumn,
		c.Ingest.RowCap, c.Ingest.ProgressEvery, c.Ingest.ProgressTotal)
}
