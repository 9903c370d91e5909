package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/game_ingest_go/internal/parser"
)

func newFlags(t *testing.T, args ...string) (*Config, *pflag.FlagSet) {
	t.Helper()
	cfg := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return &cfg, fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ingest.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, fs := newFlags(t)
	require.NoError(t, Load(fs))

	assert.Equal(t, "games.csv", cfg.Input)
	assert.Equal(t, parser.DefaultOptions(), cfg.Ingest)
	assert.False(t, cfg.Summary)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFlags(t *testing.T) {
	cfg, fs := newFlags(t, "--row-cap=0", "--progress-total=100", "--columns=1,2,3", "--skip-season=1999", "-v")
	require.NoError(t, Load(fs))

	assert.Equal(t, 0, cfg.Ingest.RowCap)
	assert.Equal(t, 100, cfg.Ingest.ProgressTotal)
	assert.Equal(t, []int{1, 2, 3}, cfg.Ingest.Columns)
	assert.Equal(t, "1999", cfg.Ingest.SkipSeason)
	assert.True(t, cfg.Verbose)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("GAMEINGEST_ROW_CAP", "42")
	t.Setenv("GAMEINGEST_COLUMNS", "7,8")
	t.Setenv("GAMEINGEST_INPUT", "/data/games.csv")

	cfg, fs := newFlags(t, "--input=flag.csv")
	require.NoError(t, Load(fs))

	assert.Equal(t, 42, cfg.Ingest.RowCap)
	assert.Equal(t, []int{7, 8}, cfg.Ingest.Columns)
	assert.Equal(t, "flag.csv", cfg.Input, "flags take priority over env")
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
input = "nba/games.csv"
row-cap = 10
progress-every = 1
columns = [5, 7, 14]
summary = true
`)
	cfg, fs := newFlags(t, "--config", path, "--progress-every=3")
	require.NoError(t, Load(fs))

	assert.Equal(t, "nba/games.csv", cfg.Input)
	assert.Equal(t, 10, cfg.Ingest.RowCap)
	assert.Equal(t, 3, cfg.Ingest.ProgressEvery)
	assert.Equal(t, []int{5, 7, 14}, cfg.Ingest.Columns)
	assert.True(t, cfg.Summary)
	assert.Equal(t, parser.DefaultProgressTotal, cfg.Ingest.ProgressTotal)
}

func TestLoadConfigFileUnknownKey(t *testing.T) {
	path := writeConfig(t, "players = \"players.csv\"\n")
	_, fs := newFlags(t, "--config", path)
	err := Load(fs)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, fs := newFlags(t, "--config", filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, Load(fs))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Input = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = Default()
	cfg.Ingest.Columns = []int{-1}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}
