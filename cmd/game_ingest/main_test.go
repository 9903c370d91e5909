package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gamesHeader = "GAME_DATE_EST,GAME_ID,GAME_STATUS_TEXT,HOME_TEAM_ID,VISITOR_TEAM_ID,SEASON,TEAM_ID_home,PTS_home,FG_PCT_home,FT_PCT_home,FG3_PCT_home,AST_home,REB_home,TEAM_ID_away,PTS_away,FG_PCT_away,FT_PCT_away,FG3_PCT_away,AST_away,REB_away,HOME_TEAM_WINS"

func gamesFile(t *testing.T, seasons ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(gamesHeader + "\n")
	for i, s := range seasons {
		fmt.Fprintf(&b, "2020-01-%02d,%d,Final,1610612737,1610612738,%s,1610612737,%d,0.45,0.8,0.35,24,44,1610612738,%d,0.43,0.75,0.33,22,41,%d\n",
			i%28+1, 21900001+i, s, 100+i%15, 98+i%11, i%2)
	}
	path := filepath.Join(t.TempDir(), "games.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRunDefault(t *testing.T) {
	path := gamesFile(t, "2003", "2004", "2004")
	out, _, err := run(t, path)
	require.NoError(t, err)

	assert.Equal(t,
		"game_data header is [SEASON HOME_TEAM_ID VISITOR_TEAM_ID PTS_home FG_PCT_home FT_PCT_home FG3_PCT_home AST_home REB_home PTS_away FG_PCT_away FT_PCT_away FG3_PCT_away AST_away REB_away HOME_TEAM_WINS]\n"+
			"2 game data stored\n"+
			"(2, 16)\n",
		out)
}

func TestRunInputFlagAndCap(t *testing.T) {
	seasons := make([]string, 30)
	for i := range seasons {
		seasons[i] = "2015"
	}
	path := gamesFile(t, seasons...)
	out, _, err := run(t, "--input", path, "--row-cap=20", "--progress-every=10", "--progress-total=40")
	require.NoError(t, err)

	assert.Contains(t, out, "25.0 % done\n")
	assert.NotContains(t, out, "50.0 % done")
	assert.Contains(t, out, "20 game data stored\n(20, 16)\n")
}

func TestRunParseErrorExitsWithError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.csv")
	body := gamesHeader + "\n2020-01-01,1,Final,1,2,2010,1,abc,0.4,0.8,0.3,20,40,2,90,0.4,0.7,0.3,20,40,1\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	out, stderr, err := run(t, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"abc"`)
	assert.Contains(t, stderr, "Error:")
	assert.NotContains(t, out, "game data stored")
}

func TestRunMissingFile(t *testing.T) {
	_, _, err := run(t, filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunSummaryAndOutputs(t *testing.T) {
	path := gamesFile(t, "2004", "2004", "2005", "2005", "2006", "2006")
	dir := t.TempDir()
	pdf := filepath.Join(dir, "report.pdf")
	xlsx := filepath.Join(dir, "games.xlsx")
	seasons := filepath.Join(dir, "seasons.csv")

	out, _, err := run(t, path, "--summary", "--report-pdf", pdf, "--export-xlsx", xlsx, "--export-seasons-csv", seasons)
	require.NoError(t, err)

	assert.Contains(t, out, "6 game data stored\n(6, 16)\n")
	assert.Contains(t, out, "HOME_TEAM_WINS")
	assert.Contains(t, out, "Home Win %")
	for _, p := range []string{pdf, xlsx, seasons} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.NotZero(t, info.Size(), p)
	}
}

func TestRunSummaryOnEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.csv")
	body := gamesHeader + "\n2020-01-01,1,Final,1,2,2010,1,,0.4,0.8,0.3,20,40,2,90,0.4,0.7,0.3,20,40,1\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	out, stderr, err := run(t, path, "--summary")
	require.NoError(t, err)
	assert.Contains(t, out, "\n1\n")
	assert.Contains(t, out, "1 game data stored\n(0, 16)\n")
	assert.Contains(t, stderr, "skipping summary")
}

func TestRunInvalidConfig(t *testing.T) {
	_, _, err := run(t, "--columns=-3", "games.csv")
	assert.Error(t, err)
}
