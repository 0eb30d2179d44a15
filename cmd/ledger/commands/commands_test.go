package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/ledger/internal/card"
	"github.com/wonny/ledger/internal/selection"
)

const testDocument = "../../../internal/dataset/testdata/companies.json"

// execute runs the root command with fresh flag values
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("DATA_SOURCE", testDocument)
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")

	env, source, verbose = "", "", false
	viewBearMin, viewBaseMin, viewBullMin, viewAvgMin = "", "", "", ""
	viewSort, viewDir, viewJSON = "", "", false
	cardPick, cardQA, cardJSON = "", false, false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestViewCommand_Table(t *testing.T) {
	out, err := execute(t, "view", "--sort", "avg")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.True(t, strings.HasPrefix(lines[2], "MSFT"))
	assert.True(t, strings.HasPrefix(lines[3], "AAPL"))
	assert.True(t, strings.HasPrefix(lines[4], "TCKR06"))
	assert.Contains(t, out, "3 / 3 companies")
}

func TestViewCommand_JSON(t *testing.T) {
	out, err := execute(t, "view", "--bull-min", "26", "--sort", "bull", "--dir", "asc", "--json")
	require.NoError(t, err)

	var rows []selection.Row
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "MSFT", rows[0].Ticker)
	assert.Equal(t, "TCKR06", rows[1].Ticker)
	assert.Equal(t, "0.00", rows[1].AvgLabel)
}

func TestViewCommand_JunkBoundIgnored(t *testing.T) {
	out, err := execute(t, "view", "--bear-min", "abc", "--json")
	require.NoError(t, err)

	var rows []selection.Row
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 3)
}

func TestViewCommand_BadSort(t *testing.T) {
	_, err := execute(t, "view", "--sort", "pe")
	assert.Error(t, err)
}

func TestCardCommand(t *testing.T) {
	out, err := execute(t, "card")
	require.NoError(t, err)
	assert.Contains(t, out, "Apple Inc. (AAPL)")
	assert.Contains(t, out, "Moat")
	assert.Contains(t, out, "Link => AAPL")

	out, err = execute(t, "card", "MSFT", "--pick", "bull", "--json")
	require.NoError(t, err)

	var c card.Card
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, "MSFT", c.Profile.Ticker)
	assert.Equal(t, card.PickBull, c.Scenario.Chosen)

	out, err = execute(t, "card", "AAPL", "--qa")
	require.NoError(t, err)
	assert.Contains(t, out, "Q1: Does it pay a dividend?")

	_, err = execute(t, "card", "NOPE")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Companies : 3")
	assert.Contains(t, out, "TCKR06: missing scenario [bear base]")
	assert.Contains(t, out, "TCKR06: empty scoreboard")
	assert.Contains(t, out, "2 warnings")

	_, err = execute(t, "check", "--source", "missing.json")
	assert.Error(t, err)
}

func TestTestLoggerCommand(t *testing.T) {
	out, err := execute(t, "test-logger")
	require.NoError(t, err)
	assert.Contains(t, out, "Overlay view computed")
	assert.Contains(t, out, "All logger tests completed!")
}

func TestScoreBar(t *testing.T) {
	assert.Equal(t, "", scoreBar(-1))
	assert.Equal(t, "█████", scoreBar(5))
	assert.Equal(t, strings.Repeat("█", 10), scoreBar(12))
}
