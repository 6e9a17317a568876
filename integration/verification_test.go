//go:build integration

package integration

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dailyq/dailyq/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDaysVerification checks the day view against hand-computed normalized scores.
func TestDaysVerification(t *testing.T) {
	logPath := writeSampleLog(t)

	out, err := runDailyq(t, nil, "days", logPath, "--today", sampleToday, "--days", "2", "--output", "json")
	require.NoError(t, err)

	var view schema.DayView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Dates, 2)
	assert.Equal(t, "2024/02/01", view.Dates[0].Format("2006/01/02"))
	assert.Equal(t, "2024/02/02", view.Dates[1].Format("2006/01/02"))

	normalized := make(map[string]int)
	for _, row := range view.Rows {
		normalized[row.Question] = row.Normalized
	}
	assert.Equal(t, map[string]int{"Did I exercise?": 50, "Did I read?": 100}, normalized)
}

// TestMonthsVerification checks the month CSV for the answered days.
func TestMonthsVerification(t *testing.T) {
	logPath := writeSampleLog(t)

	out, err := runDailyq(t, nil, "months", logPath, "--today", sampleToday, "--output", "csv")
	require.NoError(t, err)

	assert.Contains(t, out, "2024/02/01,2,2,100,good")
	assert.Contains(t, out, "2024/02/02,1,2,50,")
	assert.Contains(t, out, "2024/02/29,0,0,0,")
}

// TestTextInputMatchesFile checks that --text and a log file give the same report.
func TestTextInputMatchesFile(t *testing.T) {
	logPath := writeSampleLog(t)

	fromFile, err := runDailyq(t, nil, "stats", logPath, "--today", sampleToday, "--output", "json")
	require.NoError(t, err)
	fromText, err := runDailyq(t, nil, "stats", "--text", strings.TrimSpace(sampleLog), "--today", sampleToday, "--output", "json")
	require.NoError(t, err)

	assert.JSONEq(t, fromFile, fromText)
}

// TestReportHTML checks that the combined report names every question.
func TestReportHTML(t *testing.T) {
	logPath := writeSampleLog(t)

	out, err := runDailyq(t, nil, "report", logPath, "--today", sampleToday)
	require.NoError(t, err)

	assert.Contains(t, out, "Did I exercise?")
	assert.Contains(t, out, "Did I read?")
}

// TestMissingSourceFails checks the CLI refuses to run without a log.
func TestMissingSourceFails(t *testing.T) {
	_, err := runDailyq(t, nil, "days")
	assert.Error(t, err)
}

// TestSQLiteHistory records two runs into the default SQLite file and exports them.
func TestSQLiteHistory(t *testing.T) {
	logPath := writeSampleLog(t)
	home := t.TempDir()
	env := []string{"HOME=" + home, "DAILYQ_HISTORY_BACKEND=sqlite"}

	_, err := runDailyq(t, env, "history", "migrate")
	require.NoError(t, err)
	_, err = runDailyq(t, env, "months", logPath, "--today", sampleToday, "--output", "csv")
	require.NoError(t, err)

	status, err := runDailyq(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, status, "History Backend: sqlite")
	assert.Contains(t, status, "Total Runs: 1")

	exportFile := filepath.Join(home, "history")
	_, err = runDailyq(t, env, "history", "export", "--output-file", exportFile)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, "history.report_runs.parquet"))
	assert.FileExists(t, filepath.Join(home, "history.daily_scores.parquet"))
}
