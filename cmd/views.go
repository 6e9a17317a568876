package cmd

import (
	"github.com/dailyq/dailyq/core"
	"github.com/dailyq/dailyq/internal/contract"
	"github.com/spf13/cobra"
)

// daysCmd renders the per-question grid of the most recent days.
var daysCmd = &cobra.Command{
	Use:   "days [log-path]",
	Short: "Show answers per question for the most recent days",
	Long: `Render one row per question and one column per day, ending yesterday.

Each cell holds the raw score of that day, or a blank when the question was
not answered. The last column shows the normalized score across the window
with a matching emoticon.

Examples:
  # Last 10 days from a log file
  dailyq days ~/questions.log

  # Last 14 days as plain text
  dailyq days ~/questions.log --days 14 --output text`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDays(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot render day view", err)
		}
	},
}

// monthsCmd renders one calendar per month.
var monthsCmd = &cobra.Command{
	Use:   "months [log-path]",
	Short: "Show a colored calendar of daily scores per month",
	Long: `Render a Monday-first calendar for every month in the window.

Each day shows its normalized score across all questions, colored by band.
Days outside the month are left blank.

Examples:
  # Current and previous month
  dailyq months ~/questions.log

  # Six months as CSV
  dailyq months ~/questions.log --months 6 --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMonths(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot render month view", err)
		}
	},
}

// statsCmd renders average scores per weekday and per question.
var statsCmd = &cobra.Command{
	Use:   "stats [log-path]",
	Short: "Show average scores per weekday and per question",
	Long: `Summarize every retained answer by weekday and by question.

Each bar is drawn with --multiplier dashes per score point.
Question rows are listed from the highest to the lowest average.

Examples:
  dailyq stats ~/questions.log
  dailyq stats ~/questions.log --multiplier 10 --censor`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot render statistics", err)
		}
	},
}

// trendCmd renders the daily score series with a fitted trend line.
var trendCmd = &cobra.Command{
	Use:   "trend [log-path]",
	Short: "Plot daily scores with a least-squares trend line",
	Long: `Fit a straight line through the normalized daily scores of the window.

The text output draws a terminal chart. JSON and CSV list every point with
its fitted value.

Examples:
  dailyq trend ~/questions.log --output text
  dailyq trend ~/questions.log --months 3 --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrend(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot render trend", err)
		}
	},
}

// reportCmd renders the combined report.
var reportCmd = &cobra.Command{
	Use:   "report [log-path]",
	Short: "Render the day view, month view and statistics together",
	Long: `Build the full daily questions report from a single log read.

HTML output is a single document that can be mailed or published as is.

Examples:
  dailyq report ~/questions.log --output-file report.html

  # Read the log from a variable
  dailyq report --text "$(cat ~/questions.log)"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot render report", err)
		}
	},
}
