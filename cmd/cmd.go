// Package cmd defines the command-line interface for dailyq.
package cmd

import (
	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(daysCmd)
	rootCmd.AddCommand(monthsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("text", "", "Literal log text to read instead of a log file")
	rootCmd.PersistentFlags().String("today", "", "Reference date in YYYY-MM-DD (defaults to the current UTC date)")
	rootCmd.PersistentFlags().IntP("days", "d", schema.DefaultDays, "Number of days shown in the day view")
	rootCmd.PersistentFlags().IntP("months", "m", schema.DefaultMonths, "Number of months kept for the month view (1-12)")
	rootCmd.PersistentFlags().String("score-range", "0,1", "Lower and upper bound of a raw answer score")
	rootCmd.PersistentFlags().String("scale", "0,100", "Lower and upper bound of the normalized scale")
	rootCmd.PersistentFlags().String("prefix", schema.DefaultQuestionPrefix, "Question prefix shown above the statistics table")
	rootCmd.PersistentFlags().Float64("multiplier", schema.DefaultMultiplier, "Multiplier applied to average scores in the statistics view")
	rootCmd.PersistentFlags().Bool("only-decimals", false, "Print fractional day-view scores as bare decimals (.5 instead of 0.5)")
	rootCmd.PersistentFlags().Bool("censor", false, "Mask every third character of each question")
	rootCmd.PersistentFlags().String("output", string(schema.HTMLOut), "Output format: html or text or json or csv")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("history-backend", "", "Report history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
