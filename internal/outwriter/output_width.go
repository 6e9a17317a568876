package outwriter

import (
	"os"

	"github.com/dailyq/dailyq/internal/contract"
	"golang.org/x/term"
)

// getTerminalWidth returns the configured width override or the detected terminal width.
func getTerminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}

	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxQuestionWidth calculates the maximum width for question text in the day
// table based on terminal width and the number of date columns.
func getMaxQuestionWidth(cfg *contract.Config, dateColumns int) int {
	termWidth := getTerminalWidth(cfg)

	// Each date column holds a two character score plus borders/padding
	baseWidth := dateColumns * 5

	// Grade + Smiley columns with formatting
	baseWidth += 16

	// Reserve space for table borders around the question column
	baseWidth += 6

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable question width
		return 15
	}
	if available > 70 {
		// Maximum question width to prevent overly wide tables
		return 70
	}
	return available
}
