package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dailyq/dailyq/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	BadColor     = color.New(color.FgYellow, color.Bold) // BadColor mirrors the orange warning color of the markup.
	NeutralColor = color.New(color.Reset)                // NeutralColor is the terminal default.
	GoodColor    = color.New(color.FgGreen, color.Bold)  // GoodColor mirrors the success color of the markup.
)

// GetColorBand returns text colored for the given band for console output (table).
func GetColorBand(band schema.Band, text string) string {
	switch band {
	case schema.BadBand:
		return BadColor.Sprint(text)
	case schema.GoodBand:
		return GoodColor.Sprint(text)
	default:
		return NeutralColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for report history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".dailyq_history.db"
	}
	return filepath.Join(homeDir, ".dailyq_history.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
