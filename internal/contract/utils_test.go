package contract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dailyq/dailyq/schema"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorBand(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	for _, band := range []schema.Band{schema.BadBand, schema.NeutralBand, schema.GoodBand} {
		t.Run(string(band), func(t *testing.T) {
			assert.Equal(t, ":)", GetColorBand(band, ":)"))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "report.html")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".dailyq_history.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{"short text untouched", "Sleep", 10, "Sleep"},
		{"exact width untouched", "Exercise", 8, "Exercise"},
		{"long text truncated", "Did I do my best to exercise?", 10, "Did I d..."},
		{"tiny width untouched", "Exercise", 3, "Exercise"},
		{"multibyte runes", "¿Hice lo mejor posible?", 8, "¿Hice..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestParseError(t *testing.T) {
	cause := errors.New("bad month")
	err := &ParseError{Line: 3, Row: "2024/13/01|q|1", Reason: "invalid date", Err: cause}

	assert.Equal(t, "line 3: invalid date: bad month", err.Error())
	assert.ErrorIs(t, err, cause)

	var pe *ParseError
	wrapped := errors.Join(errors.New("load failed"), err)
	require.ErrorAs(t, wrapped, &pe)
	assert.Equal(t, 3, pe.Line)

	bare := &ParseError{Line: 1, Reason: "expected 3 fields"}
	assert.Equal(t, "line 1: expected 3 fields", bare.Error())
}
