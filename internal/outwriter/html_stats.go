package outwriter

import (
	"fmt"
	"html"
	"strings"

	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/schema"
)

// RenderStatistics renders the weekday and question averages as two HTML tables
// of bars.
func RenderStatistics(stats schema.Statistics, cfg *contract.Config) string {
	width := len(formatNumber(stats.ScoreMax))

	var b strings.Builder
	writeStatsTable(&b, "weekday", stats.Months, stats.ByWeekday, width, cfg.Multiplier)
	writeStatsTable(&b, "question", stats.Months, stats.ByQuestion, width, cfg.Multiplier)
	return b.String()
}

func writeStatsTable(b *strings.Builder, by string, months int, scores []schema.LabeledScore, width int, multiplier float64) {
	_, _ = fmt.Fprintf(b, `<table><tr><th colspan="2" style="text-align: left">%s</th></tr>`, statsHeading(by, months))
	for _, s := range scores {
		_, _ = fmt.Fprintf(b, `<tr><td>%s</td><td style="text-align: left">|%-*so</td></tr>`,
			html.EscapeString(s.Label), width, scoreBar(s.Score, multiplier))
	}
	b.WriteString("</table>")
}

func statsHeading(by string, months int) string {
	return fmt.Sprintf("Score by %s - last %d month(s)", by, months)
}

// scoreBar draws int(score * multiplier) dashes.
func scoreBar(score, multiplier float64) string {
	return strings.Repeat("-", max(int(score*multiplier), 0))
}
