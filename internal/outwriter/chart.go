package outwriter

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/schema"
)

const (
	chartHeight     = 12
	minChartWidth   = 20
	sparklineHeight = 3
	trendDashWidth  = 0.5 // Length of one dash of the trend line, in x units
)

var (
	chartStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// TerminalChart is a ChartSurface that draws braille line charts.
type TerminalChart struct {
	Width  int
	Height int
	Styled bool
}

var _ contract.ChartSurface = &TerminalChart{} // Compile-time check

// NewTerminalChart creates a chart surface sized for the configured terminal.
func NewTerminalChart(cfg *contract.Config) *TerminalChart {
	return &TerminalChart{
		Width:  max(getTerminalWidth(cfg)-2, minChartWidth),
		Height: chartHeight,
		Styled: cfg.UseColors,
	}
}

// Render draws the daily series as a solid line and the fitted trend as a
// dashed line on the same axes.
func (c *TerminalChart) Render(result schema.TrendResult) (string, error) {
	n := len(result.Points)
	if n == 0 {
		return "", contract.ErrEmptyResult
	}
	maxX := float64(max(n-1, 1))

	chart := linechart.New(c.Width, c.Height, 0, maxX, result.YMin, result.YMax)
	chart.DrawXYAxisAndLabel()
	for i := range n {
		from := max(i-1, 0)
		chart.DrawBrailleLine(
			canvas.Float64Point{X: float64(from), Y: float64(result.Points[from].Score)},
			canvas.Float64Point{X: float64(i), Y: float64(result.Points[i].Score)},
		)
	}

	at := func(x float64) canvas.Float64Point {
		return canvas.Float64Point{X: x, Y: result.Intercept + result.Slope*x}
	}
	for x := 0.0; x < maxX; x += 2 * trendDashWidth {
		chart.DrawBrailleLine(at(x), at(min(x+trendDashWidth, maxX)))
	}

	view := chart.View()
	caption := fmt.Sprintf("trend %+.2f/day, R² %.2f, %d day(s)", result.Slope, result.RSquared, n)
	if c.Styled {
		view, caption = chartStyle.Render(view), dimStyle.Render(caption)
	}
	return view + "\n" + caption, nil
}

// renderSparkline draws the daily scores as a compact sparkline.
func renderSparkline(points []schema.TrendPoint, width int, styled bool) string {
	if len(points) == 0 {
		return fmt.Sprintf("%*s", width, "no data")
	}
	spark := sparkline.New(width, sparklineHeight)
	for _, p := range points {
		spark.Push(float64(p.Score))
	}
	spark.Draw()
	if styled {
		return chartStyle.Render(spark.View())
	}
	return spark.View()
}
