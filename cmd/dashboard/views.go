package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// TableRows is how many of the newest rows the table shows.
const TableRows = 20

// NewSymbolInput creates a new text input for symbol entry.
func NewSymbolInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "AAPL"
	ti.Focus()
	ti.CharLimit = 16
	ti.Width = 30
	ti.Prompt = "> "

	return ti
}

// ParseSymbol normalizes the typed ticker.
func ParseSymbol(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

// NewSignalTable creates a new table for the newest scored rows.
func NewSignalTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Close", Width: 10},
		{Title: "Chg %", Width: 8},
		{Title: "Vol x", Width: 7},
		{Title: "vs SMA 20", Width: 10},
		{Title: "SMA 20", Width: 10},
		{Title: "SMA 50", Width: 10},
		{Title: "RSI", Width: 8},
		{Title: "MACD", Width: 9},
		{Title: "Signal", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

func formatCell(v optional.Option[float64]) string {
	if v.IsNone() {
		return "-"
	}

	return fmt.Sprintf("%.2f", v.Unwrap())
}

// UpdateTableRows fills the table with the newest rows of series, newest first.
func UpdateTableRows(t table.Model, series *types.ScoredSeries) table.Model {
	indexes := series.Tail(TableRows)
	rows := make([]table.Row, 0, len(indexes))

	for k := len(indexes) - 1; k >= 0; k-- {
		i := indexes[k]
		stats := analysis.RowStatsAt(&series.IndicatorSeries, i)

		rows = append(rows, table.Row{
			series.Bars[i].Date.Format(types.DateLayout),
			fmt.Sprintf("%.2f", series.Bars[i].Close),
			formatCell(stats.ChangePercent),
			formatCell(stats.VolumeRatio),
			formatCell(stats.PriceVsSMA20),
			formatCell(series.Value(types.ColumnSMA20, i)),
			formatCell(series.Value(types.ColumnSMA50, i)),
			formatCell(series.Value(types.ColumnRSI, i)),
			formatCell(series.Value(types.ColumnMACD, i)),
			string(series.Signals[i]),
		})
	}

	t.SetRows(rows)

	return t
}

func card(label, value string) string {
	return CardStyle.Render(LabelStyle.Render(label) + "\n" + value)
}

// RenderSummary lays the headline figures out as cards.
func RenderSummary(s analysis.Summary) string {
	rsi := "-"
	if s.RSI != nil {
		rsi = fmt.Sprintf("%.2f", *s.RSI)
	}

	price := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Close", fmt.Sprintf("%.2f", s.CurrentClose)),
		card("Change", FormatChange(s.Change, s.ChangePercent)),
		card("Signal", SignalStyle(s.LastSignal).Render(string(s.LastSignal))+" "+string(s.Strength)),
	)

	risk := lipgloss.JoinHorizontal(lipgloss.Top,
		card("RSI", rsi),
		card("Volume ratio", fmt.Sprintf("%.2fx", s.VolumeRatio)),
		card("Confidence", fmt.Sprintf("%s %.2f", s.Confidence.Level, s.Confidence.Score)),
	)

	perf := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Volatility", fmt.Sprintf("%.2f%%", s.Volatility)),
		card("Sharpe", fmt.Sprintf("%.2f", s.SharpeRatio)),
		card("Max drawdown", fmt.Sprintf("%.2f%%", s.MaxDrawdown)),
	)

	p := s.Period
	rsiAverage := "-"
	if p.RSIAverage != nil {
		rsiAverage = fmt.Sprintf("%.2f", *p.RSIAverage)
	}

	period := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Average price", fmt.Sprintf("%.2f", p.AveragePrice)),
		card("High / low", fmt.Sprintf("%.2f / %.2f", p.HighestPrice, p.LowestPrice)),
		card("Volume", fmt.Sprintf("%.0f (avg %.0f)", p.TotalVolume, p.AverageVolume)),
		card("RSI average", rsiAverage),
	)

	counts := signalCounts("Window", s.SignalCounts)
	recent := signalCounts(fmt.Sprintf("Last %d", p.Rows), p.SignalCounts)

	return lipgloss.JoinVertical(lipgloss.Left, price, risk, perf, period, "", counts, recent)
}

func signalCounts(label string, counts map[types.SignalType]int) string {
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		LabelStyle.Render(fmt.Sprintf("%-8s", label)),
		buyStyle.Render("BUY"), counts[types.SignalTypeBuy],
		sellStyle.Render("SELL"), counts[types.SignalTypeSell],
		holdStyle.Render("HOLD"), counts[types.SignalTypeHold],
	)
}
