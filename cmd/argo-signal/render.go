package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Faint(true)
)

func cell(v optional.Option[float64]) string {
	if v.IsNone() {
		return "-"
	}

	return fmt.Sprintf("%.2f", v.Unwrap())
}

// renderRows renders the newest n rows of series as a table.
func renderRows(series *types.ScoredSeries, n int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Date", "Close", "Chg %", "Vol x", "vs SMA 20", "SMA 20", "SMA 50", "EMA 20", "RSI", "MACD", "Signal", "Buy", "Sell")

	for _, i := range series.Tail(n) {
		eval := series.Evaluations[i]
		stats := analysis.RowStatsAt(&series.IndicatorSeries, i)

		t.Row(
			series.Bars[i].Date.Format(types.DateLayout),
			fmt.Sprintf("%.2f", series.Bars[i].Close),
			cell(stats.ChangePercent),
			cell(stats.VolumeRatio),
			cell(stats.PriceVsSMA20),
			cell(series.Value(types.ColumnSMA20, i)),
			cell(series.Value(types.ColumnSMA50, i)),
			cell(series.Value(types.ColumnEMA20, i)),
			cell(series.Value(types.ColumnRSI, i)),
			cell(series.Value(types.ColumnMACD, i)),
			string(series.Signals[i]),
			fmt.Sprint(eval.BuyScore),
			fmt.Sprint(eval.SellScore),
		)
	}

	return t.String()
}

func line(w *strings.Builder, label, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", label)), fmt.Sprintf(format, args...))
}

// renderSummary renders the headline figures of a summary.
func renderSummary(s analysis.Summary) string {
	var w strings.Builder

	w.WriteString(headingStyle.Render(fmt.Sprintf("%s  %s window  %s to %s (%d rows)",
		s.Symbol, s.Window, s.From.Format(types.DateLayout), s.To.Format(types.DateLayout), s.Rows)))
	w.WriteString("\n\n")

	line(&w, "Close", "%.2f (%+.2f, %+.2f%%)", s.CurrentClose, s.Change, s.ChangePercent)
	line(&w, "Volume", "%.0f (avg %.0f, %.2fx)", s.CurrentVolume, s.AverageVolume, s.VolumeRatio)

	if s.RSI != nil {
		line(&w, "RSI", "%.2f", *s.RSI)
	} else {
		line(&w, "RSI", "-")
	}

	line(&w, "Signal", "%s (%s)", s.LastSignal, s.Strength)
	line(&w, "Confidence", "%s %.2f [%s]", s.Confidence.Level, s.Confidence.Score, strings.Join(s.Confidence.Factors, ", "))
	line(&w, "Volatility", "%.2f%%", s.Volatility)
	line(&w, "Sharpe ratio", "%.2f", s.SharpeRatio)
	line(&w, "Max drawdown", "%.2f%%", s.MaxDrawdown)
	line(&w, "Period return", "%.2f%%", s.PeriodReturn)
	line(&w, "Signals", "BUY %d  SELL %d  HOLD %d",
		s.SignalCounts[types.SignalTypeBuy], s.SignalCounts[types.SignalTypeSell], s.SignalCounts[types.SignalTypeHold])

	p := s.Period
	w.WriteString("\n")
	w.WriteString(headingStyle.Render(fmt.Sprintf("Last %d rows", p.Rows)))
	w.WriteString("\n")
	line(&w, "Average price", "%.2f", p.AveragePrice)
	line(&w, "Range", "%.2f to %.2f", p.LowestPrice, p.HighestPrice)
	line(&w, "Total volume", "%.0f (avg %.0f)", p.TotalVolume, p.AverageVolume)

	if p.RSIAverage != nil {
		line(&w, "RSI average", "%.2f", *p.RSIAverage)
	} else {
		line(&w, "RSI average", "-")
	}

	line(&w, "Signals", "BUY %d  SELL %d  HOLD %d",
		p.SignalCounts[types.SignalTypeBuy], p.SignalCounts[types.SignalTypeSell], p.SignalCounts[types.SignalTypeHold])

	if len(s.RecentSignals) > 0 {
		w.WriteString("\n")
		w.WriteString(headingStyle.Render("Recent signals"))
		w.WriteString("\n")

		for _, event := range s.RecentSignals {
			fmt.Fprintf(&w, "  %s  %-4s  %.2f  %+.2f%%\n",
				event.Date.Format(types.DateLayout), event.Signal, event.Close, event.Performance)
		}
	}

	return w.String()
}

// writeReport prints report as text or JSON.
func writeReport(w io.Writer, report *analysis.Report, format string, rows int) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	case "", "text":
		if _, err := fmt.Fprintln(w, renderSummary(report.Summary)); err != nil {
			return err
		}

		if rows > 0 {
			_, err := fmt.Fprintln(w, renderRows(report.Series, rows))
			return err
		}

		return nil
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", format)
	}
}
