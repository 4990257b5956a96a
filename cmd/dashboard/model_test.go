package main

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	mu      sync.Mutex
	windows []analysis.Window
	err     error
}

func (f *fakeAnalyzer) RunWindow(_ context.Context, symbol string, window analysis.Window) (*analysis.Report, error) {
	f.mu.Lock()
	f.windows = append(f.windows, window)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	series, err := analysis.NewDefaultAnalyzer().Analyze(symbol, mocks.GenerateYear())
	if err != nil {
		return nil, err
	}

	summary, err := analysis.Summarize(series, window)
	if err != nil {
		return nil, err
	}

	return &analysis.Report{Symbol: symbol, Summary: summary, Series: series}, nil
}

func TestNewModel(t *testing.T) {
	m := NewModel(&fakeAnalyzer{})

	assert.Equal(t, StateSymbolInput, m.state)
	assert.Equal(t, analysis.DefaultWindow, m.window)
	assert.Empty(t, m.symbol)
	assert.Nil(t, m.report)
}

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "AAPL", expected: "AAPL"},
		{name: "lowercase", input: "msft", expected: "MSFT"},
		{name: "with spaces", input: "  tsla ", expected: "TSLA"},
		{name: "empty string", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSymbol(tt.input))
		})
	}
}

func TestWithSymbol(t *testing.T) {
	m := NewModel(&fakeAnalyzer{}).WithSymbol(" aapl")
	assert.Equal(t, StateLoading, m.state)
	assert.Equal(t, "AAPL", m.symbol)

	m = NewModel(&fakeAnalyzer{}).WithSymbol("")
	assert.Equal(t, StateSymbolInput, m.state)
}

func TestReportMessages(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	m := NewModel(analyzer).WithSymbol("AAPL")

	msg := m.runAnalysis()()
	reportMsg, ok := msg.(ReportMsg)
	require.True(t, ok)

	updated, _ := m.Update(reportMsg)
	m = updated.(Model)
	assert.Equal(t, StateReport, m.state)
	assert.NotNil(t, m.report)
	assert.Len(t, m.signalTable.Rows(), TableRows)

	// newest row first
	last := reportMsg.Report.Series.Len() - 1
	assert.Equal(t, reportMsg.Report.Series.Bars[last].Date.Format(types.DateLayout), m.signalTable.Rows()[0][0])

	newest := m.signalTable.Rows()[0]
	stats := analysis.RowStatsAt(&reportMsg.Report.Series.IndicatorSeries, last)
	assert.Len(t, newest, 10)
	assert.Equal(t, formatCell(stats.ChangePercent), newest[2])
	assert.Equal(t, formatCell(stats.VolumeRatio), newest[3])
	assert.Equal(t, formatCell(stats.PriceVsSMA20), newest[4])

	summary := RenderSummary(reportMsg.Report.Summary)
	assert.Contains(t, summary, "Average price")
	assert.Contains(t, summary, "RSI average")
	assert.Contains(t, summary, fmt.Sprintf("Last %d", reportMsg.Report.Summary.Period.Rows))

	t.Run("stale report for another symbol is ignored", func(t *testing.T) {
		other := &analysis.Report{Symbol: "MSFT"}
		updated, _ := m.Update(ReportMsg{Report: other})
		assert.Same(t, m.report, updated.(Model).report)
	})

	t.Run("error message is shown", func(t *testing.T) {
		updated, _ := m.Update(ReportErrorMsg{Symbol: "AAPL", Err: fmt.Errorf("boom")})
		view := updated.(Model).View()
		assert.Contains(t, view, "Error: boom")
	})
}

func TestWindowCycling(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	m := NewModel(analyzer).WithSymbol("AAPL")
	m.state = StateReport

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, analysis.Window1Y, m.window)
	assert.Equal(t, StateLoading, m.state)

	cmd()
	assert.Equal(t, []analysis.Window{analysis.Window1Y}, analyzer.windows)
}

func TestEscReturnsToInput(t *testing.T) {
	m := NewModel(&fakeAnalyzer{}).WithSymbol("AAPL")
	m.state = StateReport
	m.err = fmt.Errorf("boom")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updatedModel := newModel.(Model)

	assert.Equal(t, StateSymbolInput, updatedModel.state)
	assert.Empty(t, updatedModel.symbol)
	assert.Nil(t, updatedModel.err)
	assert.Nil(t, updatedModel.report)
}

func TestQuitIgnoredWhileTyping(t *testing.T) {
	m := NewModel(&fakeAnalyzer{})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	typed := updated.(Model)

	assert.Equal(t, StateSymbolInput, typed.state)
	assert.Equal(t, "q", typed.symbolInput.Value())
}

func TestSymbolInputFlow(t *testing.T) {
	m := NewModel(&fakeAnalyzer{})
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 60))

	// Wait for symbol input view
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Enter Symbol"))
	}, teatest.WithDuration(2*time.Second))

	tm.Type("aapl")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	// Wait for the report view
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("AAPL - 6M window")) &&
			bytes.Contains(bts, []byte("Confidence"))
	}, teatest.WithDuration(3*time.Second))

	err := tm.Quit()
	assert.NoError(t, err)
}

func TestAnalysisErrorView(t *testing.T) {
	m := NewModel(&fakeAnalyzer{err: fmt.Errorf("provider unavailable")}).WithSymbol("AAPL")
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("provider unavailable"))
	}, teatest.WithDuration(2*time.Second))

	err := tm.Quit()
	assert.NoError(t, err)
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+2.00 (+1.50%) ▲", FormatChange(2, 1.5))
	assert.Equal(t, "-1.00 (-0.50%) ▼", FormatChange(-1, -0.5))
	assert.Equal(t, "+0.00 (+0.00%)", FormatChange(0, 0))
}
