package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-signal/internal/analysis"
)

// Application states.
const (
	StateSymbolInput = iota
	StateLoading
	StateReport
)

// Analyzer runs one analysis of a symbol over a window.
type Analyzer interface {
	RunWindow(ctx context.Context, symbol string, window analysis.Window) (*analysis.Report, error)
}

// Model is the main Bubble Tea model for the signal dashboard.
type Model struct {
	state       int
	analyzer    Analyzer
	symbolInput textinput.Model
	signalTable table.Model
	symbol      string
	window      analysis.Window
	report      *analysis.Report
	err         error
	width       int
	height      int
}

// NewModel creates a new Model with initial state.
func NewModel(analyzer Analyzer) Model {
	return Model{
		state:       StateSymbolInput,
		analyzer:    analyzer,
		symbolInput: NewSymbolInput(),
		signalTable: NewSignalTable(),
		window:      analysis.DefaultWindow,
	}
}

// WithSymbol starts the model on symbol instead of the input prompt.
func (m Model) WithSymbol(symbol string) Model {
	symbol = ParseSymbol(symbol)
	if symbol == "" {
		return m
	}

	m.symbol = symbol
	m.state = StateLoading
	m.symbolInput.Blur()

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.state == StateLoading {
		return m.runAnalysis()
	}

	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// Only quit on 'q' if not in text input mode
			if m.state != StateSymbolInput {
				return m, tea.Quit
			}
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.signalTable.SetWidth(msg.Width)
		m.signalTable.SetHeight(max(msg.Height-20, 5))
		return m, nil

	case ReportMsg:
		if msg.Report.Symbol != m.symbol {
			return m, nil
		}

		m.report = msg.Report
		m.err = nil
		m.state = StateReport
		m.signalTable = UpdateTableRows(m.signalTable, msg.Report.Series)
		return m, nil

	case ReportErrorMsg:
		if msg.Symbol != m.symbol {
			return m, nil
		}

		m.err = msg.Err
		m.state = StateReport
		return m, nil
	}

	// Delegate to state-specific update
	switch m.state {
	case StateSymbolInput:
		return m.updateSymbolInput(msg)
	case StateReport:
		return m.updateReport(msg)
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == StateSymbolInput {
		return m, nil
	}

	m.symbol = ""
	m.report = nil
	m.err = nil
	m.symbolInput.Reset()
	m.symbolInput.Focus()
	m.state = StateSymbolInput

	return m, textinput.Blink
}

func (m Model) updateSymbolInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if symbol := ParseSymbol(m.symbolInput.Value()); symbol != "" {
			m.symbol = symbol
			m.state = StateLoading
			m.symbolInput.Blur()
			return m, m.runAnalysis()
		}
	}

	var cmd tea.Cmd
	m.symbolInput, cmd = m.symbolInput.Update(msg)
	return m, cmd
}

func (m Model) updateReport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "r":
			m.state = StateLoading
			return m, m.runAnalysis()
		case "w":
			m.window = m.window.Next()
			m.state = StateLoading
			return m, m.runAnalysis()
		}
	}

	var cmd tea.Cmd
	m.signalTable, cmd = m.signalTable.Update(msg)
	return m, cmd
}

// runAnalysis returns a command that fetches and scores the current symbol.
func (m Model) runAnalysis() tea.Cmd {
	analyzer, symbol, window := m.analyzer, m.symbol, m.window

	return func() tea.Msg {
		if analyzer == nil {
			return ReportErrorMsg{Symbol: symbol, Err: fmt.Errorf("no analyzer configured")}
		}

		report, err := analyzer.RunWindow(context.Background(), symbol, window)
		if err != nil {
			return ReportErrorMsg{Symbol: symbol, Err: err}
		}

		return ReportMsg{Report: report}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateSymbolInput:
		s.WriteString(TitleStyle.Render("Argo Signal - Enter Symbol"))
		s.WriteString("\n\n")
		s.WriteString("Enter a ticker symbol (e.g., AAPL):\n\n")
		s.WriteString(m.symbolInput.View())
		s.WriteString("\n\n")
		s.WriteString(HelpStyle.Render("Press Enter to analyze, ctrl+c to quit"))

	case StateLoading:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("Analyzing %s (%s)...", m.symbol, m.window)))
		s.WriteString("\n\n")
		s.WriteString(HelpStyle.Render("q: quit | Esc: back"))

	case StateReport:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("%s - %s window", m.symbol, m.window)))
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		} else if m.report != nil {
			s.WriteString(RenderSummary(m.report.Summary))
			s.WriteString("\n\n")
			s.WriteString(m.signalTable.View())
			s.WriteString("\n")
		}

		s.WriteString(HelpStyle.Render("r: refresh | w: next window | Esc: back | q: quit"))
	}

	return s.String()
}
