package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/leaps/internal/analysis"
)

// Application states.
const (
	StateSymbolSelect = iota
	StateLoading
	StateDataDisplay
)

// Loader analyzes one symbol for the viewer.
type Loader func(symbol string) (*analysis.Result, error)

// Model is the Bubble Tea model of the bar and signal viewer.
type Model struct {
	state      int
	symbolList list.Model
	dataTable  table.Model
	loader     Loader
	window     int
	symbol     string
	result     *analysis.Result
	err        error
	width      int
	height     int
}

// NewModel creates a viewer listing symbols. Selecting one runs loader.
func NewModel(symbols []string, window int, loader Loader) Model {
	return Model{
		state:      StateSymbolSelect,
		symbolList: NewSymbolList(symbols),
		dataTable:  NewBarTable(),
		loader:     loader,
		window:     window,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.symbolList.SetSize(msg.Width, msg.Height-4)
		m.dataTable.SetWidth(msg.Width)
		m.dataTable.SetHeight(max(msg.Height-8, 3))

		return m, nil

	case AnalysisMsg:
		m.result = msg.Result
		m.err = nil
		m.dataTable = UpdateBarRows(m.dataTable, msg.Result)
		m.state = StateDataDisplay

		return m, nil

	case AnalysisErrorMsg:
		m.err = msg.Err
		m.state = StateSymbolSelect

		return m, nil
	}

	switch m.state {
	case StateSymbolSelect:
		return m.updateSymbolSelect(msg)
	case StateDataDisplay:
		return m.updateDataDisplay(msg)
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == StateDataDisplay {
		m.state = StateSymbolSelect
		m.result = nil
		m.symbol = ""
	}

	return m, nil
}

func (m Model) updateSymbolSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := m.symbolList.SelectedItem().(listItem); ok {
			m.symbol = item.name
			m.state = StateLoading

			return m, m.load(item.name)
		}
	}

	var cmd tea.Cmd
	m.symbolList, cmd = m.symbolList.Update(msg)

	return m, cmd
}

func (m Model) updateDataDisplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.dataTable, cmd = m.dataTable.Update(msg)

	return m, cmd
}

// load returns a command that analyzes symbol off the update loop.
func (m Model) load(symbol string) tea.Cmd {
	loader := m.loader

	return func() tea.Msg {
		if loader == nil {
			return AnalysisErrorMsg{Err: fmt.Errorf("no loader configured")}
		}

		result, err := loader(symbol)
		if err != nil {
			return AnalysisErrorMsg{Err: err}
		}

		return AnalysisMsg{Result: result}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateSymbolSelect:
		s.WriteString(TitleStyle.Render("Leaps - Breakout Viewer"))
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		s.WriteString(m.symbolList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to analyze, q to quit"))

	case StateLoading:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("Analyzing %s...", m.symbol)))
		s.WriteString("\n")

	case StateDataDisplay:
		s.WriteString(TitleStyle.Render(ResultTitle(m.result, m.window)))
		s.WriteString("\n\n")
		s.WriteString(m.dataTable.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("↑/↓: scroll | Esc: back | q: quit"))
	}

	return s.String()
}
