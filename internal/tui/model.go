package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/labourcost/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenEmployees Screen = iota
	ScreenCalculator
	ScreenRuns
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenEmployees:
		return "Employees"
	case ScreenCalculator:
		return "Calculator"
	case ScreenRuns:
		return "Payroll Runs"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	employees  tea.Model
	calculator tea.Model
	runs       tea.Model
	settings   tea.Model

	checkedFirstRun bool

	err error
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenEmployees,
		employees:     NewEmployeesModel(a),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkFirstRun(), m.employees.Init())
}

// checkFirstRun checks if any employees exist in the database
func (m *Model) checkFirstRun() tea.Cmd {
	return func() tea.Msg {
		employees, err := m.app.EmployeeRepo.List(context.Background())
		if err != nil {
			return firstRunCheckMsg{hasEmployees: true} // assume yes on error
		}
		return firstRunCheckMsg{hasEmployees: len(employees) > 0}
	}
}

// screen returns the model for s, creating it on first use
func (m *Model) screen(s Screen) (*tea.Model, func() tea.Model) {
	switch s {
	case ScreenEmployees:
		return &m.employees, func() tea.Model { return NewEmployeesModel(m.app) }
	case ScreenCalculator:
		return &m.calculator, func() tea.Model { return NewCalculatorModel(m.app) }
	case ScreenRuns:
		return &m.runs, func() tea.Model { return NewRunsModel(m.app) }
	case ScreenSettings:
		return &m.settings, func() tea.Model { return NewSettingsModel(m.app) }
	}
	return nil, nil
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(s Screen) tea.Cmd {
	slot, create := m.screen(s)
	if slot == nil {
		return nil
	}
	if *slot == nil {
		*slot = create()
		return (*slot).Init()
	}
	return func() tea.Msg { return RefreshDataMsg{} }
}

func (m *Model) switchTo(s Screen) tea.Cmd {
	m.currentScreen = s
	return m.initScreen(s)
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

func (m *Model) activeScreenCapturingInput() bool {
	slot, _ := m.screen(m.currentScreen)
	if slot == nil {
		return false
	}
	if ic, ok := (*slot).(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.err = nil

		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit
			case key.Matches(msg, DefaultKeyMap.Employees):
				return m, m.switchTo(ScreenEmployees)
			case key.Matches(msg, DefaultKeyMap.Calculator):
				return m, m.switchTo(ScreenCalculator)
			case key.Matches(msg, DefaultKeyMap.Runs):
				return m, m.switchTo(ScreenRuns)
			case key.Matches(msg, DefaultKeyMap.Settings):
				return m, m.switchTo(ScreenSettings)
			}
		}

	case firstRunCheckMsg:
		if !m.checkedFirstRun && !msg.hasEmployees {
			m.checkedFirstRun = true
			m.currentScreen = ScreenEmployees
			return m, func() tea.Msg { return OpenNewEmployeeFormMsg{} }
		}
		m.checkedFirstRun = true
		return m, nil

	case SelectEmployeeMsg:
		m.currentScreen = ScreenCalculator
		initCmd := m.initScreen(ScreenCalculator)
		var cmd tea.Cmd
		m.calculator, cmd = m.calculator.Update(msg)
		return m, tea.Batch(initCmd, cmd)

	case SwitchScreenMsg:
		return m, m.switchTo(msg.Screen)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	if slot, _ := m.screen(m.currentScreen); slot != nil && *slot != nil {
		*slot, cmd = (*slot).Update(msg)
	}
	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("labourcost - %s", m.currentScreen.String()))
	footer := footerStyle.Render("[E]mployees  [C]alculator  [R]uns  [,] Settings  [Q]uit")

	content := "Loading..."
	if slot, _ := m.screen(m.currentScreen); slot != nil && *slot != nil {
		content = (*slot).View()
	}

	errorDisplay := ""
	if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	innerWidth := m.width - 6 // border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
