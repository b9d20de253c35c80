package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/andy/labourcost/internal/app"
	"github.com/andy/labourcost/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// new employee form field indices
const (
	empFieldForename = iota
	empFieldSurname
	empFieldStart
	empFieldFrequency
	empFieldRate
	empFieldScheme
	empFieldDeductions
)

// EmployeesModel lists employees and creates new ones
type EmployeesModel struct {
	app       *app.App
	employees []*domain.Employee
	cursor    int
	loading   bool
	err       error
	statusMsg string

	form        *form // nil unless the new employee form is open
	autoNewForm bool  // open the form once data loads
}

type employeesDataMsg struct {
	employees []*domain.Employee
	err       error
}

type employeeSavedMsg struct {
	name string
	err  error
}

// NewEmployeesModel creates a new employees screen model
func NewEmployeesModel(a *app.App) tea.Model {
	return &EmployeesModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *EmployeesModel) IsCapturingInput() bool {
	return m.form != nil
}

func (m *EmployeesModel) Init() tea.Cmd {
	return m.loadEmployees()
}

func (m *EmployeesModel) loadEmployees() tea.Cmd {
	return func() tea.Msg {
		employees, err := m.app.EmployeeRepo.List(context.Background())
		return employeesDataMsg{employees: employees, err: err}
	}
}

func (m *EmployeesModel) openForm() tea.Cmd {
	m.err = nil
	m.form = newForm([]formField{
		{label: "Forename:", placeholder: "Eric"},
		{label: "Surname:", placeholder: "Wimp"},
		{label: "Start date:", placeholder: domain.DateLayout, value: time.Now().Format(domain.DateLayout), width: 12},
		{label: "Pay frequency (annual, weekly, hourly):", placeholder: "annual", width: 10},
		{label: "Rate of pay:", placeholder: "26000", width: 12},
		{label: "Sick pay (ssp, cosp):", placeholder: "ssp", value: string(domain.SickPaySSP), width: 6},
		{label: "Deductions (pension, bike_scheme):", placeholder: "none"},
	})
	return m.form.focusCmd()
}

// buildEmployee parses the form into a new employee
func (m *EmployeesModel) buildEmployee() (*domain.Employee, error) {
	f := m.form

	start, err := time.Parse(domain.DateLayout, f.value(empFieldStart))
	if err != nil {
		return nil, fmt.Errorf("start date must be YYYY-MM-DD")
	}
	freq, err := domain.ParsePayFrequency(f.value(empFieldFrequency))
	if err != nil {
		return nil, err
	}
	rate, err := decimal.NewFromString(f.value(empFieldRate))
	if err != nil {
		return nil, fmt.Errorf("invalid rate: %s", f.value(empFieldRate))
	}
	scheme, err := domain.ParseSickPayScheme(f.value(empFieldScheme))
	if err != nil {
		return nil, err
	}
	deduction, err := domain.ParseDeduction(f.value(empFieldDeductions))
	if err != nil {
		return nil, err
	}

	employee, err := domain.NewEmployee(f.value(empFieldForename), f.value(empFieldSurname), start, freq, rate, scheme)
	if err != nil {
		return nil, err
	}
	employee.AddDeduction(deduction)
	return employee, nil
}

func (m *EmployeesModel) saveEmployee() tea.Cmd {
	employee, err := m.buildEmployee()
	if err != nil {
		return func() tea.Msg { return employeeSavedMsg{err: err} }
	}
	return func() tea.Msg {
		if err := m.app.EmployeeRepo.Create(context.Background(), employee); err != nil {
			return employeeSavedMsg{err: err}
		}
		return employeeSavedMsg{name: employee.FullName()}
	}
}

func (m *EmployeesModel) addDeduction(d domain.Deduction) tea.Cmd {
	employee := m.employees[m.cursor]
	return func() tea.Msg {
		updated, err := m.app.PayrollService.AddDeduction(context.Background(), employee.ID, d)
		if err != nil {
			return employeeSavedMsg{err: err}
		}
		return employeeSavedMsg{name: fmt.Sprintf("%s (%s)", updated.FullName(), updated.Deduction())}
	}
}

func (m *EmployeesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(OpenNewEmployeeFormMsg); ok {
		if m.loading {
			m.autoNewForm = true
			return m, nil
		}
		return m, m.openForm()
	}

	switch msg := msg.(type) {
	case employeeSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.form = nil
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadEmployees()
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadEmployees()

	case employeesDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.employees = msg.employees
			if m.cursor >= len(m.employees) {
				m.cursor = max(0, len(m.employees)-1)
			}
		}
		if m.autoNewForm {
			m.autoNewForm = false
			return m, m.openForm()
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil
		hasSelection := len(m.employees) > 0 && m.cursor < len(m.employees)

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.employees)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			return m, m.openForm()
		case key.Matches(msg, DefaultKeyMap.Select) && hasSelection:
			employee := m.employees[m.cursor]
			return m, func() tea.Msg { return SelectEmployeeMsg{Employee: employee} }
		case key.Matches(msg, DefaultKeyMap.Pension) && hasSelection:
			return m, m.addDeduction(domain.DeductionPension)
		case key.Matches(msg, DefaultKeyMap.BikeScheme) && hasSelection:
			return m, m.addDeduction(domain.DeductionBikeScheme)
		}
	}

	return m, nil
}

func (m *EmployeesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.form = nil
			m.err = nil
			return m, nil
		case "tab", "down":
			return m, m.form.move(1)
		case "shift+tab", "up":
			return m, m.form.move(-1)
		case "enter":
			if m.form.onLast() {
				return m, m.saveEmployee()
			}
			return m, m.form.move(1)
		case "ctrl+s":
			return m, m.saveEmployee()
		}
	}

	return m, m.form.update(msg)
}

func (m *EmployeesModel) View() string {
	if m.form != nil {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *EmployeesModel) viewForm() string {
	var s string
	if len(m.employees) == 0 {
		s += titleStyle.Render("Welcome to labourcost!") + "\n"
		s += subtitleStyle.Render("  Add your first employee to get started.") + "\n\n"
	} else {
		s += titleStyle.Render("New Employee") + "\n\n"
	}

	s += m.form.view()

	if m.err != nil {
		s += errorLine(m.err)
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")
	return s
}

func (m *EmployeesModel) viewList() string {
	if m.loading {
		return "Loading employees..."
	}

	var s string
	s += titleStyle.Render("Employees") + "\n\n"

	if m.statusMsg != "" {
		s += statusLine(m.statusMsg)
	}
	if m.err != nil {
		s += errorLine(m.err)
	}

	if len(m.employees) == 0 {
		s += subtitleStyle.Render("  No employees yet. Press 'n' to add one.") + "\n"
		return s
	}

	for i, e := range m.employees {
		s += m.renderEmployee(i, e) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: calculate  n: new  p: add pension  b: add bike scheme")
	return s
}

func (m *EmployeesModel) renderEmployee(index int, e *domain.Employee) string {
	selected := index == m.cursor

	indicator := "  "
	if selected {
		indicator = "> "
	}

	line1 := fmt.Sprintf("%s%s", indicator, truncateStr(e.FullName(), 40))
	line2 := fmt.Sprintf("    %s %s  |  weekly %s  |  %s  |  since %s",
		formatMoney(e.RateOfPay()),
		e.PayFrequency(),
		formatMoney(e.BasicPayRate()),
		e.SickPayScheme(),
		e.EmploymentStartDate().Format(domain.DateLayout),
	)
	if !e.Deduction().IsNone() {
		line2 += "  |  " + e.Deduction().String()
	}

	nameStyle := lipgloss.NewStyle()
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}
	return nameStyle.Render(line1) + "\n" + subtitleStyle.Render(line2)
}
