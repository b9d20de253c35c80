package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/andy/labourcost/internal/app"
	"github.com/andy/labourcost/internal/domain"
	"github.com/andy/labourcost/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// calculator form field indices
const (
	calcFieldWeek = iota
	calcFieldHours
	calcFieldMinutes
	calcFieldSickDays
)

// CalculatorModel works out one employee's week as the inputs are typed
type CalculatorModel struct {
	app       *app.App
	employee  *domain.Employee
	form      *form
	cost      *domain.LabourCost
	err       error
	statusMsg string
}

type timesheetRecordedMsg struct {
	timesheet *domain.Timesheet
	err       error
}

// NewCalculatorModel creates a new calculator screen model
func NewCalculatorModel(a *app.App) tea.Model {
	return &CalculatorModel{app: a}
}

// IsCapturingInput returns true while an employee is loaded
func (m *CalculatorModel) IsCapturingInput() bool {
	return m.employee != nil
}

func (m *CalculatorModel) Init() tea.Cmd {
	return nil
}

func (m *CalculatorModel) load(employee *domain.Employee, week time.Time) tea.Cmd {
	m.employee = employee
	m.statusMsg = ""
	m.form = newForm([]formField{
		{label: "Week (any date, YYYY-MM-DD):", value: domain.StartOfWeek(week).Format(domain.DateLayout), width: 12},
		{label: "Hours:", value: "0", width: 6},
		{label: "Minutes:", value: "0", width: 6},
		{label: "Sick days:", value: "0", width: 6},
	})
	m.recalculate()
	return m.form.focusCmd()
}

// input reads the form into a week input for the loaded employee
func (m *CalculatorModel) input() (service.WeekInput, error) {
	week, err := time.Parse(domain.DateLayout, m.form.value(calcFieldWeek))
	if err != nil {
		return service.WeekInput{}, fmt.Errorf("week must be YYYY-MM-DD")
	}

	ints := make([]int, 0, 3)
	for _, field := range []int{calcFieldHours, calcFieldMinutes, calcFieldSickDays} {
		v := m.form.value(field)
		if v == "" {
			ints = append(ints, 0)
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return service.WeekInput{}, fmt.Errorf("%s is not a whole number", v)
		}
		ints = append(ints, n)
	}

	return service.WeekInput{
		EmployeeID: m.employee.ID,
		WeekStart:  domain.StartOfWeek(week),
		Hours:      ints[0],
		Minutes:    ints[1],
		SickDays:   ints[2],
	}, nil
}

func (m *CalculatorModel) recalculate() {
	m.cost = nil
	input, err := m.input()
	if err != nil {
		m.err = err
		return
	}
	m.cost, m.err = m.employee.CalculateLabourCost(input.WeekStart, input.Hours, input.Minutes, input.SickDays)
}

func (m *CalculatorModel) record() tea.Cmd {
	input, err := m.input()
	if err != nil {
		m.err = err
		return nil
	}
	return func() tea.Msg {
		timesheet, err := m.app.PayrollService.Record(context.Background(), input)
		return timesheetRecordedMsg{timesheet: timesheet, err: err}
	}
}

func (m *CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SelectEmployeeMsg:
		return m, m.load(msg.Employee, time.Now())

	case timesheetRecordedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Recorded week %s: %s",
			msg.timesheet.WeekStart.Format(domain.DateLayout), formatMoney(msg.timesheet.LabourCost))
		return m, nil

	case tea.KeyMsg:
		if m.employee == nil {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.employee = nil
			return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenEmployees} }
		case "tab", "down", "enter":
			return m, m.form.move(1)
		case "shift+tab", "up":
			return m, m.form.move(-1)
		case "ctrl+s":
			return m, m.record()
		}

		m.statusMsg = ""
		cmd := m.form.update(msg)
		m.recalculate()
		return m, cmd
	}

	if m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *CalculatorModel) View() string {
	if m.employee == nil {
		return subtitleStyle.Render("  Select an employee on the Employees screen (e) and press enter.")
	}

	e := m.employee
	var s string
	s += titleStyle.Render(e.FullName()) + "\n"
	s += subtitleStyle.Render(fmt.Sprintf("  %s %s, %s sick pay, started %s, deductions: %s",
		formatMoney(e.RateOfPay()), e.PayFrequency(), e.SickPayScheme(),
		e.EmploymentStartDate().Format(domain.DateLayout), e.Deduction())) + "\n\n"

	left := m.form.view()
	right := m.viewBreakdown()
	s += lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right) + "\n"

	if m.statusMsg != "" {
		s += statusLine(m.statusMsg)
	}
	if m.err != nil {
		s += errorLine(m.err)
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: record week  esc: back")
	return s
}

func (m *CalculatorModel) viewBreakdown() string {
	if m.cost == nil {
		return boxStyle.Render(subtitleStyle.Render("No result"))
	}
	c := m.cost

	rows := []struct {
		label string
		value string
	}{
		{"Week commencing", c.WeekStart.Format(domain.DateLayout)},
		{"Weekly pay", formatMoney(c.WeeklyPay)},
		{"Sick pay", formatMoney(c.SickPay)},
		{"Deductions", formatMoney(c.Deductions.Neg())},
		{"Total weekly pay", formatMoney(c.TotalWeeklyPay)},
		{"Employer NI", formatMoney(c.NationalInsurance)},
		{"Holiday accrual", formatMoney(c.HolidayAccrual)},
	}

	var s string
	for _, r := range rows {
		s += labelStyle.Render(r.label) + r.value + "\n"
	}
	s += "\n" + labelStyle.Render("Labour cost") + totalStyle.Render(formatMoney(c.Total))
	return boxStyle.Render(s)
}
