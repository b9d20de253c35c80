package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andy/labourcost/internal/app"
	"github.com/andy/labourcost/internal/domain"
	"github.com/andy/labourcost/internal/report"
	"github.com/andy/labourcost/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunsModel lists payroll runs and shows the timesheets of one
type RunsModel struct {
	app       *app.App
	runs      []*domain.PayrollRun
	cursor    int
	detail    *service.LabourSummary // nil while showing the list
	loading   bool
	err       error
	statusMsg string
}

type runsDataMsg struct {
	runs []*domain.PayrollRun
	err  error
}

type runDetailMsg struct {
	summary *service.LabourSummary
	err     error
}

type runExportedMsg struct {
	path string
	err  error
}

// NewRunsModel creates a new payroll runs screen model
func NewRunsModel(a *app.App) tea.Model {
	return &RunsModel{
		app:     a,
		loading: true,
	}
}

func (m *RunsModel) Init() tea.Cmd {
	return m.loadRuns()
}

func (m *RunsModel) loadRuns() tea.Cmd {
	return func() tea.Msg {
		runs, err := m.app.ReportService.ListRuns(context.Background())
		return runsDataMsg{runs: runs, err: err}
	}
}

func (m *RunsModel) loadDetail(runID string) tea.Cmd {
	return func() tea.Msg {
		summary, err := m.app.ReportService.RunSummary(context.Background(), runID)
		return runDetailMsg{summary: summary, err: err}
	}
}

// export writes the run in the configured default format to the report directory
func (m *RunsModel) export(runID string) tea.Cmd {
	return func() tea.Msg {
		summary, err := m.app.ReportService.RunSummary(context.Background(), runID)
		if err != nil {
			return runExportedMsg{err: err}
		}

		cfg := m.app.Config.Report
		path := filepath.Join(cfg.OutputDir, fmt.Sprintf("run-%s.%s", runID, cfg.DefaultFormat))

		if cfg.DefaultFormat == "pdf" {
			return runExportedMsg{path: path, err: report.WritePDF(path, cfg.Title, summary)}
		}

		f, err := os.Create(path)
		if err != nil {
			return runExportedMsg{err: err}
		}
		if err := report.WriteCSV(f, summary); err != nil {
			f.Close()
			return runExportedMsg{err: err}
		}
		return runExportedMsg{path: path, err: f.Close()}
	}
}

func (m *RunsModel) selectedRunID() string {
	if m.detail != nil {
		return m.detail.RunID
	}
	if len(m.runs) > 0 && m.cursor < len(m.runs) {
		return m.runs[m.cursor].ID
	}
	return ""
}

func (m *RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		m.detail = nil
		return m, m.loadRuns()

	case runsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.runs = msg.runs
			if m.cursor >= len(m.runs) {
				m.cursor = max(0, len(m.runs)-1)
			}
		}
		return m, nil

	case runDetailMsg:
		m.err = msg.err
		m.detail = msg.summary
		return m, nil

	case runExportedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = "Exported to " + msg.path
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Back):
			m.detail = nil
		case key.Matches(msg, DefaultKeyMap.Up) && m.detail == nil:
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down) && m.detail == nil:
			if m.cursor < len(m.runs)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Select) && m.detail == nil:
			if id := m.selectedRunID(); id != "" {
				return m, m.loadDetail(id)
			}
		case key.Matches(msg, DefaultKeyMap.Export):
			if id := m.selectedRunID(); id != "" {
				return m, m.export(id)
			}
		}
	}

	return m, nil
}

func (m *RunsModel) View() string {
	if m.loading {
		return "Loading payroll runs..."
	}

	var s string
	if m.statusMsg != "" {
		s += statusLine(m.statusMsg)
	}
	if m.err != nil {
		s += errorLine(m.err)
	}

	if m.detail != nil {
		return s + m.viewDetail()
	}
	return s + m.viewList()
}

func (m *RunsModel) viewList() string {
	s := titleStyle.Render("Payroll Runs") + "\n\n"

	if len(m.runs) == 0 {
		s += subtitleStyle.Render("  No payroll runs yet. Use 'labourcost payroll run' to create one.") + "\n"
		return s
	}

	for i, r := range m.runs {
		indicator := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			indicator = "> "
			style = style.Bold(true).Foreground(primaryColor)
		}
		line := fmt.Sprintf("%s%s  %2d employee(s)  %12s  %s",
			indicator,
			r.WeekStart.Format(domain.DateLayout),
			r.EmployeeCount,
			formatMoney(r.Total),
			subtitleStyle.Render(truncateStr(r.ID, 8)),
		)
		s += style.Render(line) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: show  x: export")
	return s
}

func (m *RunsModel) viewDetail() string {
	d := m.detail
	s := titleStyle.Render(d.Title) + "\n"
	s += subtitleStyle.Render("  Week commencing "+d.WeekStart.Format(domain.DateLayout)) + "\n\n"

	for _, line := range d.Lines {
		t := line.Timesheet
		s += fmt.Sprintf("  %-28s %-8s %2d sick  %12s\n",
			truncateStr(line.Employee, 28),
			formatWorked(t.Hours, t.Minutes),
			t.SickDays,
			formatMoney(t.LabourCost),
		)
	}
	s += fmt.Sprintf("\n  %-47s %s\n", "Total", totalStyle.Render(formatMoney(d.Total)))

	s += "\n" + helpStyle.Render("  esc: back  x: export")
	return s
}
