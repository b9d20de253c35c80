package tui

import (
	"fmt"

	"github.com/andy/labourcost/internal/app"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// settings form field indices
const (
	settingsFieldOutputDir = iota
	settingsFieldFormat
	settingsFieldTitle
	settingsFieldLogLevel
)

type settingsSavedMsg struct {
	err error
}

// SettingsModel shows and edits the report and logging settings
type SettingsModel struct {
	app       *app.App
	form      *form // nil unless editing
	err       error
	statusMsg string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{app: a}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.form != nil
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) openForm() tea.Cmd {
	cfg := m.app.Config
	m.form = newForm([]formField{
		{label: "Report directory:", placeholder: "/path/to/reports", value: cfg.Report.OutputDir, width: 60},
		{label: "Default format (csv, pdf):", placeholder: "csv", value: cfg.Report.DefaultFormat, width: 6},
		{label: "PDF title:", placeholder: "Weekly Labour Cost", value: cfg.Report.Title, width: 40},
		{label: "Log level (debug, info, warn, error):", placeholder: "warn", value: cfg.Log.Level, width: 8},
	})
	return m.form.focusCmd()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	updated := *m.app.Config
	updated.Report.OutputDir = m.form.value(settingsFieldOutputDir)
	updated.Report.DefaultFormat = m.form.value(settingsFieldFormat)
	updated.Report.Title = m.form.value(settingsFieldTitle)
	updated.Log.Level = m.form.value(settingsFieldLogLevel)

	return func() tea.Msg {
		if updated.Report.OutputDir == "" {
			return settingsSavedMsg{err: fmt.Errorf("report directory is required")}
		}
		if err := updated.Validate(); err != nil {
			return settingsSavedMsg{err: err}
		}
		if err := updated.EnsureDirectories(); err != nil {
			return settingsSavedMsg{err: err}
		}

		*m.app.Config = updated
		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}
		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
		if msg.String() == "enter" {
			m.statusMsg = ""
			return m, m.openForm()
		}
	}
	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.form = nil
		m.statusMsg = "Settings saved (log level applies from next start)"
		return m, nil

	case tea.KeyMsg:
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
				return m, m.saveSettings()
			}
			return m, m.form.move(1)
		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	return m, m.form.update(msg)
}

func (m *SettingsModel) View() string {
	if m.form != nil {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += statusLine(m.statusMsg)
	}

	cfg := m.app.Config
	label := lipgloss.NewStyle().Bold(true).Width(22)
	value := lipgloss.NewStyle().Foreground(primaryColor)

	s += subtitleStyle.Render("  Reports") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", label.Render("Output Directory:"), value.Render(cfg.Report.OutputDir))
	s += fmt.Sprintf("  %s %s\n", label.Render("Default Format:"), value.Render(cfg.Report.DefaultFormat))
	s += fmt.Sprintf("  %s %s\n\n", label.Render("PDF Title:"), value.Render(cfg.Report.Title))

	s += subtitleStyle.Render("  Storage") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", label.Render("Database:"), value.Render(cfg.Database.Path))
	s += fmt.Sprintf("  %s %s\n", label.Render("Log Level:"), value.Render(cfg.Log.Level))

	s += "\n" + helpStyle.Render("  enter: edit settings")
	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"
	s += m.form.view()

	if m.err != nil {
		s += errorLine(m.err)
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")
	return s
}
