package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formField describes one text input of a form
type formField struct {
	label       string
	placeholder string
	value       string
	width       int
}

// form is a column of labelled text inputs with one focused at a time
type form struct {
	labels []string
	fields []textinput.Model
	focus  int
}

func newForm(specs []formField) *form {
	f := &form{
		labels: make([]string, len(specs)),
		fields: make([]textinput.Model, len(specs)),
	}
	for i, spec := range specs {
		in := textinput.New()
		in.Placeholder = spec.placeholder
		in.CharLimit = 100
		in.Width = spec.width
		if in.Width == 0 {
			in.Width = 30
		}
		in.SetValue(spec.value)
		f.labels[i] = spec.label
		f.fields[i] = in
	}
	return f
}

func (f *form) focusCmd() tea.Cmd {
	return f.fields[f.focus].Focus()
}

func (f *form) move(delta int) tea.Cmd {
	f.fields[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].Focus()
}

func (f *form) onLast() bool {
	return f.focus == len(f.fields)-1
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].Value())
}

func (f *form) setValue(i int, v string) {
	f.fields[i].SetValue(v)
}

// update passes msg to the focused input
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return cmd
}

func (f *form) view() string {
	var s string
	for i, label := range f.labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == f.focus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), f.fields[i].View())
	}
	return s
}

func errorLine(err error) string {
	return lipgloss.NewStyle().Foreground(errorColor).
		Render(fmt.Sprintf("  Error: %v", err)) + "\n\n"
}

func statusLine(msg string) string {
	return lipgloss.NewStyle().Foreground(successColor).
		Render("  "+msg) + "\n\n"
}
