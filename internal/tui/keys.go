package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Navigation
	Employees  key.Binding
	Calculator key.Binding
	Runs       key.Binding
	Settings   key.Binding

	// Actions
	Select     key.Binding
	New        key.Binding
	Save       key.Binding
	Pension    key.Binding
	BikeScheme key.Binding
	Export     key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Employees:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "employees")),
	Calculator: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "calculator")),
	Runs:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "runs")),
	Settings:   key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Pension:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pension")),
	BikeScheme: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bike scheme")),
	Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}
