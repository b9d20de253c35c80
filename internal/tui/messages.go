package tui

import "github.com/andy/labourcost/internal/domain"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// OpenNewEmployeeFormMsg tells the employees screen to open the new employee form
type OpenNewEmployeeFormMsg struct{}

// SelectEmployeeMsg opens the calculator for an employee
type SelectEmployeeMsg struct {
	Employee *domain.Employee
}

// firstRunCheckMsg reports whether the database has any employees
type firstRunCheckMsg struct {
	hasEmployees bool
}
