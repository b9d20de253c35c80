package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andy/labourcost/internal/domain"
	"github.com/andy/labourcost/internal/service"
	"github.com/gocarina/gocsv"
)

// Row is one line of an exported labour cost report
type Row struct {
	EmployeeID int64  `csv:"employee_id"`
	Name       string `csv:"name"`
	WeekStart  string `csv:"week_start"`
	Hours      int    `csv:"hours"`
	Minutes    int    `csv:"minutes"`
	SickDays   int    `csv:"sick_days"`
	LabourCost string `csv:"labour_cost"`
}

// TimesheetRow is one line of a payroll run input file
type TimesheetRow struct {
	EmployeeID int64 `csv:"employee_id"`
	Hours      int   `csv:"hours"`
	Minutes    int   `csv:"minutes"`
	SickDays   int   `csv:"sick_days"`
}

// Rows flattens a summary into export rows
func Rows(summary *service.LabourSummary) []Row {
	rows := make([]Row, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		t := line.Timesheet
		rows = append(rows, Row{
			EmployeeID: t.EmployeeID,
			Name:       line.Employee,
			WeekStart:  t.WeekStart.Format(domain.DateLayout),
			Hours:      t.Hours,
			Minutes:    t.Minutes,
			SickDays:   t.SickDays,
			LabourCost: t.LabourCost.StringFixed(2),
		})
	}
	return rows
}

// WriteCSV writes the summary lines as CSV with a header row
func WriteCSV(w io.Writer, summary *service.LabourSummary) error {
	if summary == nil {
		return errors.New("no summary to export")
	}
	rows := Rows(summary)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// ReadTimesheetCSV parses payroll run input. Each employee may appear once.
func ReadTimesheetCSV(r io.Reader) ([]service.WeekInput, error) {
	var rows []TimesheetRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if strings.Contains(err.Error(), "empty csv file") {
			return nil, service.ErrEmptyRun
		}
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, service.ErrEmptyRun
	}

	inputs := make([]service.WeekInput, 0, len(rows))
	for i, row := range rows {
		if row.EmployeeID <= 0 {
			return nil, fmt.Errorf("line %d: employee_id is required", i+2)
		}
		inputs = append(inputs, service.WeekInput{
			EmployeeID: row.EmployeeID,
			Hours:      row.Hours,
			Minutes:    row.Minutes,
			SickDays:   row.SickDays,
		})
	}
	return inputs, nil
}
