package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andy/labourcost/internal/domain"
	"github.com/andy/labourcost/internal/service"
	"github.com/jung-kurt/gofpdf"
)

var pdfColumns = []struct {
	header string
	width  float64
	align  string
}{
	{"Employee", 60, "L"},
	{"Hours", 25, "R"},
	{"Minutes", 25, "R"},
	{"Sick days", 25, "R"},
	{"Labour cost", 45, "R"},
}

// WritePDF renders the summary as an A4 table and writes it to path
func WritePDF(path, title string, summary *service.LabourSummary) error {
	if summary == nil {
		return errors.New("no summary to export")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, summary.Title)
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.header, "B", 0, col.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range summary.Lines {
		t := line.Timesheet
		values := []string{
			line.Employee,
			fmt.Sprintf("%d", t.Hours),
			fmt.Sprintf("%d", t.Minutes),
			fmt.Sprintf("%d", t.SickDays),
			t.LabourCost.StringFixed(2),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, values[i], "", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 11)
	labelWidth := 0.0
	for _, col := range pdfColumns[:len(pdfColumns)-1] {
		labelWidth += col.width
	}
	last := pdfColumns[len(pdfColumns)-1]
	pdf.CellFormat(labelWidth, 8, fmt.Sprintf("Total for week commencing %s", summary.WeekStart.Format(domain.DateLayout)), "T", 0, "L", false, 0, "")
	pdf.CellFormat(last.width, 8, summary.Total.StringFixed(2), "T", 0, last.align, false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
