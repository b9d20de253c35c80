package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andy/labourcost/internal/domain"
	"github.com/andy/labourcost/internal/repository"
	"github.com/shopspring/decimal"
)

func TestDemoEmployees(t *testing.T) {
	cases, err := demoEmployees()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{
		"Eric Wimp":    "518.72",
		"Peter Parker": "405.26",
		"Clark Kent":   "602.49",
		"Bruce Wayne":  "305.97",
		"Wade Wilson":  "396.28",
	}
	if len(cases) != len(want) {
		t.Fatalf("expected %d demo employees, got %d", len(want), len(cases))
	}

	week := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	for _, c := range cases {
		got, err := c.employee.CalculateSalary(week, c.hours, c.minutes, c.sickDays)
		if err != nil {
			t.Fatalf("%s: %v", c.employee.FullName(), err)
		}
		if got.StringFixed(2) != want[c.employee.FullName()] {
			t.Fatalf("%s: expected %s, got %s", c.employee.FullName(), want[c.employee.FullName()], got.StringFixed(2))
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-10-21")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", got)
	}

	today, err := parseDate("today")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	yesterday, _ := parseDate("yesterday")
	if !yesterday.AddDate(0, 0, 1).Equal(today) {
		t.Fatalf("yesterday %v is not the day before today %v", yesterday, today)
	}

	if _, err := parseDate("21/10/2026"); err == nil {
		t.Fatalf("expected error for bad format")
	}
}

func TestNeedsApp(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, true},
		{[]string{"demo", "--week", "2026-10-19"}, false},
		{[]string{"salary", "--help"}, false},
		{[]string{"employees", "list"}, true},
	}
	for _, tt := range tests {
		if got := NeedsApp(tt.args); got != tt.want {
			t.Fatalf("NeedsApp(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

type stubEmployeeRepo struct {
	repository.EmployeeRepository
	employee *domain.Employee
}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	if s.employee.ID == id {
		return s.employee, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubEmployeeRepo) GetByName(ctx context.Context, fullName string) (*domain.Employee, error) {
	if s.employee.FullName() == fullName {
		return s.employee, nil
	}
	return nil, repository.ErrNotFound
}

func TestResolveEmployee(t *testing.T) {
	e, err := domain.NewEmployee("Clark", "Kent", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		domain.PayFrequencyWeekly, decimal.NewFromInt(480), domain.SickPaySSP)
	if err != nil {
		t.Fatalf("new employee: %v", err)
	}
	e.ID = 3
	repo := &stubEmployeeRepo{employee: e}
	ctx := context.Background()

	for _, ref := range []string{"3", "Clark Kent"} {
		got, err := resolveEmployee(ctx, repo, ref)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", ref, err)
		}
		if got != e {
			t.Fatalf("%s: wrong employee", ref)
		}
	}

	_, err = resolveEmployee(ctx, repo, "Lois Lane")
	if err == nil || errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected a not found message, got %v", err)
	}
}
