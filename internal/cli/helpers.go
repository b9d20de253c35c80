package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andy/labourcost/internal/domain"
	"github.com/andy/labourcost/internal/repository"
)

// parseDate accepts YYYY-MM-DD, "today" or "yesterday"
func parseDate(s string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return domain.DateOf(time.Now()), nil
	case "yesterday":
		return domain.DateOf(time.Now().AddDate(0, 0, -1)), nil
	default:
		t, err := time.Parse(domain.DateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("expected format: YYYY-MM-DD, 'today', or 'yesterday'")
		}
		return t, nil
	}
}

// resolveEmployee looks an employee up by numeric ID or by full name
func resolveEmployee(ctx context.Context, repo repository.EmployeeRepository, ref string) (*domain.Employee, error) {
	var (
		employee *domain.Employee
		err      error
	)
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		employee, err = repo.GetByID(ctx, id)
	} else {
		employee, err = repo.GetByName(ctx, ref)
	}

	if errors.Is(err, repository.ErrNotFound) || (err == nil && employee == nil) {
		return nil, fmt.Errorf("employee %q not found", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
