package repository

import (
	"time"

	"github.com/andy/labourcost/internal/domain"
	"github.com/shopspring/decimal"
)

// timeLayout is the RFC3339 format for storing timestamps in SQLite
const timeLayout = time.RFC3339

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func formatTime() string {
	return time.Now().Format(timeLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateLayout, s)
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func parseMoney(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
