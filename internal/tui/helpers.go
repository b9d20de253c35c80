package tui

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// formatWorked formats hours and minutes as "Xh Ym"
func formatWorked(hours, minutes int) string {
	hours += minutes / 60
	minutes %= 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// formatMoney formats money as "£X,XXX.XX" with comma separators
func formatMoney(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	result := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}

	prefix := "£"
	if negative {
		prefix = "-£"
	}
	return prefix + string(result) + decPart
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
