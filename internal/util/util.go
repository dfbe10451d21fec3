package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}

// FormatFixed formats a float with a fixed number of decimals (e.g., 12.5 -> "12.50").
func FormatFixed(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}

	return strconv.FormatFloat(value, 'f', decimals, 64)
}

// Percent returns part/total*100, or 0 when total is zero.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}

	return part / total * 100
}

// FormatPrice groups thousands with spaces and appends the currency suffix (e.g., "1 250 000 so'm").
func FormatPrice(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var grouped strings.Builder
	grouped.Grow(len(digits) + len(digits)/3)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(' ')
		}
		grouped.WriteRune(r)
	}

	return sign + grouped.String() + " so'm"
}
