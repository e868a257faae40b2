package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nonsonwune/student_results/models"
)

// NotAvailable is printed in place of an undefined statistic.
const NotAvailable = "N/A"

// FormatFloat renders f with two decimals, or NotAvailable when undefined.
func FormatFloat(f float64) string {
	if models.IsUndefined(f) {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", f)
}

// FormatPercent is FormatFloat with a trailing percent sign.
func FormatPercent(f float64) string {
	if models.IsUndefined(f) {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f%%", f)
}

// formatScore prints a raw score without trailing zeros.
func formatScore(f float64) string {
	if models.IsUndefined(f) {
		return NotAvailable
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// BinLabel renders a bin as a half-open range, or closed for the last bin.
func BinLabel(b models.Bin, last bool) string {
	closing := ")"
	if last {
		closing = "]"
	}
	return fmt.Sprintf("[%.1f, %.1f%s", b.Low, b.High, closing)
}

// StatusList joins statuses for display; an empty set reads "none".
func StatusList(statuses []models.Status) string {
	if len(statuses) == 0 {
		return "none"
	}
	labels := make([]string, len(statuses))
	for i, s := range statuses {
		labels[i] = string(s)
	}
	return strings.Join(labels, ", ")
}

// bar draws count as a run of '#' scaled so that peak fills width.
func bar(count, peak, width int) string {
	if count <= 0 || peak <= 0 {
		return ""
	}
	n := count * width / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}
