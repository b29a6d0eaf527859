package viewmodel

import (
	"math"
	"strings"
	"time"
)

const (
	missingDate = "No disponible"
	invalidDate = "Formato inválido"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts the ISO date and datetime shapes the backends emit.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders dd/mm/yyyy.
func FormatDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return missingDate
	}
	t, ok := ParseDate(s)
	if !ok {
		return invalidDate
	}
	return t.Format("02/01/2006")
}

// FormatDateTime renders dd/mm/yyyy hh:mm, or the date alone when no time is present.
func FormatDateTime(s string) string {
	if strings.TrimSpace(s) == "" {
		return missingDate
	}
	t, ok := ParseDate(s)
	if !ok {
		return invalidDate
	}
	if !strings.Contains(s, "T") && !strings.Contains(s, " ") {
		return t.Format("02/01/2006")
	}
	return t.Format("02/01/2006 15:04")
}

// DateInput renders the value of an <input type="date">.
func DateInput(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// Percent returns part/total as a rounded integer percentage, 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}
