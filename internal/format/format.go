// Package format maps raw backend date and enum strings to the Italian
// display strings used throughout the UI.
package format

import (
	"fmt"
	"strings"
	"time"
)

var weekdays = [...]string{
	"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato",
}

var months = [...]string{
	"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
	"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
}

func parse(value string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders an ISO date in the long Italian form, e.g.
// "lunedì 3 febbraio 2025". Unparseable input is returned unchanged.
func Date(value string) string {
	t, ok := parse(value)
	if !ok {
		return value
	}
	return fmt.Sprintf("%s %d %s %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}

// DateShort renders an ISO date as dd/mm/yyyy. Empty input stays empty.
func DateShort(value string) string {
	if value == "" {
		return ""
	}
	t, ok := parse(value)
	if !ok {
		return value
	}
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
}

// FromDDMMYYYY converts dd/mm/yyyy back to the ISO yyyy-mm-dd form expected
// by the backend. Malformed input is returned unchanged.
func FromDDMMYYYY(value string) string {
	if value == "" {
		return ""
	}
	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return value
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// PeriodText expands a time-period key into its display label.
func PeriodText(period string) string {
	switch period {
	case "mattina":
		return "Mattina (8:30 - 12:30)"
	case "pomeriggio":
		return "Pomeriggio (14:00 - 18:00)"
	default:
		return period
	}
}

// GenderCategoryText expands a gender-category key into its display label.
func GenderCategoryText(category string) string {
	switch category {
	case "misto":
		return "Misto"
	case "maschile":
		return "Solo ragazzi"
	case "femminile":
		return "Solo ragazze"
	default:
		return category
	}
}

// SectionColor picks the badge classes for a department.
func SectionColor(section string) string {
	switch section {
	case "Informatica":
		return "bg-blue-100 text-blue-800 border-blue-200"
	case "Elettronica":
		return "bg-purple-100 text-purple-800 border-purple-200"
	case "Disegno":
		return "bg-amber-100 text-amber-800 border-amber-200"
	case "Chimica":
		return "bg-emerald-100 text-emerald-800 border-emerald-200"
	default:
		return "bg-gray-100 text-gray-800 border-gray-200"
	}
}
