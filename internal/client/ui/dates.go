package ui

import (
	"fmt"
	"time"
)

// ShortDate formats t as "Mar 10, 2024".
func ShortDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// LongDate formats t as "March 10th, 2024".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s, %d", t.Month(), t.Day(), ordinal(t.Day()), t.Year())
}

func ordinal(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
