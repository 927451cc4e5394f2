package model

import "time"

// Today returns the current calendar date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// YearMonth returns the current month as YYYY-MM.
func YearMonth() string {
	return time.Now().Format("2006-01")
}

// MonthOfDay derives the YYYY-MM prefix of a YYYY-MM-DD date string.
func MonthOfDay(day string) string {
	if len(day) < 7 {
		return day
	}
	return day[:7]
}
