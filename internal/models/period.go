package models

import (
	"regexp"
	"time"
)

// Settlement periods are calendar months carried as "YYYY-MM" strings.
// Inclusive string comparison on this form matches inclusive date-window
// comparison, so the storage layer can filter with plain <= / >=.

var periodRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidPeriod reports whether s is a well-formed settlement period.
func ValidPeriod(s string) bool {
	return periodRe.MatchString(s)
}

// PeriodOf returns the settlement period containing t.
func PeriodOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}
