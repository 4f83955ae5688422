package models

import (
	"testing"
	"time"
)

func TestValidPeriod(t *testing.T) {
	tests := []struct {
		period string
		want   bool
	}{
		{"2025-01", true},
		{"2025-12", true},
		{"1999-06", true},
		{"2025-00", false},
		{"2025-13", false},
		{"2025-1", false},
		{"25-01", false},
		{"2025/01", false},
		{"2025-01-15", false},
		{"", false},
		{"banana", false},
	}

	for _, tt := range tests {
		if got := ValidPeriod(tt.period); got != tt.want {
			t.Errorf("ValidPeriod(%q) = %v, want %v", tt.period, got, tt.want)
		}
	}
}

func TestPeriodOf(t *testing.T) {
	ts := time.Date(2025, time.March, 31, 23, 59, 0, 0, time.UTC)
	if got := PeriodOf(ts); got != "2025-03" {
		t.Errorf("PeriodOf = %q, want 2025-03", got)
	}

	// Non-UTC input must not shift the month.
	loc := time.FixedZone("UTC+13", 13*3600)
	ts = time.Date(2025, time.April, 1, 0, 30, 0, 0, loc)
	if got := PeriodOf(ts); got != "2025-03" {
		t.Errorf("PeriodOf(non-UTC) = %q, want 2025-03", got)
	}
}
