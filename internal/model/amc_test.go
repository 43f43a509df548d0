package model

import (
	"testing"
	"time"
)

func TestAdvanceBilling(t *testing.T) {
	from := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		frequency string
		want      string
	}{
		{FreqWeekly, "2025-01-22"},
		{FreqMonthly, "2025-02-15"},
		{FreqQuarterly, "2025-04-15"},
		{FreqSemiAnnual, "2025-07-15"},
		{FreqAnnual, "2026-01-15"},
		{"bogus", "2025-02-15"}, // unknown falls back to monthly
	}
	for _, c := range cases {
		got := AdvanceBilling(from, c.frequency).Format("2006-01-02")
		if got != c.want {
			t.Fatalf("AdvanceBilling(%s) = %s, want %s", c.frequency, got, c.want)
		}
	}
}

func TestValidFrequency(t *testing.T) {
	for _, f := range []string{FreqWeekly, FreqMonthly, FreqQuarterly, FreqSemiAnnual, FreqAnnual} {
		if !ValidFrequency(f) {
			t.Fatalf("expected %s to be valid", f)
		}
	}
	if ValidFrequency("biweekly") {
		t.Fatal("expected biweekly to be invalid")
	}
}
