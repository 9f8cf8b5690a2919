package types

import (
	"testing"
	"time"
)

func TestHoursAgo(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		published time.Time
		want      int
	}{
		{"six hours", now.Add(-6 * time.Hour), 6},
		{"partial hour rounds down", now.Add(-90 * time.Minute), 1},
		{"just published", now, 0},
		{"future clamps to zero", now.Add(2 * time.Hour), 0},
		{"unknown publish time", time.Time{}, 0},
	}
	for _, c := range cases {
		it := Item{Published: c.published}
		if got := it.HoursAgo(now); got != c.want {
			t.Errorf("%s: HoursAgo = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestDaysAgo(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	if got := (Item{Published: now.Add(-26 * time.Hour)}).DaysAgo(now); got != 1 {
		t.Errorf("26h ago: DaysAgo = %d, want 1", got)
	}
	if got := (Item{Published: now.Add(-23 * time.Hour)}).DaysAgo(now); got != 0 {
		t.Errorf("23h ago: DaysAgo = %d, want 0", got)
	}
	if got := (Item{}).DaysAgo(now); got != 0 {
		t.Errorf("zero published: DaysAgo = %d, want 0", got)
	}
}
