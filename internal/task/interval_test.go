// AngelaMos | 2026
// interval_test.go

package task

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIntervalNext(t *testing.T) {
	tests := []struct {
		name     string
		interval Interval
		base     time.Time
		want     time.Time
	}{
		{
			name:     "six months",
			interval: Interval{Months: 6},
			base:     date(2025, time.January, 12),
			want:     date(2025, time.July, 12),
		},
		{
			name:     "one month clamps to end of february",
			interval: Interval{Months: 1},
			base:     date(2025, time.January, 31),
			want:     date(2025, time.February, 28),
		},
		{
			name:     "one month clamps to leap february",
			interval: Interval{Months: 1},
			base:     date(2024, time.January, 31),
			want:     date(2024, time.February, 29),
		},
		{
			name:     "one year from leap day clamps",
			interval: Interval{Years: 1},
			base:     date(2024, time.February, 29),
			want:     date(2025, time.February, 28),
		},
		{
			name:     "weeks and days combine",
			interval: Interval{Weeks: 2, Days: 3},
			base:     date(2025, time.March, 1),
			want:     date(2025, time.March, 18),
		},
		{
			name:     "years before months before days",
			interval: Interval{Years: 1, Months: 1, Days: 1},
			base:     date(2024, time.January, 31),
			want:     date(2025, time.March, 1),
		},
		{
			name:     "month wrap across year end",
			interval: Interval{Months: 2},
			base:     date(2025, time.November, 30),
			want:     date(2026, time.January, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.interval.Next(tt.base)
			if !ok {
				t.Fatalf("Next(%v) returned ok=false", tt.base)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Next(%v) = %v, want %v", tt.base, got, tt.want)
			}
			if !got.After(tt.base) {
				t.Errorf("Next(%v) = %v is not after base", tt.base, got)
			}
		})
	}
}

func TestIntervalNextZero(t *testing.T) {
	var zero Interval

	if _, ok := zero.Next(date(2025, time.June, 1)); ok {
		t.Error("zero interval should not produce a next occurrence")
	}
	if !zero.IsZero() {
		t.Error("IsZero() = false for zero interval")
	}
}

func TestIntervalValidate(t *testing.T) {
	if err := (Interval{Months: 6}).Validate(); err != nil {
		t.Errorf("valid interval rejected: %v", err)
	}
	if err := (Interval{Days: -1}).Validate(); err == nil {
		t.Error("negative component accepted")
	}
}

func TestIntervalString(t *testing.T) {
	if got := (Interval{}).String(); got != "one-off" {
		t.Errorf("zero interval String() = %q", got)
	}
	if got := (Interval{Years: 1, Weeks: 2}).String(); got != "1y0m2w0d" {
		t.Errorf("String() = %q", got)
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityRank(PriorityHigh) >= PriorityRank(PriorityMedium) {
		t.Error("high should rank before medium")
	}
	if PriorityRank(PriorityMedium) >= PriorityRank(PriorityLow) {
		t.Error("medium should rank before low")
	}
	if PriorityRank("bogus") <= PriorityRank(PriorityLow) {
		t.Error("unknown priority should rank last")
	}
}
