package streak

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestApplyFirstCompletion(t *testing.T) {
	res := Apply(0, 0, nil, date(2025, 3, 10))

	if res.CurrentStreak != 1 {
		t.Errorf("expected current streak 1, got %d", res.CurrentStreak)
	}
	if res.LongestStreak != 1 {
		t.Errorf("expected longest streak 1, got %d", res.LongestStreak)
	}
	if !res.Changed {
		t.Error("expected Changed to be true")
	}
}

func TestApplySameDayIsNoOp(t *testing.T) {
	last := date(2025, 3, 10)
	res := Apply(5, 8, &last, date(2025, 3, 10).Add(9*time.Hour))

	if res.CurrentStreak != 5 {
		t.Errorf("expected current streak unchanged at 5, got %d", res.CurrentStreak)
	}
	if res.Changed {
		t.Error("second completion on the same day must not change the streak")
	}
}

func TestApplyConsecutiveDayIncrements(t *testing.T) {
	last := date(2025, 3, 10)
	res := Apply(5, 8, &last, date(2025, 3, 11))

	if res.CurrentStreak != 6 {
		t.Errorf("expected current streak 6, got %d", res.CurrentStreak)
	}
	if res.LongestStreak != 8 {
		t.Errorf("expected longest streak to stay 8, got %d", res.LongestStreak)
	}
	if !res.Changed {
		t.Error("expected Changed to be true")
	}
}

func TestApplyGapResets(t *testing.T) {
	last := date(2025, 3, 10)
	res := Apply(5, 8, &last, date(2025, 3, 13))

	if res.CurrentStreak != 1 {
		t.Errorf("expected streak reset to 1 after a gap, got %d", res.CurrentStreak)
	}
	if res.LongestStreak != 8 {
		t.Errorf("longest streak must survive a reset, got %d", res.LongestStreak)
	}
}

func TestApplyRaisesLongestStreak(t *testing.T) {
	last := date(2025, 3, 10)
	res := Apply(8, 8, &last, date(2025, 3, 11))

	if res.LongestStreak != 9 {
		t.Errorf("expected longest streak raised to 9, got %d", res.LongestStreak)
	}
}

func TestApplyLongestNeverDecreases(t *testing.T) {
	days := []time.Time{
		date(2025, 1, 1),
		date(2025, 1, 2),
		date(2025, 1, 3),
		date(2025, 1, 10), // gap
		date(2025, 1, 11),
	}

	current, longest := 0, 0
	var last *time.Time
	prevLongest := 0
	for _, day := range days {
		res := Apply(current, longest, last, day)
		if res.LongestStreak < prevLongest {
			t.Fatalf("longest streak decreased from %d to %d on %s", prevLongest, res.LongestStreak, day)
		}
		prevLongest = res.LongestStreak
		current, longest = res.CurrentStreak, res.LongestStreak
		d := day
		last = &d
	}

	if current != 2 {
		t.Errorf("expected current streak 2 at the end, got %d", current)
	}
	if longest != 3 {
		t.Errorf("expected longest streak 3 at the end, got %d", longest)
	}
}

func TestApplyMonthBoundary(t *testing.T) {
	last := date(2025, 1, 31)
	res := Apply(3, 3, &last, date(2025, 2, 1))

	if res.CurrentStreak != 4 {
		t.Errorf("Jan 31 -> Feb 1 is consecutive, expected 4, got %d", res.CurrentStreak)
	}
}

func TestSameDayIgnoresClockTime(t *testing.T) {
	a := time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC)
	b := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("times on the same date must compare equal")
	}
	if SameDay(a, b.Add(2*time.Minute)) {
		t.Error("midnight rollover must compare as a different day")
	}
}

func TestIsMilestone(t *testing.T) {
	for _, n := range []int{3, 7, 14, 30, 50, 100} {
		if !IsMilestone(n) {
			t.Errorf("expected %d to be a milestone", n)
		}
	}
	for _, n := range []int{0, 1, 2, 4, 15, 99} {
		if IsMilestone(n) {
			t.Errorf("did not expect %d to be a milestone", n)
		}
	}
}
