package reminder

import (
	"testing"
	"time"
)

// 2025-03-10 is a Monday, 2025-03-15 a Saturday, 2025-03-16 a Sunday.
func at(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}

func TestDueDailyWindow(t *testing.T) {
	r := &Reminder{TimeHour: 9, TimeMinute: 30, Frequency: FrequencyDaily}

	cases := []struct {
		now  time.Time
		want bool
	}{
		{at(2025, 3, 10, 9, 29), true},
		{at(2025, 3, 10, 9, 30), true},
		{at(2025, 3, 10, 9, 31), true},
		{at(2025, 3, 10, 9, 28), false},
		{at(2025, 3, 10, 9, 32), false},
		{at(2025, 3, 10, 21, 30), false},
	}
	for _, c := range cases {
		if got := r.Due(c.now); got != c.want {
			t.Errorf("Due(%s) = %v, want %v", c.now.Format("15:04"), got, c.want)
		}
	}
}

func TestDueWeekdays(t *testing.T) {
	r := &Reminder{TimeHour: 9, TimeMinute: 0, Frequency: FrequencyWeekdays}

	if !r.Due(at(2025, 3, 10, 9, 0)) {
		t.Error("expected weekday reminder due on Monday")
	}
	if !r.Due(at(2025, 3, 14, 9, 0)) {
		t.Error("expected weekday reminder due on Friday")
	}
	if r.Due(at(2025, 3, 15, 9, 0)) {
		t.Error("weekday reminder must not fire on Saturday")
	}
	if r.Due(at(2025, 3, 16, 9, 0)) {
		t.Error("weekday reminder must not fire on Sunday")
	}
}

func TestDueCustomDays(t *testing.T) {
	// 0=Sunday, 3=Wednesday
	r := &Reminder{TimeHour: 18, TimeMinute: 0, Frequency: FrequencyCustom, CustomDays: []int{0, 3}}

	if !r.Due(at(2025, 3, 16, 18, 0)) {
		t.Error("expected custom reminder due on Sunday (day 0)")
	}
	if !r.Due(at(2025, 3, 12, 18, 0)) {
		t.Error("expected custom reminder due on Wednesday (day 3)")
	}
	if r.Due(at(2025, 3, 10, 18, 0)) {
		t.Error("custom reminder must not fire on a day outside its set")
	}
}

func TestDueCustomEmptyNeverFires(t *testing.T) {
	r := &Reminder{TimeHour: 12, TimeMinute: 0, Frequency: FrequencyCustom}

	for d := 10; d <= 16; d++ {
		if r.Due(at(2025, 3, d, 12, 0)) {
			t.Fatalf("custom reminder with no days fired on 2025-03-%02d", d)
		}
	}
}

func TestDueUnknownFrequency(t *testing.T) {
	r := &Reminder{TimeHour: 12, TimeMinute: 0, Frequency: "monthly"}

	if r.Due(at(2025, 3, 10, 12, 0)) {
		t.Error("unknown frequency must never fire")
	}
}
