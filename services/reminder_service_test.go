package services

import (
	"testing"

	"corpfinityAPI/internal/reminder"
)

func TestValidateScheduleBounds(t *testing.T) {
	if err := validateSchedule(9, 30, reminder.FrequencyDaily, nil); err != nil {
		t.Errorf("valid daily schedule rejected: %v", err)
	}
	if err := validateSchedule(24, 0, reminder.FrequencyDaily, nil); err == nil {
		t.Error("hour 24 must be rejected")
	}
	if err := validateSchedule(0, 60, reminder.FrequencyDaily, nil); err == nil {
		t.Error("minute 60 must be rejected")
	}
	if err := validateSchedule(-1, 0, reminder.FrequencyDaily, nil); err == nil {
		t.Error("negative hour must be rejected")
	}
}

func TestValidateScheduleCustomDays(t *testing.T) {
	if err := validateSchedule(9, 0, reminder.FrequencyCustom, []int{0, 6}); err != nil {
		t.Errorf("valid custom schedule rejected: %v", err)
	}
	if err := validateSchedule(9, 0, reminder.FrequencyCustom, nil); err == nil {
		t.Error("custom frequency without days must be rejected")
	}
	if err := validateSchedule(9, 0, reminder.FrequencyCustom, []int{7}); err == nil {
		t.Error("day 7 must be rejected")
	}
}

func TestValidateScheduleUnknownFrequency(t *testing.T) {
	if err := validateSchedule(9, 0, "monthly", nil); err == nil {
		t.Error("unknown frequency must be rejected")
	}
}
