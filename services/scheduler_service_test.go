package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMarkFiredSuppressesWithinWindow(t *testing.T) {
	s := NewSchedulerService(nil, nil)
	id := uuid.New()
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	if !s.markFired(id, now) {
		t.Fatal("first fire must be allowed")
	}
	// The due window covers the next two sweeps. Both must be suppressed.
	if s.markFired(id, now.Add(time.Minute)) {
		t.Error("sweep one minute later must be suppressed")
	}
	if s.markFired(id, now.Add(2*time.Minute)) {
		t.Error("sweep two minutes later must be suppressed")
	}
	if !s.markFired(id, now.Add(5*time.Minute)) {
		t.Error("fire outside the window must be allowed again")
	}
}

func TestMarkFiredIndependentPerReminder(t *testing.T) {
	s := NewSchedulerService(nil, nil)
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	a, b := uuid.New(), uuid.New()
	if !s.markFired(a, now) {
		t.Fatal("first reminder must fire")
	}
	if !s.markFired(b, now) {
		t.Error("a different reminder in the same minute must fire too")
	}
}

func TestMarkFiredNextDay(t *testing.T) {
	s := NewSchedulerService(nil, nil)
	id := uuid.New()
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	s.markFired(id, now)
	if !s.markFired(id, now.Add(24*time.Hour)) {
		t.Error("same reminder must fire again the next day")
	}
}

func TestSweepContainsPanic(t *testing.T) {
	// Sweeping with broken dependencies blows up inside the sweep. The loop
	// must survive it and try again next tick.
	s := NewSchedulerService(&ReminderService{}, nil)

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("sweep propagated a panic: %v", r)
		}
	}()
	s.sweep(context.Background(), time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC))
}

func TestStartIsIdempotent(t *testing.T) {
	s := NewSchedulerService(nil, nil)

	s.Start()
	s.Start() // second call must be a no-op
	s.Stop()

	// Stop on a stopped scheduler must not panic or block.
	s.Stop()
}
