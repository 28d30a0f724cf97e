package services

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"corpfinityAPI/internal/reminder"
)

var (
	schedulerTicks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_scheduler_ticks_total",
			Help: "Number of scheduler sweeps performed",
		},
	)
	schedulerFired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_scheduler_fired_total",
			Help: "Number of reminders dispatched by the scheduler",
		},
	)
	schedulerErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_scheduler_errors_total",
			Help: "Number of scheduler sweep or dispatch errors",
		},
	)
)

func InitSchedulerMetrics() {
	prometheus.MustRegister(schedulerTicks, schedulerFired, schedulerErrors)
}

// SchedulerService sweeps enabled reminders once a minute and pushes the ones
// due in the current window. A fired map keyed by reminder ID remembers the
// last minute each reminder went out, so a sweep that lands twice inside the
// same window cannot double-send.
type SchedulerService struct {
	reminders *ReminderService
	notifier  *NotificationService

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu    sync.Mutex
	fired map[uuid.UUID]time.Time
}

func NewSchedulerService(reminders *ReminderService, notifier *NotificationService) *SchedulerService {
	return &SchedulerService{
		reminders: reminders,
		notifier:  notifier,
		fired:     make(map[uuid.UUID]time.Time),
	}
}

// Start launches the sweep loop. Calling it again while running is a no-op.
func (s *SchedulerService) Start() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)
	log.Println("Reminder scheduler started")
}

// Stop cancels the loop and waits for the in-flight sweep to finish.
func (s *SchedulerService) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.cancel()
	s.wg.Wait()
	log.Println("Reminder scheduler stopped")
}

func (s *SchedulerService) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.sweep(ctx, now)
		}
	}
}

func (s *SchedulerService) sweep(ctx context.Context, now time.Time) {
	// A panicking sweep must not take down the whole loop; the next tick
	// gets a fresh attempt.
	defer func() {
		if r := recover(); r != nil {
			schedulerErrors.Inc()
			log.Printf("Scheduler: recovered from panic in sweep: %v", r)
		}
	}()

	schedulerTicks.Inc()

	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	enabled, err := s.reminders.AllEnabled(sweepCtx)
	if err != nil {
		schedulerErrors.Inc()
		log.Printf("Scheduler: failed to load reminders: %v", err)
		return
	}

	for _, r := range enabled {
		if !r.Due(now) {
			continue
		}
		if !s.markFired(r.ID, now) {
			continue
		}

		if err := s.dispatch(sweepCtx, r); err != nil {
			schedulerErrors.Inc()
			log.Printf("Scheduler: failed to send reminder %s to user %s: %v", r.ID, r.UserID, err)
			continue
		}
		schedulerFired.Inc()
	}
}

// markFired records the moment a reminder fires. The due window is wide
// enough to cover three consecutive sweeps, so any fire within the last three
// minutes suppresses the reminder. Returns false when suppressed.
func (s *SchedulerService) markFired(id uuid.UUID, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.fired[id]; ok && now.Sub(last) < 3*time.Minute {
		return false
	}
	s.fired[id] = now

	// Drop entries that can no longer suppress anything.
	for rid, t := range s.fired {
		if now.Sub(t) > 24*time.Hour {
			delete(s.fired, rid)
		}
	}
	return true
}

func (s *SchedulerService) dispatch(ctx context.Context, r *reminder.Reminder) error {
	message := ""
	if r.Message != nil {
		message = *r.Message
	}
	_, err := s.notifier.SendReminder(ctx, r.UserID, r.Title, message)
	return err
}
