package services

import (
	"testing"

	"github.com/google/uuid"
)

func TestEnqueueDropsWhenQueueFull(t *testing.T) {
	// No workers draining: the queue fills and later jobs must be dropped,
	// never block the caller.
	d := &NotificationDispatcher{
		jobQueue: make(chan *DispatchJob, 2),
		stopChan: make(chan struct{}),
	}

	for i := 0; i < 5; i++ {
		d.Enqueue(&DispatchJob{UserID: uuid.New(), Title: "t", Body: "b"})
	}

	if got := len(d.jobQueue); got != 2 {
		t.Errorf("expected queue capped at 2 jobs, got %d", got)
	}
}

func TestStopTerminatesWorkers(t *testing.T) {
	d := &NotificationDispatcher{
		workers:  3,
		jobQueue: make(chan *DispatchJob, 10),
		stopChan: make(chan struct{}),
	}
	d.startWorkers()

	done := make(chan struct{})
	go func() {
		d.Stop()
		close(done)
	}()

	<-done // Stop must return once every worker exits
}
