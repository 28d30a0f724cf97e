package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

var dispatchedPushes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "push_dispatch_total",
		Help: "Push notification dispatch outcomes",
	},
	[]string{"outcome"},
)

// InitDispatcherMetrics registers dispatcher metrics. Call once from main.go
func InitDispatcherMetrics() {
	prometheus.MustRegister(dispatchedPushes)
}

// NotificationDispatcher fans pushes out through a small fixed worker pool.
// Request handlers only enqueue, so a burst of completions cannot spawn an
// unbounded number of in-flight sends.
type NotificationDispatcher struct {
	service  *NotificationService
	workers  int
	jobQueue chan *DispatchJob
	stopChan chan struct{}
	wg       sync.WaitGroup
}

type DispatchJob struct {
	UserID uuid.UUID
	Title  string
	Body   string
	Data   map[string]string
}

func NewNotificationDispatcher(service *NotificationService) *NotificationDispatcher {
	dispatcher := &NotificationDispatcher{
		service:  service,
		workers:  5, // 5 workers is plenty for now
		jobQueue: make(chan *DispatchJob, 100),
		stopChan: make(chan struct{}),
	}

	dispatcher.startWorkers()

	return dispatcher
}

func (d *NotificationDispatcher) startWorkers() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

func (d *NotificationDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case job := <-d.jobQueue:
			d.processJob(job)
		case <-d.stopChan:
			return
		}
	}
}

func (d *NotificationDispatcher) processJob(job *DispatchJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := d.service.Send(ctx, job.UserID, job.Title, job.Body, job.Data)
	if err != nil {
		log.Printf("Dispatch failed for user %s: %v", job.UserID, err)
		dispatchedPushes.WithLabelValues("error").Inc()
		return
	}

	if result.Failure > 0 {
		dispatchedPushes.WithLabelValues("partial").Inc()
	} else {
		dispatchedPushes.WithLabelValues("sent").Inc()
	}
}

// Enqueue adds a job to the queue. A full queue drops the push with a log
// line rather than blocking the caller: notifications are advisory.
func (d *NotificationDispatcher) Enqueue(job *DispatchJob) {
	select {
	case d.jobQueue <- job:
	default:
		log.Printf("Failed to queue notification for user %s: queue full", job.UserID)
		dispatchedPushes.WithLabelValues("dropped").Inc()
	}
}

// Stop drains the workers gracefully.
func (d *NotificationDispatcher) Stop() {
	log.Println("Stopping notification dispatcher...")
	close(d.stopChan)
	d.wg.Wait()
	log.Println("Notification dispatcher stopped")
}
