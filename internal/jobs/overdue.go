// Package jobs runs the catalog's scheduled maintenance work.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"locallibrary/internal/entities"
)

// OverdueLister fetches the loaned copies whose due date has passed.
type OverdueLister interface {
	GetOverdue(ctx context.Context, now time.Time) ([]entities.BookInstance, error)
}

// OverdueReporter periodically logs the copies that are overdue, so the
// librarian sees them without opening every instance page.
type OverdueReporter struct {
	instances OverdueLister
	cron      *cron.Cron
}

// NewOverdueReporter schedules the report with a standard cron expression.
func NewOverdueReporter(instances OverdueLister, schedule string) (*OverdueReporter, error) {
	r := &OverdueReporter{
		instances: instances,
		cron:      cron.New(),
	}
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, err
	}
	return r, nil
}

// Start begins running the schedule in its own goroutine.
func (r *OverdueReporter) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for a running report to finish.
func (r *OverdueReporter) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (r *OverdueReporter) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	overdue, err := r.instances.GetOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("Overdue report failed: %v", err)
		return
	}
	if len(overdue) == 0 {
		log.Printf("Overdue report: no overdue copies")
		return
	}

	log.Printf("Overdue report: %d overdue copies", len(overdue))
	for _, copy := range overdue {
		log.Printf("  %q (%s) due back %s", copy.Book.Title, copy.Imprint, copy.DueBackDisplay())
	}
}
