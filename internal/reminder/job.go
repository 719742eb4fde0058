// Package reminder walks bookings whose reminder has not gone out yet and
// mails each one. It is batch processing over the store: query, act, mark.
package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"support-agent/internal/storage"
)

// Sender delivers one reminder email; false means the mail did not go out.
type Sender interface {
	SendReminder(ctx context.Context, email, name string, scheduledFor time.Time) bool
}

// Store is the storage subset the job needs.
type Store interface {
	PendingReminders(ctx context.Context) ([]storage.PendingReminder, error)
	MarkReminderSent(ctx context.Context, bookingID uint) error
}

type Job struct {
	store  Store
	sender Sender
}

func NewJob(store Store, sender Sender) *Job {
	return &Job{store: store, sender: sender}
}

// Run processes every pending reminder once. Only bookings whose mail was
// delivered are marked sent; failures stay pending for the next run.
func (j *Job) Run(ctx context.Context) (sent, failed int, err error) {
	pending, err := j.store.PendingReminders(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("load pending reminders: %w", err)
	}
	if len(pending) == 0 {
		log.Printf("no pending reminders found")
		return 0, 0, nil
	}
	log.Printf("found %d pending reminders", len(pending))

	for _, p := range pending {
		if !j.sender.SendReminder(ctx, p.Email, p.FullName, p.ScheduledFor) {
			failed++
			continue
		}
		if err := j.store.MarkReminderSent(ctx, p.BookingID); err != nil {
			return sent, failed, fmt.Errorf("mark booking %d sent: %w", p.BookingID, err)
		}
		sent++
	}

	log.Printf("reminder job complete: %d sent, %d failed", sent, failed)
	return sent, failed, nil
}
