// Package storage persists sessions, messages, profiles and bookings.
// Message append order is the ordering key for both conversation context
// and contact extraction, so reads must return messages exactly as written.
package storage

import (
	"context"
	"time"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// Session is one conversation, bounded by start and an exit signal.
type Session struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	Status    string `gorm:"type:varchar(16);not null;default:'active'"`
	CreatedAt time.Time
}

// Message is a single turn within a session. Seq is a per-session monotonic
// counter that breaks created_at ties.
type Message struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"type:char(36);not null;index:idx_session_msgs"`
	Seq       int    `gorm:"not null"`
	Sender    string `gorm:"type:varchar(8);not null;check:sender IN ('user','bot')"`
	Content   string `gorm:"not null"`
	CreatedAt time.Time
}

// Profile is one row per customer, keyed by email.
type Profile struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName  string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Booking is a scheduled consultation linked to a profile and the session
// that produced it.
type Booking struct {
	ID           uint `gorm:"primaryKey"`
	ProfileID    uint `gorm:"not null;index"`
	SessionID    string
	ScheduledFor *time.Time
	ReminderSent bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

// PendingReminder is one row of the booking/profile join consumed by the
// reminder job.
type PendingReminder struct {
	BookingID    uint      `gorm:"column:booking_id"`
	ScheduledFor time.Time `gorm:"column:scheduled_for"`
	FullName     string    `gorm:"column:full_name"`
	Email        string    `gorm:"column:email"`
}

// Store abstracts persistence for the conversation pipeline.
// Implementations must preserve message append order and serialize writes
// within a session.
type Store interface {
	CreateSession(ctx context.Context) (string, error)
	CloseSession(ctx context.Context, sessionID string) error
	AppendMessage(ctx context.Context, sessionID, sender, content string) error
	Messages(ctx context.Context, sessionID string) ([]Message, error)
	UpsertProfile(ctx context.Context, email, fullName, phone string) (uint, error)
	CreateBooking(ctx context.Context, profileID uint, sessionID string, scheduledFor *time.Time) (uint, error)
	PendingReminders(ctx context.Context) ([]PendingReminder, error)
	MarkReminderSent(ctx context.Context, bookingID uint) error
}
