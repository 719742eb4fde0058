package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SQLStore is the SQLite-backed Store.
type SQLStore struct {
	db *gorm.DB
}

var _ Store = (*SQLStore)(nil)

// Open opens (or creates) the database at path and migrates the schema.
func Open(path string) (*SQLStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// keep the interactive prompt free of query logging
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Session{}, &Message{}, &Profile{}, &Booking{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) CreateSession(ctx context.Context) (string, error) {
	sess := Session{ID: uuid.NewString(), Status: StatusActive}
	if err := s.db.WithContext(ctx).Create(&sess).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sess.ID, nil
}

func (s *SQLStore) CloseSession(ctx context.Context, sessionID string) error {
	res := s.db.WithContext(ctx).Model(&Session{}).
		Where("id = ?", sessionID).
		Update("status", StatusClosed)
	if res.Error != nil {
		return fmt.Errorf("close session: %w", res.Error)
	}
	return nil
}

// AppendMessage records one turn at the next free position in the session.
func (s *SQLStore) AppendMessage(ctx context.Context, sessionID, sender, content string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Message{}).Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
			return fmt.Errorf("count messages: %w", err)
		}
		msg := Message{
			SessionID: sessionID,
			Seq:       int(count) + 1,
			Sender:    sender,
			Content:   content,
		}
		if err := tx.Create(&msg).Error; err != nil {
			return fmt.Errorf("append message: %w", err)
		}
		return nil
	})
}

func (s *SQLStore) Messages(ctx context.Context, sessionID string) ([]Message, error) {
	var msgs []Message
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("seq ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return msgs, nil
}

// UpsertProfile creates a profile keyed by email, or overwrites name and
// phone on the existing row. The latest extraction always wins, including
// empty values.
func (s *SQLStore) UpsertProfile(ctx context.Context, email, fullName, phone string) (uint, error) {
	p := Profile{Email: email, FullName: fullName, Phone: phone}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "phone"}),
	}).Create(&p).Error
	if err != nil {
		return 0, fmt.Errorf("upsert profile: %w", err)
	}
	if p.ID == 0 {
		// conflict path: fetch the row the update landed on
		if err := s.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
			return 0, fmt.Errorf("load profile after upsert: %w", err)
		}
	}
	return p.ID, nil
}

func (s *SQLStore) CreateBooking(ctx context.Context, profileID uint, sessionID string, scheduledFor *time.Time) (uint, error) {
	b := Booking{ProfileID: profileID, SessionID: sessionID, ScheduledFor: scheduledFor}
	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		return 0, fmt.Errorf("create booking: %w", err)
	}
	return b.ID, nil
}

func (s *SQLStore) PendingReminders(ctx context.Context) ([]PendingReminder, error) {
	var out []PendingReminder
	err := s.db.WithContext(ctx).
		Table("bookings").
		Select("bookings.id AS booking_id, bookings.scheduled_for, profiles.full_name, profiles.email").
		Joins("JOIN profiles ON profiles.id = bookings.profile_id").
		Where("bookings.reminder_sent = ? AND bookings.scheduled_for IS NOT NULL", false).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("load pending reminders: %w", err)
	}
	return out, nil
}

func (s *SQLStore) MarkReminderSent(ctx context.Context, bookingID uint) error {
	res := s.db.WithContext(ctx).Model(&Booking{}).
		Where("id = ?", bookingID).
		Update("reminder_sent", true)
	if res.Error != nil {
		return fmt.Errorf("mark reminder sent: %w", res.Error)
	}
	return nil
}
