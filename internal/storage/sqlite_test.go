package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	// a plain :memory: DSN would give every pooled connection its own database
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return s
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.CreateSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	var sess Session
	require.NoError(t, s.db.First(&sess, "id = ?", id).Error)
	require.Equal(t, StatusActive, sess.Status)

	require.NoError(t, s.CloseSession(ctx, id))
	require.NoError(t, s.db.First(&sess, "id = ?", id).Error)
	require.Equal(t, StatusClosed, sess.Status)
}

func TestMessagesPreserveAppendOrder(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.CreateSession(ctx)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		sender := SenderUser
		if i%2 == 1 {
			sender = SenderBot
		}
		require.NoError(t, s.AppendMessage(ctx, id, sender, fmt.Sprintf("turn %d", i)))
	}

	msgs, err := s.Messages(ctx, id)
	require.NoError(t, err)
	require.Len(t, msgs, 10)
	for i, m := range msgs {
		require.Equal(t, fmt.Sprintf("turn %d", i), m.Content)
		require.Equal(t, i+1, m.Seq)
	}
}

func TestMessagesScopedToSession(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	a, err := s.CreateSession(ctx)
	require.NoError(t, err)
	b, err := s.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, s.AppendMessage(ctx, a, SenderUser, "hello from a"))
	require.NoError(t, s.AppendMessage(ctx, b, SenderUser, "hello from b"))

	msgs, err := s.Messages(ctx, a)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "hello from a", msgs[0].Content)
}

func TestUpsertProfileIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first, err := s.UpsertProfile(ctx, "jane@example.com", "Jane Doe", "555-1234")
	require.NoError(t, err)

	second, err := s.UpsertProfile(ctx, "jane@example.com", "Jane D", "")
	require.NoError(t, err)
	require.Equal(t, first, second)

	var count int64
	require.NoError(t, s.db.Model(&Profile{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	var p Profile
	require.NoError(t, s.db.First(&p, "email = ?", "jane@example.com").Error)
	require.Equal(t, "Jane D", p.FullName)
	require.Equal(t, "", p.Phone)
}

func TestPendingReminders(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	sessionID, err := s.CreateSession(ctx)
	require.NoError(t, err)
	profileID, err := s.UpsertProfile(ctx, "jane@example.com", "Jane Doe", "")
	require.NoError(t, err)

	when := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	due, err := s.CreateBooking(ctx, profileID, sessionID, &when)
	require.NoError(t, err)
	_, err = s.CreateBooking(ctx, profileID, sessionID, nil)
	require.NoError(t, err)

	pending, err := s.PendingReminders(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, due, pending[0].BookingID)
	require.Equal(t, "Jane Doe", pending[0].FullName)
	require.Equal(t, "jane@example.com", pending[0].Email)

	require.NoError(t, s.MarkReminderSent(ctx, due))
	pending, err = s.PendingReminders(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)
}
