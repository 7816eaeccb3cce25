package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/backend/internal/infrastructure/outbox"
)

type flakySender struct {
	failures int
	sent     []string
}

func (s *flakySender) Send(to, subject, body string) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, to)
	return nil
}

type fixedHealth bool

func (h fixedHealth) IsOnline() bool { return bool(h) }

func newTestDispatcher(t *testing.T, sender SMTPSender, health ConnectionHealth) (*MailDispatcher, *outbox.Store) {
	t.Helper()

	store, err := outbox.Open(filepath.Join(t.TempDir(), "outbox.db"), "mail")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	d := NewMailDispatcher(store, health, sender, nil, DispatcherConfig{
		Interval:   time.Minute,
		BatchSize:  10,
		MaxRetries: 3,
		Retention:  24 * time.Hour,
	})
	return d, store
}

func TestSendMailDeliversImmediatelyWhenPossible(t *testing.T) {
	sender := &flakySender{}
	d, store := newTestDispatcher(t, sender, fixedHealth(true))

	require.NoError(t, d.SendMail(context.Background(), "alice@example.com", "hi", "body"))

	assert.Equal(t, []string{"alice@example.com"}, sender.sent)
	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size, "nothing queued on direct delivery")
}

func TestSendMailQueuesOnFailure(t *testing.T) {
	sender := &flakySender{failures: 1}
	d, store := newTestDispatcher(t, sender, fixedHealth(true))

	require.NoError(t, d.SendMail(context.Background(), "alice@example.com", "hi", "body"),
		"delivery failure must not fail the caller")

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
	assert.Empty(t, sender.sent)
}

func TestDrainDeliversQueuedMail(t *testing.T) {
	sender := &flakySender{failures: 1}
	d, _ := newTestDispatcher(t, sender, fixedHealth(true))

	require.NoError(t, d.SendMail(context.Background(), "alice@example.com", "hi", "body"))
	require.NoError(t, d.Drain())

	assert.Equal(t, []string{"alice@example.com"}, sender.sent)
	assert.Zero(t, d.Size())
}

func TestDrainSkipsWhileOffline(t *testing.T) {
	sender := &flakySender{failures: 1}
	d, _ := newTestDispatcher(t, sender, fixedHealth(false))

	require.NoError(t, d.SendMail(context.Background(), "alice@example.com", "hi", "body"))
	require.NoError(t, d.Drain())

	assert.Empty(t, sender.sent)
	assert.Equal(t, 1, d.Size(), "queued mail waits for connectivity")
}

func TestDrainDropsAfterMaxRetries(t *testing.T) {
	sender := &flakySender{failures: 100}
	d, _ := newTestDispatcher(t, sender, fixedHealth(true))

	require.NoError(t, d.SendMail(context.Background(), "alice@example.com", "hi", "body"))

	for i := 0; i < 3; i++ {
		require.NoError(t, d.Drain())
	}

	assert.Zero(t, d.Size(), "message dropped once retries are exhausted")
}
