package outbox

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/config"
	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	txMocks "github.com/SergeyBogomolovv/storefront-service/pkg/trm/mocks"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	pending []entities.OutboxMessage
	sent    []int64
}

func (s *fakeStore) FetchPending(_ context.Context, limit int) ([]entities.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.OutboxMessage
	for _, m := range s.pending {
		if len(out) == limit {
			break
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *fakeStore) MarkSent(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, ids...)
	done := make(map[int64]bool, len(ids))
	for _, id := range ids {
		done[id] = true
	}
	kept := s.pending[:0]
	for _, m := range s.pending {
		if !done[m.ID] {
			kept = append(kept, m)
		}
	}
	s.pending = kept
	return nil
}

func (s *fakeStore) sentIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.sent...)
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []kafka.Message
	failures int
}

func (p *fakePublisher) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failures > 0 {
		p.failures--
		return errors.New("leader not available")
	}
	p.messages = append(p.messages, msgs...)
	return nil
}

func passThrough(t *testing.T) *txMocks.MockManager {
	tx := txMocks.NewMockManager(t)
	tx.EXPECT().
		Do(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, cb func(ctx context.Context) error) error {
			return cb(ctx)
		}).Maybe()
	return tx
}

func pending(n int) []entities.OutboxMessage {
	out := make([]entities.OutboxMessage, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, entities.OutboxMessage{
			ID:      int64(i),
			EventID: "evt",
			Topic:   entities.TopicOrderConfirmation,
			Key:     "order",
			Payload: []byte(`{}`),
		})
	}
	return out
}

func newTestRelay(t *testing.T, store Store, pub Publisher, batch int) *relay {
	r := NewRelay(slog.New(slog.NewTextHandler(io.Discard, nil)), passThrough(t), store, pub,
		config.Outbox{PollInterval: 10 * time.Millisecond, BatchSize: batch})
	r.retry.InitialDelay = time.Millisecond
	return r
}

func TestRelay_Flush(t *testing.T) {
	t.Run("publishes and marks batch", func(t *testing.T) {
		store := &fakeStore{pending: pending(3)}
		pub := &fakePublisher{}

		n, err := newTestRelay(t, store, pub, 2).Flush(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []int64{1, 2}, store.sentIDs())

		require.Len(t, pub.messages, 2)
		assert.Equal(t, entities.TopicOrderConfirmation, pub.messages[0].Topic)
		assert.Equal(t, []byte("order"), pub.messages[0].Key)
		assert.Equal(t, "event_id", pub.messages[0].Headers[0].Key)
	})

	t.Run("empty outbox", func(t *testing.T) {
		store := &fakeStore{}
		n, err := newTestRelay(t, store, &fakePublisher{}, 10).Flush(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("transient publish failure is retried", func(t *testing.T) {
		store := &fakeStore{pending: pending(1)}
		pub := &fakePublisher{failures: 2}

		n, err := newTestRelay(t, store, pub, 10).Flush(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("messages stay pending when kafka is down", func(t *testing.T) {
		store := &fakeStore{pending: pending(1)}
		pub := &fakePublisher{failures: 10}

		_, err := newTestRelay(t, store, pub, 10).Flush(context.Background())
		require.Error(t, err)
		assert.Empty(t, store.sentIDs())
	})
}

func TestRelay_Start(t *testing.T) {
	store := &fakeStore{pending: pending(5)}
	pub := &fakePublisher{}
	r := newTestRelay(t, store, pub, 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Start(ctx) }()

	assert.Eventually(t, func() bool { return len(store.sentIDs()) == 5 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
