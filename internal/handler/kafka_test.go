package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	mocks "github.com/SergeyBogomolovv/storefront-service/internal/handler/mocks"
	"github.com/SergeyBogomolovv/storefront-service/pkg/cache"
	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeReader отдаёт сообщения по очереди, затем io.EOF.
type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	committed []kafka.Message
}

func (r *fakeReader) FetchMessage(context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := r.messages[0]
	r.messages = r.messages[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

type fakeWriter struct {
	written []kafka.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func confirmationMessage(t *testing.T, eventID string) kafka.Message {
	t.Helper()
	value, err := json.Marshal(entities.OrderConfirmation{
		EventID:      eventID,
		OrderID:      "o1",
		Email:        "ann@example.com",
		Name:         "Ann",
		Items:        []entities.ConfirmationLine{{Name: "Mug", Quantity: 2, UnitPrice: "25.00", LineTotal: "50.00"}},
		Subtotal:     "50.00",
		Tax:          "5.75",
		ShippingCost: "5.00",
		Total:        "60.75",
	})
	require.NoError(t, err)
	return kafka.Message{Topic: entities.TopicOrderConfirmation, Key: []byte("o1"), Value: value}
}

func newTestKafkaHandler(reader messageReader, dlq messageWriter, notifier Notifier) *kafkaHandler {
	return &kafkaHandler{
		reader:   reader,
		dlq:      dlq,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate: validator.New(),
		notifier: notifier,
		handled:  cache.NewLRUCache[struct{}](100, time.Hour),
	}
}

func TestKafkaHandler_Consume(t *testing.T) {
	type MockBehavior func(n *mocks.MockNotifier)

	testCases := []struct {
		name         string
		messages     func(t *testing.T) []kafka.Message
		mockBehavior MockBehavior
		wantDLQ      int
	}{
		{
			name: "sends confirmation",
			messages: func(t *testing.T) []kafka.Message {
				return []kafka.Message{confirmationMessage(t, "e1")}
			},
			mockBehavior: func(n *mocks.MockNotifier) {
				n.EXPECT().SendOrderConfirmation(mock.Anything, mock.MatchedBy(func(e entities.OrderConfirmation) bool {
					return e.EventID == "e1" && e.Total == "60.75"
				})).Return(nil).Once()
			},
		},
		{
			name: "redelivered event is sent once",
			messages: func(t *testing.T) []kafka.Message {
				return []kafka.Message{confirmationMessage(t, "e1"), confirmationMessage(t, "e1")}
			},
			mockBehavior: func(n *mocks.MockNotifier) {
				n.EXPECT().SendOrderConfirmation(mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "mail failure goes to dlq",
			messages: func(t *testing.T) []kafka.Message {
				return []kafka.Message{confirmationMessage(t, "e1")}
			},
			mockBehavior: func(n *mocks.MockNotifier) {
				n.EXPECT().SendOrderConfirmation(mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
			},
			wantDLQ: 1,
		},
		{
			name: "malformed message goes to dlq",
			messages: func(t *testing.T) []kafka.Message {
				return []kafka.Message{{Topic: entities.TopicOrderConfirmation, Value: []byte(`{"event_id":`)}}
			},
			mockBehavior: func(n *mocks.MockNotifier) {},
			wantDLQ:      1,
		},
		{
			name: "invalid message goes to dlq",
			messages: func(t *testing.T) []kafka.Message {
				return []kafka.Message{{Topic: entities.TopicOrderConfirmation, Value: []byte(`{"event_id":"e1"}`)}}
			},
			mockBehavior: func(n *mocks.MockNotifier) {},
			wantDLQ:      1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			notifier := mocks.NewMockNotifier(t)
			tc.mockBehavior(notifier)

			msgs := tc.messages(t)
			reader := &fakeReader{messages: msgs}
			dlq := &fakeWriter{}

			newTestKafkaHandler(reader, dlq, notifier).Consume(context.Background())

			assert.Len(t, reader.committed, len(msgs), "every message is committed")
			require.Len(t, dlq.written, tc.wantDLQ)
			for _, m := range dlq.written {
				assert.Equal(t, entities.TopicOrderConfirmation+"-dlq", m.Topic)
			}
		})
	}
}

func TestKafkaHandler_RetriesAfterFailure(t *testing.T) {
	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().SendOrderConfirmation(mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
	notifier.EXPECT().SendOrderConfirmation(mock.Anything, mock.Anything).Return(nil).Once()

	reader := &fakeReader{messages: []kafka.Message{confirmationMessage(t, "e1"), confirmationMessage(t, "e1")}}
	newTestKafkaHandler(reader, &fakeWriter{}, notifier).Consume(context.Background())

	assert.Len(t, reader.committed, 2)
}
