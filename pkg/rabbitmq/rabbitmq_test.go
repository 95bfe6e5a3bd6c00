package rabbitmq_test

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"bloglist/internal/models"
	"bloglist/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockChannel is a mock implementation of rabbitmq.Channel
type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	a := m.Called(name, durable, autoDelete, exclusive, noWait, args)
	return amqp.Queue{Name: name}, a.Error(0)
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	a := m.Called(exchange, key, mandatory, immediate, msg)
	return a.Error(0)
}

func (m *MockChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	a := m.Called(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).(<-chan amqp.Delivery), a.Error(1)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

// recordingAcknowledger remembers how each delivery was settled.
type recordingAcknowledger struct {
	mu      sync.Mutex
	acked   []uint64
	requeue []uint64
	dropped []uint64
	done    chan struct{}
}

func (r *recordingAcknowledger) settle() {
	r.done <- struct{}{}
}

func (r *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	r.mu.Lock()
	r.acked = append(r.acked, tag)
	r.mu.Unlock()
	r.settle()
	return nil
}

func (r *recordingAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	r.mu.Lock()
	if requeue {
		r.requeue = append(r.requeue, tag)
	} else {
		r.dropped = append(r.dropped, tag)
	}
	r.mu.Unlock()
	r.settle()
	return nil
}

func (r *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	return r.Nack(tag, false, requeue)
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newClient(t *testing.T) (*rabbitmq.Client, *MockChannel) {
	t.Helper()
	ch := new(MockChannel)
	ch.On("QueueDeclare", rabbitmq.BlogEventsQueue, true, false, false, false, amqp.Table(nil)).Return(nil).Once()
	client, err := rabbitmq.NewClientWithChannel(ch)
	require.NoError(t, err)
	return client, ch
}

func TestNewClientWithChannel_DeclareFails(t *testing.T) {
	ch := new(MockChannel)
	ch.On("QueueDeclare", rabbitmq.BlogEventsQueue, true, false, false, false, amqp.Table(nil)).Return(errors.New("access refused")).Once()
	ch.On("Close").Return(nil).Once()

	_, err := rabbitmq.NewClientWithChannel(ch)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to declare blog_events")
	ch.AssertExpectations(t)
}

func TestPublishBlogEvent(t *testing.T) {
	client, ch := newClient(t)
	event := models.BlogEvent{Type: models.EventBlogCreated, BlogID: "blog-1", UserID: "user-1", OccurredAt: time.Now().UTC()}

	ch.On("Publish", "", rabbitmq.BlogEventsQueue, false, false, mock.MatchedBy(func(msg amqp.Publishing) bool {
		var got models.BlogEvent
		if err := json.Unmarshal(msg.Body, &got); err != nil {
			return false
		}
		return msg.ContentType == "application/json" &&
			msg.DeliveryMode == amqp.Persistent &&
			msg.Type == models.EventBlogCreated &&
			got.BlogID == "blog-1" && got.UserID == "user-1"
	})).Return(nil).Once()

	assert.NoError(t, client.PublishBlogEvent(event))

	ch.On("Publish", "", rabbitmq.BlogEventsQueue, false, false, mock.Anything).Return(errors.New("channel closed")).Once()
	err := client.PublishBlogEvent(event)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish message")
	ch.AssertExpectations(t)
}

func TestConsumeBlogEvents(t *testing.T) {
	client, ch := newClient(t)
	deliveries := make(chan amqp.Delivery, 3)
	ch.On("Consume", rabbitmq.BlogEventsQueue, "", false, false, false, false, amqp.Table(nil)).
		Return((<-chan amqp.Delivery)(deliveries), nil).Once()

	ack := &recordingAcknowledger{done: make(chan struct{}, 3)}
	good, _ := json.Marshal(models.BlogEvent{Type: models.EventBlogDeleted, BlogID: "ok"})
	failing, _ := json.Marshal(models.BlogEvent{Type: models.EventBlogDeleted, BlogID: "fail"})

	handled := make(chan models.BlogEvent, 3)
	require.NoError(t, client.ConsumeBlogEvents(func(event models.BlogEvent) error {
		handled <- event
		if event.BlogID == "fail" {
			return errors.New("cannot process")
		}
		return nil
	}))

	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: good}
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: failing}
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 3, Body: []byte("not json")}
	close(deliveries)

	for i := 0; i < 3; i++ {
		select {
		case <-ack.done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for deliveries to be settled")
		}
	}

	ack.mu.Lock()
	defer ack.mu.Unlock()
	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Equal(t, []uint64{2}, ack.requeue)
	assert.Equal(t, []uint64{3}, ack.dropped)
	assert.Len(t, handled, 2)
	ch.AssertExpectations(t)
}

func TestClose(t *testing.T) {
	client, ch := newClient(t)
	ch.On("Close").Return(nil).Once()
	assert.NoError(t, client.Close())
	ch.AssertExpectations(t)
}

func TestLogBlogEvent(t *testing.T) {
	assert.NoError(t, rabbitmq.LogBlogEvent(models.BlogEvent{Type: models.EventBlogUpdated, BlogID: "b"}))
}
