package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/golang/mock/gomock"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentauction/internal/models"
)

func sampleEvent() models.Event {
	return models.Event{
		Type:      models.EventBidPlaced,
		AuctionID: "a1",
		At:        time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Data:      map[string]any{"amount": 550.0, "bidder_id": "t1"},
	}
}

func TestRedisPublisher_Publish(t *testing.T) {
	t.Parallel()
	rdb, mock := redismock.NewClientMock()
	ev := sampleEvent()
	payload, err := json.Marshal(ev)
	require.NoError(t, err)

	mock.ExpectPublish("auc:a1:events", string(payload)).SetVal(1)

	p := NewRedisPublisher(rdb)
	require.NoError(t, p.Publish(context.Background(), "a1", ev))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisPublisher_PublishError(t *testing.T) {
	t.Parallel()
	rdb, mock := redismock.NewClientMock()
	ev := sampleEvent()
	payload, _ := json.Marshal(ev)

	mock.ExpectPublish("auc:a1:events", string(payload)).SetErr(errors.New("connection refused"))

	err := NewRedisPublisher(rdb).Publish(context.Background(), "a1", ev)
	require.EqualError(t, err, "connection refused")
}

type fakeChannel struct {
	mu       sync.Mutex
	exchange string
	key      string
	msg      amqp.Publishing
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exchange, f.key, f.msg = exchange, key, msg
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher_RoutesByEventType(t *testing.T) {
	t.Parallel()
	ch := &fakeChannel{}
	p := &AMQPPublisher{ch: ch}

	require.NoError(t, p.Publish(context.Background(), "a1", sampleEvent()))
	require.Equal(t, Exchange, ch.exchange)
	require.Equal(t, "auction.bid_placed", ch.key)
	require.Equal(t, "application/json", ch.msg.ContentType)
	require.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	require.Equal(t, "a1", ch.msg.Headers["auction_id"])

	var got models.Event
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	require.Equal(t, models.EventBidPlaced, got.Type)

	require.NoError(t, p.Close())
	require.True(t, ch.closed)
}

func TestDispatcher_DeliversAsync(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	next := NewMockNotifier(ctrl)

	var wg sync.WaitGroup
	wg.Add(3)
	next.EXPECT().Publish(gomock.Any(), "a1", gomock.Any()).Times(3).
		DoAndReturn(func(ctx context.Context, _ string, _ models.Event) error {
			defer wg.Done()
			// the caller's context was cancelled before delivery
			assert.NoError(t, ctx.Err())
			return nil
		})

	d := NewDispatcher(next, 2)
	ctx, cancel := context.WithCancel(context.Background())
	for i := 0; i < 3; i++ {
		require.NoError(t, d.Publish(ctx, "a1", sampleEvent()))
	}
	cancel()
	wg.Wait()
	d.Close()
}

func TestDispatcher_SwallowsErrors(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	next := NewMockNotifier(ctrl)
	next.EXPECT().Publish(gomock.Any(), "a1", gomock.Any()).Return(errors.New("broker down"))

	d := NewDispatcher(next, 1)
	require.NoError(t, d.Publish(context.Background(), "a1", sampleEvent()))
	d.Close()

	// after Close events are dropped, not delivered
	require.NoError(t, d.Publish(context.Background(), "a1", sampleEvent()))
	d.Close()
}
