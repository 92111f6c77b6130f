package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"rentauction/internal/models"
)

// RedisPublisher publishes JSON events on auc:<id>:events, the channel the
// WebSocket fan-out subscribes to.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, auctionID string, ev models.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, Channel(auctionID), string(payload)).Err()
}
