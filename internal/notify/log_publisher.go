package notify

import (
	"context"

	"go.uber.org/zap"

	"rentauction/internal/models"
)

// LogPublisher writes events to the global logger. Used when no broker is
// configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, auctionID string, ev models.Event) error {
	zap.L().Info("auction_event",
		zap.String("auction_id", auctionID),
		zap.String("event", string(ev.Type)),
		zap.Time("at", ev.At),
		zap.Any("data", ev.Data),
	)
	return nil
}
