// Package notify broadcasts auction events to subscribers. Delivery is best
// effort: a failed publish never fails the operation that produced the event.
package notify

//go:generate mockgen -destination=mock_notifier.go -package=notify rentauction/internal/notify Notifier

import (
	"context"

	"rentauction/internal/models"
)

type Notifier interface {
	Publish(ctx context.Context, auctionID string, ev models.Event) error
}

// Channel is the pub/sub channel carrying one auction's events.
func Channel(auctionID string) string {
	return "auc:" + auctionID + ":events"
}
