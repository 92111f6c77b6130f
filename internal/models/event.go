package models

import "time"

type EventType string

const (
	EventAuctionCreated   EventType = "auction.created"
	EventAuctionActivated EventType = "auction.activated"
	EventAuctionCompleted EventType = "auction.completed"
	EventAuctionCancelled EventType = "auction.cancelled"
	EventBidPlaced        EventType = "auction.bid_placed"
	EventBidDropped       EventType = "auction.bid_dropped"
	EventPaymentConfirmed EventType = "auction.payment_confirmed"
	EventFineIssued       EventType = "auction.fine_issued"
)

// Event is the payload broadcast to auction subscribers.
type Event struct {
	Type      EventType      `json:"event"`
	AuctionID string         `json:"auction_id"`
	At        time.Time      `json:"at"`
	Data      map[string]any `json:"data,omitempty"`
}
