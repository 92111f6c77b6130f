package models

import "time"

// Bid is an offer by a tenant against one auction. Bids are never deleted;
// a dropped bid stays for audit but no longer counts.
type Bid struct {
	ID               string    `json:"id"`
	AuctionID        string    `json:"auction_id"`
	BidderID         string    `json:"bidder_id"`
	Amount           float64   `json:"amount"`
	BidTime          time.Time `json:"bid_time"`
	IsAutoBid        bool      `json:"is_auto_bid"`
	MaxAutoBidAmount float64   `json:"max_auto_bid_amount,omitempty"`
	Dropped          bool      `json:"dropped"`
	Seq              int64     `json:"seq"`
}
