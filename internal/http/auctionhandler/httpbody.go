package auctionhandler

import "time"

type CreateAuctionBody struct {
	ApartmentID         string    `json:"apartment_id"          binding:"required"`
	RequesterID         string    `json:"requester_id"          binding:"required"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"              binding:"required"`
	StartingPrice       float64   `json:"starting_price"        binding:"required,gt=0"`
	MinimumBidIncrement float64   `json:"minimum_bid_increment" binding:"required,gt=0"`
	RentalStartDate     time.Time `json:"rental_start_date"     binding:"required"`
	RentalEndDate       time.Time `json:"rental_end_date"       binding:"required"`
	MaxBidders          int       `json:"max_bidders"           binding:"omitempty,gte=1"`
}

type PlaceBidBody struct {
	BidderID         string  `json:"bidder_id"           binding:"required"`
	Amount           float64 `json:"amount"              binding:"required,gt=0"`
	IsAutoBid        bool    `json:"is_auto_bid"`
	MaxAutoBidAmount float64 `json:"max_auto_bid_amount" binding:"omitempty,gte=0"`
}

type RequesterBody struct {
	RequesterID string `json:"requester_id" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	// Set for bids below the current minimum.
	MinimumBid *float64 `json:"minimum_bid,omitempty"`
	// Set when the bidder cap is reached.
	CurrentBidders *int `json:"current_bidders,omitempty"`
	MaxBidders     *int `json:"max_bidders,omitempty"`
}

type ListAuctionsQuery struct {
	Status string `form:"status"  binding:"omitempty,oneof=PENDING ACTIVE COMPLETED CANCELLED"`
	Limit  int    `form:"limit,default=10"  binding:"gte=0,lte=100"`
	Offset int    `form:"offset,default=0"  binding:"gte=0"`
}
