package repository

import (
	"rentauction/internal/auctionerrors"
	"rentauction/internal/models"
)

// bidState summarises an auction's committed, non-dropped bids.
type bidState struct {
	startingPrice float64
	increment     float64
	maxBidders    int
	bids          int
	highest       float64
	bidders       int
	hasBid        bool // the incoming bidder already holds a slot
}

func (st bidState) minimum() float64 {
	if st.bids == 0 {
		return st.startingPrice
	}
	return models.RoundCents(st.highest + st.increment)
}

// admit is the store-side guard for a bid the service already validated
// under the auction lock. It holds even if that lock was lost.
func (st bidState) admit(bid models.Bid) error {
	if !st.hasBid && st.bidders >= st.maxBidders {
		return &auctionerrors.CapacityExceededError{Current: st.bidders, Max: st.maxBidders}
	}
	if minimum := st.minimum(); bid.Amount < minimum {
		return &auctionerrors.BidTooLowError{Amount: bid.Amount, Minimum: minimum}
	}
	return nil
}
