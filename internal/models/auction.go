package models

import (
	"math"
	"time"
)

type AuctionStatus string

const (
	AuctionPending   AuctionStatus = "PENDING"
	AuctionActive    AuctionStatus = "ACTIVE"
	AuctionCompleted AuctionStatus = "COMPLETED"
	AuctionCancelled AuctionStatus = "CANCELLED"
)

// DefaultMaxBidders applies when an auction is created without a capacity.
const DefaultMaxBidders = 10

// Terminal reports whether no further transition is allowed.
func (s AuctionStatus) Terminal() bool {
	return s == AuctionCompleted || s == AuctionCancelled
}

// Auction is an open ascending-price auction for the right to rent one
// apartment over [RentalStartDate, RentalEndDate).
type Auction struct {
	ID                  string        `json:"id"`
	ApartmentID         string        `json:"apartment_id"`
	OwnerID             string        `json:"owner_id"`
	StartTime           time.Time     `json:"start_time"`
	EndTime             time.Time     `json:"end_time"`
	StartingPrice       float64       `json:"starting_price"`
	MinimumBidIncrement float64       `json:"minimum_bid_increment"`
	RentalStartDate     time.Time     `json:"rental_start_date"`
	RentalEndDate       time.Time     `json:"rental_end_date"`
	Status              AuctionStatus `json:"status"`
	MaxBidders          int           `json:"max_bidders"`
	Bids                []Bid         `json:"bids,omitempty"`
	RentalID            string        `json:"rental_id,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// Live reports whether bids may be admitted at now.
func (a *Auction) Live(now time.Time) bool {
	return a.Status == AuctionActive && !now.Before(a.StartTime) && now.Before(a.EndTime)
}

// ActiveBids returns the non-dropped bids in commit order.
func (a *Auction) ActiveBids() []Bid {
	out := make([]Bid, 0, len(a.Bids))
	for _, b := range a.Bids {
		if !b.Dropped {
			out = append(out, b)
		}
	}
	return out
}

// HighestBid returns the largest non-dropped amount, or false when there is none.
func (a *Auction) HighestBid() (float64, bool) {
	var (
		highest float64
		found   bool
	)
	for _, b := range a.Bids {
		if b.Dropped {
			continue
		}
		if !found || b.Amount > highest {
			highest = b.Amount
			found = true
		}
	}
	return highest, found
}

// MinimumNextBid is the smallest amount the next bid must reach. The
// starting price is the floor until a bid stands.
func (a *Auction) MinimumNextBid() float64 {
	highest, ok := a.HighestBid()
	if !ok {
		return a.StartingPrice
	}
	return RoundCents(highest + a.MinimumBidIncrement)
}

// ValidAmount reports whether v is a finite, strictly positive money amount.
func ValidAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// RoundCents rounds a money amount to two decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// BidderCount counts distinct bidders with at least one non-dropped bid.
func (a *Auction) BidderCount() int {
	seen := make(map[string]struct{}, len(a.Bids))
	for _, b := range a.Bids {
		if !b.Dropped {
			seen[b.BidderID] = struct{}{}
		}
	}
	return len(seen)
}

// HasActiveBidFrom reports whether bidderID already occupies a bidder slot.
func (a *Auction) HasActiveBidFrom(bidderID string) bool {
	for _, b := range a.Bids {
		if !b.Dropped && b.BidderID == bidderID {
			return true
		}
	}
	return false
}
