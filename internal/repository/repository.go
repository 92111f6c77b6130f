package repository

//go:generate mockgen -destination=mock_store.go -package=repository rentauction/internal/repository AuctionStore,UserDirectory

import (
	"context"
	"time"

	"rentauction/internal/models"
)

// TransitionPayload is applied in the same unit of work as a status change.
// Nothing in it is applied when the status compare-and-set loses.
type TransitionPayload struct {
	At          time.Time
	Rental      *models.Rental // inserted and linked to the auction when set
	ReleaseHold bool
}

// AuctionStore is the durable storage of the Auction aggregate (auction, bids,
// hold) and of auction-born rentals. Every method is a point transaction.
type AuctionStore interface {
	GetApartment(ctx context.Context, apartmentID string) (models.Apartment, error)

	// CreateAuction inserts the auction and its hold, failing with
	// ErrApartmentUnavailable when the range overlaps a live hold or rental.
	CreateAuction(ctx context.Context, a models.Auction) error
	Load(ctx context.Context, auctionID string) (*models.Auction, error)
	ListAuctions(ctx context.Context, status models.AuctionStatus, limit, offset int) ([]models.Auction, error)
	// ListDueAuctions returns ids of PENDING auctions past their start and
	// ACTIVE auctions past their end.
	ListDueAuctions(ctx context.Context, now time.Time, limit int) ([]string, error)

	// AppendBid stores the bid and assigns its Seq. It refuses with
	// ErrAuctionNotActive when the auction is no longer ACTIVE, and re-checks
	// capacity and the minimum next bid against the committed bids.
	AppendBid(ctx context.Context, bid models.Bid) (models.Bid, error)
	DropBid(ctx context.Context, auctionID, bidID string) error

	// Transition moves the auction to `to` iff its status is one of `from`,
	// and applies the payload atomically with it. It reports whether it won.
	Transition(ctx context.Context, auctionID string, from []models.AuctionStatus, to models.AuctionStatus, p TransitionPayload) (bool, error)

	GetRental(ctx context.Context, rentalID string) (*models.Rental, error)
	FindOverdueAuctionRentals(ctx context.Context, now time.Time) ([]models.Rental, error)
	// IssueFine and ConfirmAuctionPayment are compare-and-set on the pair
	// (auction_payment_confirmed, auction_fine_issued); exactly one can win.
	IssueFine(ctx context.Context, rentalID string, amount float64, now time.Time) (bool, error)
	ConfirmAuctionPayment(ctx context.Context, rentalID string, now time.Time) (bool, error)
	SetRentalStatus(ctx context.Context, rentalID string, from, to models.RentalStatus) (bool, error)
}

// UserDirectory resolves a user's capabilities.
type UserDirectory interface {
	Roles(ctx context.Context, userID string) (models.RoleSet, error)
}
