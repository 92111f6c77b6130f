package auction

import (
	"context"
	"errors"
	"fmt"

	"rentauction/internal/auctionerrors"
	"rentauction/internal/models"
)

type PlaceBidInput struct {
	AuctionID        string  `json:"auction_id"`
	BidderID         string  `json:"bidder_id"`
	Amount           float64 `json:"amount"`
	IsAutoBid        bool    `json:"is_auto_bid"`
	MaxAutoBidAmount float64 `json:"max_auto_bid_amount"`
}

func (in PlaceBidInput) validate() error {
	switch {
	case in.AuctionID == "":
		return auctionerrors.Invalid("auction_id is required")
	case in.BidderID == "":
		return auctionerrors.Invalid("bidder_id is required")
	case !models.ValidAmount(in.Amount):
		return auctionerrors.Invalid("amount must be a positive finite number")
	case in.IsAutoBid && !models.ValidAmount(in.MaxAutoBidAmount):
		return auctionerrors.Invalid("max_auto_bid_amount must be a positive finite number")
	case in.IsAutoBid && in.MaxAutoBidAmount < in.Amount:
		return auctionerrors.Invalid("max_auto_bid_amount must be at least amount")
	case !in.IsAutoBid && in.MaxAutoBidAmount != 0:
		return auctionerrors.Invalid("max_auto_bid_amount requires is_auto_bid")
	}
	return nil
}

// PlaceBid admits one bid. Every check and the append run under the
// auction's lock against a single snapshot, so two bids can never both be
// judged against the same highest bid.
func (svc *auctionService) PlaceBid(ctx context.Context, in PlaceBidInput) (*models.Bid, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var placed models.Bid
	err := svc.withAuctionLock(ctx, in.AuctionID, func(ctx context.Context) error {
		now := svc.clock.Now()
		a, err := svc.load(ctx, in.AuctionID)
		if errors.Is(err, auctionerrors.ErrAuctionNotFound) {
			return fmt.Errorf("%w: %w", auctionerrors.ErrAuctionNotActive, err)
		}
		if err != nil {
			return err
		}
		if _, err := svc.advanceLocked(ctx, a, now); err != nil {
			return err
		}

		// 1. live
		if !a.Live(now) {
			return fmt.Errorf("%w: auction %s is %s", auctionerrors.ErrAuctionNotActive, a.ID, a.Status)
		}
		// 2. tenant
		roles, err := svc.users.Roles(ctx, in.BidderID)
		if err != nil {
			return storeErr("resolve roles", err)
		}
		if !roles.Has(models.RoleTenant) {
			return fmt.Errorf("%w: %s lacks the tenant role", auctionerrors.ErrBidderNotEligible, in.BidderID)
		}
		// 3. not the owner
		if in.BidderID == a.OwnerID {
			return fmt.Errorf("%w: owner cannot bid on own apartment", auctionerrors.ErrBidderNotEligible)
		}
		// 4. capacity
		if !a.HasActiveBidFrom(in.BidderID) {
			if n := a.BidderCount(); n >= a.MaxBidders {
				return &auctionerrors.CapacityExceededError{Current: n, Max: a.MaxBidders}
			}
		}
		// 5. amount
		if minimum := a.MinimumNextBid(); in.Amount < minimum {
			return &auctionerrors.BidTooLowError{Amount: in.Amount, Minimum: minimum}
		}

		bid := models.Bid{
			ID:        svc.newID(),
			AuctionID: a.ID,
			BidderID:  in.BidderID,
			Amount:    in.Amount,
			BidTime:   now,
			IsAutoBid: in.IsAutoBid,
		}
		if in.IsAutoBid {
			bid.MaxAutoBidAmount = in.MaxAutoBidAmount
		}
		if ctx.Err() != nil {
			return auctionerrors.Infra("append bid", context.Cause(ctx))
		}
		placed, err = svc.store.AppendBid(ctx, bid)
		return storeErr("append bid", err)
	})
	if err != nil {
		return nil, err
	}

	svc.publish(ctx, placed.AuctionID, models.EventBidPlaced, map[string]any{
		"bid_id":    placed.ID,
		"bidder_id": placed.BidderID,
		"amount":    placed.Amount,
		"bid_time":  placed.BidTime,
	})
	return &placed, nil
}

// DropBid marks a bid dropped. Only its bidder or an admin may do so, and
// only while the auction is active.
func (svc *auctionService) DropBid(ctx context.Context, auctionID, bidID, requesterID string) error {
	if auctionID == "" || bidID == "" || requesterID == "" {
		return auctionerrors.Invalid("auction_id, bid_id and requester_id are required")
	}

	var (
		dropped models.Bid
		changed bool
	)
	err := svc.withAuctionLock(ctx, auctionID, func(ctx context.Context) error {
		now := svc.clock.Now()
		a, err := svc.load(ctx, auctionID)
		if err != nil {
			return err
		}
		if _, err := svc.advanceLocked(ctx, a, now); err != nil {
			return err
		}
		if !a.Live(now) {
			return fmt.Errorf("%w: auction %s is %s", auctionerrors.ErrAuctionNotActive, a.ID, a.Status)
		}

		idx := -1
		for i := range a.Bids {
			if a.Bids[i].ID == bidID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("drop bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
		}
		dropped = a.Bids[idx]

		if dropped.BidderID != requesterID {
			roles, err := svc.users.Roles(ctx, requesterID)
			if err != nil {
				return storeErr("resolve roles", err)
			}
			if !roles.Has(models.RoleAdmin) {
				return fmt.Errorf("%w: only the bidder or an admin may drop a bid", auctionerrors.ErrForbidden)
			}
		}
		if dropped.Dropped {
			return nil
		}
		if err := svc.store.DropBid(ctx, auctionID, bidID); err != nil {
			return storeErr("drop bid", err)
		}
		changed = true
		return nil
	})
	if err != nil || !changed {
		return err
	}

	svc.publish(ctx, auctionID, models.EventBidDropped, map[string]any{
		"bid_id":    dropped.ID,
		"bidder_id": dropped.BidderID,
	})
	return nil
}
