package auction

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rentauction/internal/auctionerrors"
	"rentauction/internal/models"
	"rentauction/internal/repository"
)

type CreateAuctionInput struct {
	ApartmentID         string    `json:"apartment_id"`
	RequesterID         string    `json:"requester_id"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	StartingPrice       float64   `json:"starting_price"`
	MinimumBidIncrement float64   `json:"minimum_bid_increment"`
	RentalStartDate     time.Time `json:"rental_start_date"`
	RentalEndDate       time.Time `json:"rental_end_date"`
	MaxBidders          int       `json:"max_bidders"`
}

func (in *CreateAuctionInput) validate(now time.Time) error {
	if in.StartTime.IsZero() {
		in.StartTime = now
	}
	if in.MaxBidders == 0 {
		in.MaxBidders = models.DefaultMaxBidders
	}
	switch {
	case in.ApartmentID == "":
		return auctionerrors.Invalid("apartment_id is required")
	case in.RequesterID == "":
		return auctionerrors.Invalid("requester_id is required")
	case !models.ValidAmount(in.StartingPrice):
		return auctionerrors.Invalid("starting_price must be a positive finite number")
	case !models.ValidAmount(in.MinimumBidIncrement):
		return auctionerrors.Invalid("minimum_bid_increment must be a positive finite number")
	case !in.EndTime.After(in.StartTime):
		return auctionerrors.Invalid("end_time must be after start_time")
	case !in.EndTime.After(now):
		return auctionerrors.Invalid("end_time must be in the future")
	case !in.RentalEndDate.After(in.RentalStartDate):
		return auctionerrors.Invalid("rental_end_date must be after rental_start_date")
	case in.MaxBidders < 0:
		return auctionerrors.Invalid("max_bidders must be positive")
	}
	return nil
}

// CreateAuction opens a PENDING auction and places the apartment hold in the
// same store transaction.
func (svc *auctionService) CreateAuction(ctx context.Context, in CreateAuctionInput) (*models.Auction, error) {
	now := svc.clock.Now()
	if err := in.validate(now); err != nil {
		return nil, err
	}

	roles, err := svc.users.Roles(ctx, in.RequesterID)
	if err != nil {
		return nil, storeErr("resolve roles", err)
	}
	if !roles.Has(models.RoleOwner) {
		return nil, fmt.Errorf("%w: owner role required", auctionerrors.ErrForbidden)
	}
	apt, err := svc.store.GetApartment(ctx, in.ApartmentID)
	if err != nil {
		return nil, storeErr("get apartment", err)
	}
	if apt.OwnerID != in.RequesterID {
		return nil, fmt.Errorf("%w: apartment %s belongs to another owner", auctionerrors.ErrForbidden, apt.ID)
	}

	a := models.Auction{
		ID:                  svc.newID(),
		ApartmentID:         apt.ID,
		OwnerID:             apt.OwnerID,
		StartTime:           in.StartTime,
		EndTime:             in.EndTime,
		StartingPrice:       in.StartingPrice,
		MinimumBidIncrement: in.MinimumBidIncrement,
		RentalStartDate:     in.RentalStartDate,
		RentalEndDate:       in.RentalEndDate,
		Status:              models.AuctionPending,
		MaxBidders:          in.MaxBidders,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := svc.store.CreateAuction(ctx, a); err != nil {
		return nil, storeErr("create auction", err)
	}
	zap.L().Info("auction_created", zap.String("auction_id", a.ID), zap.String("apartment_id", a.ApartmentID))

	svc.armTimer(ctx, &a)
	svc.publish(ctx, a.ID, models.EventAuctionCreated, map[string]any{
		"apartment_id":   a.ApartmentID,
		"start_time":     a.StartTime,
		"end_time":       a.EndTime,
		"starting_price": a.StartingPrice,
	})
	return &a, nil
}

// advanceLocked applies every transition that is due at now to a, in order.
// A PENDING auction whose window already closed is activated then completed.
// The caller must hold the auction's lock.
func (svc *auctionService) advanceLocked(ctx context.Context, a *models.Auction, now time.Time) (*models.Rental, error) {
	if a.Status == models.AuctionPending && !now.Before(a.StartTime) {
		if err := svc.activateLocked(ctx, a, now); err != nil {
			return nil, err
		}
	}
	if a.Status == models.AuctionActive && !now.Before(a.EndTime) {
		return svc.completeLocked(ctx, a, now)
	}
	return nil, nil
}

func (svc *auctionService) activateLocked(ctx context.Context, a *models.Auction, now time.Time) error {
	ok, err := svc.store.Transition(ctx, a.ID,
		[]models.AuctionStatus{models.AuctionPending}, models.AuctionActive,
		repository.TransitionPayload{At: now})
	if err != nil {
		return storeErr("activate auction", err)
	}
	if !ok {
		// another process got there first
		return svc.reload(ctx, a)
	}
	a.Status = models.AuctionActive
	a.UpdatedAt = now

	svc.armTimer(ctx, a)
	svc.publish(ctx, a.ID, models.EventAuctionActivated, map[string]any{"end_time": a.EndTime})
	return nil
}

func (svc *auctionService) completeLocked(ctx context.Context, a *models.Auction, now time.Time) (*models.Rental, error) {
	payload := repository.TransitionPayload{At: now, ReleaseHold: true}
	winner, hasWinner := ResolveWinner(a.Bids)
	if hasWinner {
		payload.Rental = &models.Rental{
			ID:                     svc.newID(),
			ApartmentID:            a.ApartmentID,
			TenantID:               winner.BidderID,
			StartDate:              a.RentalStartDate,
			EndDate:                a.RentalEndDate,
			TotalCost:              winner.Amount,
			Status:                 models.RentalPending,
			IsAuction:              true,
			AuctionID:              a.ID,
			AuctionPaymentDeadline: now.Add(svc.opts.PaymentGrace),
			CreatedAt:              now,
		}
	}

	ok, err := svc.store.Transition(ctx, a.ID,
		[]models.AuctionStatus{models.AuctionActive}, models.AuctionCompleted, payload)
	if err != nil {
		return nil, storeErr("complete auction", err)
	}
	if !ok {
		if err := svc.reload(ctx, a); err != nil {
			return nil, err
		}
		return svc.existingRental(ctx, a)
	}
	a.Status = models.AuctionCompleted
	a.UpdatedAt = now

	data := map[string]any{"winner": hasWinner}
	if hasWinner {
		a.RentalID = payload.Rental.ID
		data["bid_id"] = winner.ID
		data["bidder_id"] = winner.BidderID
		data["amount"] = winner.Amount
		data["rental_id"] = payload.Rental.ID
		data["payment_deadline"] = payload.Rental.AuctionPaymentDeadline
	}
	zap.L().Info("auction_completed",
		zap.String("auction_id", a.ID),
		zap.Bool("winner", hasWinner),
		zap.String("rental_id", a.RentalID),
	)
	svc.armTimer(ctx, a)
	svc.publish(ctx, a.ID, models.EventAuctionCompleted, data)
	return payload.Rental, nil
}

func (svc *auctionService) existingRental(ctx context.Context, a *models.Auction) (*models.Rental, error) {
	if a.RentalID == "" {
		return nil, nil
	}
	r, err := svc.store.GetRental(ctx, a.RentalID)
	return r, storeErr("get rental", err)
}

// Activate moves a due PENDING auction to ACTIVE. Activating an ACTIVE
// auction is a no-op.
func (svc *auctionService) Activate(ctx context.Context, auctionID string) (*models.Auction, error) {
	var a *models.Auction
	err := svc.withAuctionLock(ctx, auctionID, func(ctx context.Context) error {
		now := svc.clock.Now()
		var err error
		if a, err = svc.load(ctx, auctionID); err != nil {
			return err
		}
		switch a.Status {
		case models.AuctionActive:
			return nil
		case models.AuctionPending:
			if now.Before(a.StartTime) {
				return invalidTransition(a, "starts at %s", a.StartTime.Format(time.RFC3339))
			}
			return svc.activateLocked(ctx, a, now)
		default:
			return invalidTransition(a, "cannot activate")
		}
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Complete closes an auction whose window has ended and returns the rental
// it produced, or nil when nobody bid. Completing twice returns the same
// rental.
func (svc *auctionService) Complete(ctx context.Context, auctionID string) (*models.Rental, error) {
	var rental *models.Rental
	err := svc.withAuctionLock(ctx, auctionID, func(ctx context.Context) error {
		now := svc.clock.Now()
		a, err := svc.load(ctx, auctionID)
		if err != nil {
			return err
		}
		switch a.Status {
		case models.AuctionCompleted:
			rental, err = svc.existingRental(ctx, a)
			return err
		case models.AuctionCancelled:
			return invalidTransition(a, "cannot complete")
		}
		if now.Before(a.EndTime) {
			return invalidTransition(a, "ends at %s", a.EndTime.Format(time.RFC3339))
		}
		rental, err = svc.advanceLocked(ctx, a, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// Evaluate applies whatever transitions are due and returns the result.
func (svc *auctionService) Evaluate(ctx context.Context, auctionID string) (*models.Auction, error) {
	var a *models.Auction
	err := svc.withAuctionLock(ctx, auctionID, func(ctx context.Context) error {
		var err error
		if a, err = svc.load(ctx, auctionID); err != nil {
			return err
		}
		_, err = svc.advanceLocked(ctx, a, svc.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CancelAuction is allowed to the apartment owner or an admin while the
// auction is PENDING or ACTIVE. The hold is released with the status change.
func (svc *auctionService) CancelAuction(ctx context.Context, auctionID, requesterID string) (*models.Auction, error) {
	if auctionID == "" || requesterID == "" {
		return nil, auctionerrors.Invalid("auction_id and requester_id are required")
	}

	var a *models.Auction
	err := svc.withAuctionLock(ctx, auctionID, func(ctx context.Context) error {
		now := svc.clock.Now()
		var err error
		if a, err = svc.load(ctx, auctionID); err != nil {
			return err
		}
		if a.OwnerID != requesterID {
			roles, err := svc.users.Roles(ctx, requesterID)
			if err != nil {
				return storeErr("resolve roles", err)
			}
			if !roles.Has(models.RoleAdmin) {
				return fmt.Errorf("%w: only the owner or an admin may cancel", auctionerrors.ErrForbidden)
			}
		}

		// an auction whose window has closed completes instead
		if _, err := svc.advanceLocked(ctx, a, now); err != nil {
			return err
		}
		if a.Status.Terminal() {
			return invalidTransition(a, "cannot cancel")
		}

		from := a.Status
		ok, err := svc.store.Transition(ctx, a.ID,
			[]models.AuctionStatus{models.AuctionPending, models.AuctionActive}, models.AuctionCancelled,
			repository.TransitionPayload{At: now, ReleaseHold: true})
		if err != nil {
			return storeErr("cancel auction", err)
		}
		if !ok {
			if err := svc.reload(ctx, a); err != nil {
				return err
			}
			return invalidTransition(a, "cannot cancel")
		}
		a.Status = models.AuctionCancelled
		a.UpdatedAt = now

		zap.L().Info("auction_cancelled",
			zap.String("auction_id", a.ID),
			zap.String("from", string(from)),
			zap.String("by", requesterID),
		)
		svc.armTimer(ctx, a)
		svc.publish(ctx, a.ID, models.EventAuctionCancelled, map[string]any{"cancelled_by": requesterID})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (svc *auctionService) GetAuction(ctx context.Context, auctionID string) (*AuctionDTO, error) {
	a, err := svc.Evaluate(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	dto := &AuctionDTO{
		Auction:        *a,
		MinimumNextBid: a.MinimumNextBid(),
		BidderCount:    a.BidderCount(),
	}
	if w, ok := ResolveWinner(a.Bids); ok {
		dto.HighBid = w.Amount
		dto.HighBidder = w.BidderID
	}
	return dto, nil
}

func (svc *auctionService) ListAuctions(ctx context.Context, status string, limit, offset int) ([]models.Auction, error) {
	st := models.AuctionStatus(status)
	switch st {
	case "", models.AuctionPending, models.AuctionActive, models.AuctionCompleted, models.AuctionCancelled:
	default:
		return nil, auctionerrors.Invalid("unknown status " + status)
	}
	if limit < 0 || offset < 0 {
		return nil, auctionerrors.Invalid("limit and offset must not be negative")
	}
	if limit == 0 {
		limit = 10
	}

	list, err := svc.store.ListAuctions(ctx, st, limit, offset)
	if err != nil {
		return nil, storeErr("list auctions", err)
	}
	now := svc.clock.Now()
	for i := range list {
		if !due(&list[i], now) {
			continue
		}
		a, err := svc.Evaluate(ctx, list[i].ID)
		if err != nil {
			zap.L().Warn("auction_evaluate", zap.String("auction_id", list[i].ID), zap.Error(err))
			continue
		}
		a.Bids = nil
		list[i] = *a
	}
	return list, nil
}

func due(a *models.Auction, now time.Time) bool {
	return (a.Status == models.AuctionPending && !now.Before(a.StartTime)) ||
		(a.Status == models.AuctionActive && !now.Before(a.EndTime))
}

func (svc *auctionService) GetBids(ctx context.Context, auctionID string) ([]models.Bid, error) {
	a, err := svc.Evaluate(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	return a.Bids, nil
}

func (svc *auctionService) GetWinningBid(ctx context.Context, auctionID string) (*models.Bid, error) {
	a, err := svc.Evaluate(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	w, ok := ResolveWinner(a.Bids)
	if !ok {
		return nil, fmt.Errorf("auction %s has no bids: %w", auctionID, auctionerrors.ErrBidNotFound)
	}
	return &w, nil
}
