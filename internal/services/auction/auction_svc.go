package auction

//go:generate mockgen -destination=mock_service.go -package=auction rentauction/internal/services/auction IAuctionService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"rentauction/internal/auctionerrors"
	"rentauction/internal/keylock"
	"rentauction/internal/models"
	"rentauction/internal/notify"
	"rentauction/internal/repository"
)

// AuctionDTO is an auction together with its derived bidding state.
type AuctionDTO struct {
	models.Auction
	HighBid        float64 `json:"high_bid"`
	HighBidder     string  `json:"high_bidder,omitempty"`
	MinimumNextBid float64 `json:"minimum_next_bid"`
	BidderCount    int     `json:"bidder_count"`
}

type IAuctionService interface {
	CreateAuction(ctx context.Context, in CreateAuctionInput) (*models.Auction, error)
	PlaceBid(ctx context.Context, in PlaceBidInput) (*models.Bid, error)
	DropBid(ctx context.Context, auctionID, bidID, requesterID string) error
	CancelAuction(ctx context.Context, auctionID, requesterID string) (*models.Auction, error)

	Activate(ctx context.Context, auctionID string) (*models.Auction, error)
	Complete(ctx context.Context, auctionID string) (*models.Rental, error)
	Evaluate(ctx context.Context, auctionID string) (*models.Auction, error)

	GetAuction(ctx context.Context, auctionID string) (*AuctionDTO, error)
	ListAuctions(ctx context.Context, status string, limit, offset int) ([]models.Auction, error)
	GetBids(ctx context.Context, auctionID string) ([]models.Bid, error)
	GetWinningBid(ctx context.Context, auctionID string) (*models.Bid, error)

	ConfirmAuctionPayment(ctx context.Context, rentalID string) (*models.Rental, error)
	SweepOverduePayments(ctx context.Context) (SweepReport, error)
}

// EndTimer arms a wake-up at the auction's next transition time. The Redis
// expiry watcher is the production implementation.
type EndTimer interface {
	Arm(ctx context.Context, auctionID string, at time.Time) error
	Disarm(ctx context.Context, auctionID string) error
}

type OverdueAction string

const (
	OverdueFlag   OverdueAction = "flag"
	OverdueCancel OverdueAction = "cancel"
)

type Options struct {
	// PaymentGrace is added to the completion time to form the payment deadline.
	PaymentGrace time.Duration
	// FinePercent of the rental's total cost, floored at FineMinimum.
	FinePercent   float64
	FineMinimum   float64
	OverdueAction OverdueAction
	Timer         EndTimer
}

const (
	DefaultPaymentGrace = 24 * time.Hour
	DefaultFinePercent  = 10
)

type auctionService struct {
	store    repository.AuctionStore
	users    repository.UserDirectory
	locker   keylock.Locker
	notifier notify.Notifier
	clock    clockwork.Clock
	opts     Options
	newID    func() string
}

var _ IAuctionService = (*auctionService)(nil)

func NewAuctionService(
	store repository.AuctionStore,
	users repository.UserDirectory,
	locker keylock.Locker,
	notifier notify.Notifier,
	clock clockwork.Clock,
	opts Options,
) IAuctionService {
	if opts.PaymentGrace <= 0 {
		opts.PaymentGrace = DefaultPaymentGrace
	}
	if opts.FinePercent <= 0 {
		opts.FinePercent = DefaultFinePercent
	}
	if opts.OverdueAction == "" {
		opts.OverdueAction = OverdueFlag
	}
	if notifier == nil {
		notifier = notify.LogPublisher{}
	}
	return &auctionService{
		store:    store,
		users:    users,
		locker:   locker,
		notifier: notifier,
		clock:    clock,
		opts:     opts,
		newID:    uuid.NewString,
	}
}

func lockKey(auctionID string) string {
	return "auc_lock:" + auctionID
}

// withAuctionLock runs fn while holding the auction's lock. fn receives a
// context that is cancelled if the lock is lost before fn returns.
func (svc *auctionService) withAuctionLock(ctx context.Context, auctionID string, fn func(ctx context.Context) error) error {
	held, unlock, err := svc.locker.Lock(ctx, lockKey(auctionID))
	if err != nil {
		return auctionerrors.Infra("lock auction "+auctionID, err)
	}
	defer unlock()

	err = fn(held)
	if errors.Is(context.Cause(held), keylock.ErrLockLost) {
		zap.L().Warn("auction_lock_lost", zap.String("auction_id", auctionID), zap.Error(err))
		if err != nil && !errors.Is(err, auctionerrors.ErrInfrastructure) {
			return auctionerrors.Infra("lock auction "+auctionID, fmt.Errorf("%w: %w", keylock.ErrLockLost, err))
		}
	}
	return err
}

// storeErr passes domain errors through and classifies the rest as
// infrastructure failures.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{
		auctionerrors.ErrValidation,
		auctionerrors.ErrState,
		auctionerrors.ErrConflict,
		auctionerrors.ErrEligibility,
		auctionerrors.ErrNotFound,
		auctionerrors.ErrInfrastructure,
	} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return auctionerrors.Infra(op, err)
}

func (svc *auctionService) publish(ctx context.Context, auctionID string, typ models.EventType, data map[string]any) {
	ev := models.Event{Type: typ, AuctionID: auctionID, At: svc.clock.Now(), Data: data}
	if err := svc.notifier.Publish(ctx, auctionID, ev); err != nil {
		zap.L().Warn("notify.publish",
			zap.String("auction_id", auctionID),
			zap.String("event", string(typ)),
			zap.Error(err),
		)
	}
}

// armTimer schedules the next wake-up for a, or clears it once a is terminal.
func (svc *auctionService) armTimer(ctx context.Context, a *models.Auction) {
	if svc.opts.Timer == nil {
		return
	}
	var err error
	switch a.Status {
	case models.AuctionPending:
		err = svc.opts.Timer.Arm(ctx, a.ID, a.StartTime)
	case models.AuctionActive:
		err = svc.opts.Timer.Arm(ctx, a.ID, a.EndTime)
	default:
		err = svc.opts.Timer.Disarm(ctx, a.ID)
	}
	if err != nil {
		zap.L().Warn("auction_timer", zap.String("auction_id", a.ID), zap.Error(err))
	}
}

func (svc *auctionService) load(ctx context.Context, auctionID string) (*models.Auction, error) {
	a, err := svc.store.Load(ctx, auctionID)
	return a, storeErr("load auction "+auctionID, err)
}

func (svc *auctionService) reload(ctx context.Context, a *models.Auction) error {
	fresh, err := svc.load(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = *fresh
	return nil
}

func invalidTransition(a *models.Auction, format string, args ...any) error {
	return fmt.Errorf("%w: auction %s is %s, %s", auctionerrors.ErrInvalidTransition, a.ID, a.Status, fmt.Sprintf(format, args...))
}
