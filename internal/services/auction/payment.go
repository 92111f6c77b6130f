package auction

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rentauction/internal/auctionerrors"
	"rentauction/internal/models"
)

// SweepReport summarises one pass of the payment deadline sweep.
type SweepReport struct {
	Scanned int `json:"scanned"`
	Fined   int `json:"fined"`
	Skipped int `json:"skipped"` // lost the race to a confirmation or an earlier sweep
	Failed  int `json:"failed"`
	// Fined, but the rental's status moved before the overdue action applied.
	Unapplied int `json:"unapplied"`
}

// fineFor is FinePercent of the total cost in cents, never below FineMinimum.
func (svc *auctionService) fineFor(r models.Rental) float64 {
	fine := models.RoundCents(r.TotalCost * svc.opts.FinePercent / 100)
	if fine < svc.opts.FineMinimum {
		fine = svc.opts.FineMinimum
	}
	return fine
}

// ConfirmAuctionPayment records the winner's payment. It races the sweep on
// the same compare-and-set pair: whichever commits first wins.
func (svc *auctionService) ConfirmAuctionPayment(ctx context.Context, rentalID string) (*models.Rental, error) {
	if rentalID == "" {
		return nil, auctionerrors.Invalid("rental_id is required")
	}

	r, err := svc.store.GetRental(ctx, rentalID)
	if err != nil {
		return nil, storeErr("get rental", err)
	}
	if !r.IsAuction {
		return nil, fmt.Errorf("rental %s: %w", rentalID, auctionerrors.ErrNotAuctionRental)
	}
	if r.AuctionPaymentConfirmed {
		return r, nil
	}
	if r.AuctionFineIssued {
		return nil, fmt.Errorf("rental %s: %w", rentalID, auctionerrors.ErrPaymentWindowClosed)
	}

	now := svc.clock.Now()
	ok, err := svc.store.ConfirmAuctionPayment(ctx, rentalID, now)
	if err != nil {
		return nil, storeErr("confirm payment", err)
	}
	if r, err = svc.store.GetRental(ctx, rentalID); err != nil {
		return nil, storeErr("get rental", err)
	}
	if !ok {
		if r.AuctionPaymentConfirmed {
			return r, nil
		}
		return nil, fmt.Errorf("rental %s: %w", rentalID, auctionerrors.ErrPaymentWindowClosed)
	}

	svc.publish(ctx, r.AuctionID, models.EventPaymentConfirmed, map[string]any{
		"rental_id": r.ID,
		"tenant_id": r.TenantID,
	})
	return r, nil
}

// SweepOverduePayments fines every auction rental past its payment deadline.
// A rental that fails is logged and retried on the next pass; it never
// stops the others.
func (svc *auctionService) SweepOverduePayments(ctx context.Context) (SweepReport, error) {
	var report SweepReport
	now := svc.clock.Now()

	overdue, err := svc.store.FindOverdueAuctionRentals(ctx, now)
	if err != nil {
		return report, storeErr("find overdue rentals", err)
	}

	for _, r := range overdue {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Scanned++

		amount := svc.fineFor(r)
		ok, err := svc.store.IssueFine(ctx, r.ID, amount, now)
		if err != nil {
			report.Failed++
			zap.L().Error("payment_sweep.fine", zap.String("rental_id", r.ID), zap.Error(err))
			continue
		}
		if !ok {
			report.Skipped++
			continue
		}
		report.Fined++

		to := models.RentalPaymentOverdue
		if svc.opts.OverdueAction == OverdueCancel {
			to = models.RentalCancelled
		}
		status := to
		applied, err := svc.store.SetRentalStatus(ctx, r.ID, r.Status, to)
		if err != nil || !applied {
			report.Unapplied++
			status = svc.currentRentalStatus(ctx, r)
			zap.L().Warn("payment_sweep.consequence",
				zap.String("rental_id", r.ID),
				zap.String("from", string(r.Status)),
				zap.String("to", string(to)),
				zap.String("status", string(status)),
				zap.Error(err),
			)
		}

		svc.publish(ctx, r.AuctionID, models.EventFineIssued, map[string]any{
			"rental_id":   r.ID,
			"tenant_id":   r.TenantID,
			"fine_amount": amount,
			"status":      string(status),
		})
	}

	if report.Scanned > 0 {
		zap.L().Info("payment_sweep",
			zap.Int("scanned", report.Scanned),
			zap.Int("fined", report.Fined),
			zap.Int("skipped", report.Skipped),
			zap.Int("failed", report.Failed),
			zap.Int("unapplied", report.Unapplied),
		)
	}
	return report, nil
}

// currentRentalStatus re-reads r, falling back to the scanned status.
func (svc *auctionService) currentRentalStatus(ctx context.Context, r models.Rental) models.RentalStatus {
	cur, err := svc.store.GetRental(ctx, r.ID)
	if err != nil {
		return r.Status
	}
	return cur.Status
}
