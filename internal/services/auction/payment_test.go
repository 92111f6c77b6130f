package auction

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rentauction/internal/auctionerrors"
	"rentauction/internal/models"
)

func TestSweepOverduePayments_FinesExactlyOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t, Options{PaymentGrace: time.Hour})
	ctx := context.Background()
	r := f.wonRental(t, 1234.5)

	// before the deadline nothing is due
	report, err := f.svc.SweepOverduePayments(ctx)
	require.NoError(t, err)
	require.Equal(t, SweepReport{}, report)

	f.clock.Advance(time.Hour + time.Second)
	for i := 0; i < 3; i++ {
		report, err = f.svc.SweepOverduePayments(ctx)
		require.NoError(t, err)
		if i == 0 {
			require.Equal(t, SweepReport{Scanned: 1, Fined: 1}, report)
		} else {
			require.Equal(t, SweepReport{}, report)
		}
		f.clock.Advance(time.Minute)
	}

	got, err := f.store.GetRental(ctx, r.ID)
	require.NoError(t, err)
	require.True(t, got.AuctionFineIssued)
	require.False(t, got.AuctionPaymentConfirmed)
	require.NotNil(t, got.AuctionFineAmount)
	require.Equal(t, 123.45, *got.AuctionFineAmount)
	require.Equal(t, t0.Add(2*time.Hour+time.Second), *got.FineIssuedAt)
	require.Equal(t, models.RentalPaymentOverdue, got.Status)
	require.Equal(t, 1, f.events.count(models.EventFineIssued))

	_, err = f.svc.ConfirmAuctionPayment(ctx, r.ID)
	require.ErrorIs(t, err, auctionerrors.ErrPaymentWindowClosed)
}

func TestSweepOverduePayments_FinePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		amount  float64
		want    float64
		wantSts models.RentalStatus
	}{
		{name: "default_percent", opts: Options{}, amount: 900, want: 90, wantSts: models.RentalPaymentOverdue},
		{name: "custom_percent", opts: Options{FinePercent: 25}, amount: 900, want: 225, wantSts: models.RentalPaymentOverdue},
		{name: "minimum_floor", opts: Options{FineMinimum: 150}, amount: 900, want: 150, wantSts: models.RentalPaymentOverdue},
		{name: "cancel_consequence", opts: Options{OverdueAction: OverdueCancel}, amount: 600, want: 60, wantSts: models.RentalCancelled},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, tc.opts)
			ctx := context.Background()
			r := f.wonRental(t, tc.amount)

			f.clock.Advance(DefaultPaymentGrace + time.Second)
			report, err := f.svc.SweepOverduePayments(ctx)
			require.NoError(t, err)
			require.Equal(t, 1, report.Fined)

			got, err := f.store.GetRental(ctx, r.ID)
			require.NoError(t, err)
			require.Equal(t, tc.want, *got.AuctionFineAmount)
			require.Equal(t, tc.wantSts, got.Status)
		})
	}
}

func TestSweepOverduePayments_CancelFreesTheRange(t *testing.T) {
	t.Parallel()
	f := newFixture(t, Options{OverdueAction: OverdueCancel, PaymentGrace: time.Hour})
	ctx := context.Background()
	f.wonRental(t, 500)

	_, err := f.svc.CreateAuction(ctx, f.auctionInput())
	require.ErrorIs(t, err, auctionerrors.ErrApartmentUnavailable)

	f.clock.Advance(2 * time.Hour)
	_, err = f.svc.SweepOverduePayments(ctx)
	require.NoError(t, err)

	f.openAuction(t, nil)
}

func TestConfirmAuctionPayment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("before_deadline", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, Options{PaymentGrace: time.Hour})
		r := f.wonRental(t, 800)

		got, err := f.svc.ConfirmAuctionPayment(ctx, r.ID)
		require.NoError(t, err)
		require.True(t, got.AuctionPaymentConfirmed)
		require.Equal(t, models.RentalConfirmed, got.Status)
		require.Equal(t, 1, f.events.count(models.EventPaymentConfirmed))

		// repeating is harmless
		got, err = f.svc.ConfirmAuctionPayment(ctx, r.ID)
		require.NoError(t, err)
		require.True(t, got.AuctionPaymentConfirmed)
		require.Equal(t, 1, f.events.count(models.EventPaymentConfirmed))

		f.clock.Advance(2 * time.Hour)
		report, err := f.svc.SweepOverduePayments(ctx)
		require.NoError(t, err)
		require.Zero(t, report.Scanned)
	})

	t.Run("late_but_before_sweep", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, Options{PaymentGrace: time.Hour})
		r := f.wonRental(t, 800)
		f.clock.Advance(2 * time.Hour)

		got, err := f.svc.ConfirmAuctionPayment(ctx, r.ID)
		require.NoError(t, err)
		require.True(t, got.AuctionPaymentConfirmed)
		require.False(t, got.AuctionFineIssued)
	})

	t.Run("not_an_auction_rental", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, Options{})
		f.store.AddRental(models.Rental{ID: "plain", ApartmentID: "apt-2", Status: models.RentalPending})

		_, err := f.svc.ConfirmAuctionPayment(ctx, "plain")
		require.ErrorIs(t, err, auctionerrors.ErrNotAuctionRental)
		_, err = f.svc.ConfirmAuctionPayment(ctx, "missing")
		require.ErrorIs(t, err, auctionerrors.ErrRentalNotFound)
		_, err = f.svc.ConfirmAuctionPayment(ctx, "")
		require.ErrorIs(t, err, auctionerrors.ErrValidation)
	})
}

// A confirmation racing a sweep tick ends with exactly one of the two flags.
func TestConfirmAndSweepRace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		f := newFixture(t, Options{PaymentGrace: time.Hour})
		r := f.wonRental(t, 1000)
		f.clock.Advance(2 * time.Hour)

		var (
			wg         sync.WaitGroup
			confirmErr error
			report     SweepReport
			sweepErr   error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, confirmErr = f.svc.ConfirmAuctionPayment(ctx, r.ID)
		}()
		go func() {
			defer wg.Done()
			report, sweepErr = f.svc.SweepOverduePayments(ctx)
		}()
		wg.Wait()

		require.NoError(t, sweepErr)
		got, err := f.store.GetRental(ctx, r.ID)
		require.NoError(t, err)
		require.NotEqual(t, got.AuctionPaymentConfirmed, got.AuctionFineIssued)

		if got.AuctionPaymentConfirmed {
			require.NoError(t, confirmErr)
			require.Zero(t, report.Fined)
		} else {
			require.ErrorIs(t, confirmErr, auctionerrors.ErrPaymentWindowClosed)
			require.Equal(t, 1, report.Fined)
		}
	}
}
