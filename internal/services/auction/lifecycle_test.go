package auction

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rentauction/internal/auctionerrors"
	"rentauction/internal/models"
)

func TestCreateAuction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(in *CreateAuctionInput)
		wantErr error
	}{
		{name: "ok"},
		{name: "missing_apartment", mutate: func(in *CreateAuctionInput) { in.ApartmentID = "" }, wantErr: auctionerrors.ErrValidation},
		{name: "zero_increment", mutate: func(in *CreateAuctionInput) { in.MinimumBidIncrement = 0 }, wantErr: auctionerrors.ErrValidation},
		{name: "zero_price", mutate: func(in *CreateAuctionInput) { in.StartingPrice = 0 }, wantErr: auctionerrors.ErrValidation},
		{name: "nan_price", mutate: func(in *CreateAuctionInput) { in.StartingPrice = math.NaN() }, wantErr: auctionerrors.ErrValidation},
		{name: "inf_price", mutate: func(in *CreateAuctionInput) { in.StartingPrice = math.Inf(1) }, wantErr: auctionerrors.ErrValidation},
		{name: "nan_increment", mutate: func(in *CreateAuctionInput) { in.MinimumBidIncrement = math.NaN() }, wantErr: auctionerrors.ErrValidation},
		{name: "neg_inf_increment", mutate: func(in *CreateAuctionInput) { in.MinimumBidIncrement = math.Inf(-1) }, wantErr: auctionerrors.ErrValidation},
		{name: "window_inverted", mutate: func(in *CreateAuctionInput) { in.EndTime = in.StartTime }, wantErr: auctionerrors.ErrValidation},
		{name: "window_in_the_past", mutate: func(in *CreateAuctionInput) {
			in.StartTime = t0.Add(-2 * time.Hour)
			in.EndTime = t0.Add(-time.Hour)
		}, wantErr: auctionerrors.ErrValidation},
		{name: "rental_range_inverted", mutate: func(in *CreateAuctionInput) { in.RentalEndDate = in.RentalStartDate }, wantErr: auctionerrors.ErrValidation},
		{name: "negative_capacity", mutate: func(in *CreateAuctionInput) { in.MaxBidders = -1 }, wantErr: auctionerrors.ErrValidation},
		{name: "tenant_requester", mutate: func(in *CreateAuctionInput) { in.RequesterID = "t1" }, wantErr: auctionerrors.ErrForbidden},
		{name: "someone_elses_apartment", mutate: func(in *CreateAuctionInput) { in.RequesterID = "owner2" }, wantErr: auctionerrors.ErrForbidden},
		{name: "unknown_apartment", mutate: func(in *CreateAuctionInput) { in.ApartmentID = "apt-x" }, wantErr: auctionerrors.ErrApartmentNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, Options{})
			in := f.auctionInput()
			if tc.mutate != nil {
				tc.mutate(&in)
			}
			a, err := f.svc.CreateAuction(context.Background(), in)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Zero(t, f.events.count(models.EventAuctionCreated))
				return
			}
			require.NoError(t, err)
			require.Equal(t, models.AuctionPending, a.Status)
			require.Equal(t, models.DefaultMaxBidders, a.MaxBidders)
			require.Equal(t, "owner", a.OwnerID)
			h, ok := f.store.Hold(a.ID)
			require.True(t, ok)
			require.False(t, h.Released)
			require.Equal(t, 1, f.events.count(models.EventAuctionCreated))
		})
	}
}

func TestCreateAuction_OverlappingRangeIsRefused(t *testing.T) {
	t.Parallel()
	f := newFixture(t, Options{})
	f.openAuction(t, nil)

	in := f.auctionInput()
	in.RentalStartDate = in.RentalStartDate.AddDate(0, 0, 3)
	in.RentalEndDate = in.RentalEndDate.AddDate(0, 0, 3)
	_, err := f.svc.CreateAuction(context.Background(), in)
	require.ErrorIs(t, err, auctionerrors.ErrApartmentUnavailable)
	require.ErrorIs(t, err, auctionerrors.ErrConflict)
}

func TestActivate(t *testing.T) {
	t.Parallel()
	f := newFixture(t, Options{})
	ctx := context.Background()
	in := f.auctionInput()
	in.StartTime = t0.Add(10 * time.Minute)
	in.EndTime = in.StartTime.Add(time.Hour)
	a, err := f.svc.CreateAuction(ctx, in)
	require.NoError(t, err)

	_, err = f.svc.Activate(ctx, a.ID)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidTransition)

	f.clock.Advance(10 * time.Minute)
	got, err := f.svc.Activate(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionActive, got.Status)

	got, err = f.svc.Activate(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionActive, got.Status)
	require.Equal(t, 1, f.events.count(models.EventAuctionActivated))

	_, err = f.svc.Activate(ctx, "nope")
	require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
}

func TestComplete_WithWinnerCreatesRental(t *testing.T) {
	t.Parallel()
	f := newFixture(t, Options{PaymentGrace: 48 * time.Hour})
	a := f.openAuction(t, nil)
	ctx := context.Background()

	f.bid(t, a.ID, "t1", 500)
	winning := f.bid(t, a.ID, "t2", 720)

	_, err := f.svc.Complete(ctx, a.ID)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidTransition)

	f.clock.Advance(time.Hour)
	r, err := f.svc.Complete(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, r)
	require.Equal(t, "t2", r.TenantID)
	require.Equal(t, winning.Amount, r.TotalCost)
	require.True(t, r.IsAuction)
	require.Equal(t, a.ID, r.AuctionID)
	require.Equal(t, models.RentalPending, r.Status)
	require.Equal(t, a.RentalStartDate, r.StartDate)
	require.Equal(t, a.RentalEndDate, r.EndDate)
	require.Equal(t, f.clock.Now().Add(48*time.Hour), r.AuctionPaymentDeadline)
	require.False(t, r.AuctionPaymentConfirmed)
	require.False(t, r.AuctionFineIssued)

	again, err := f.svc.Complete(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, r.ID, again.ID)
	require.Equal(t, 1, f.events.count(models.EventAuctionCompleted))

	got, err := f.svc.GetAuction(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionCompleted, got.Status)
	require.Equal(t, r.ID, got.RentalID)

	// the rental now occupies the range
	_, err = f.svc.CreateAuction(ctx, f.auctionInput())
	require.ErrorIs(t, err, auctionerrors.ErrApartmentUnavailable)
}

func TestComplete_EmptyAuctionReleasesHold(t *testing.T) {
	t.Parallel()
	f := newFixture(t, Options{})
	a := f.openAuction(t, nil)
	ctx := context.Background()

	f.clock.Advance(2 * time.Hour)
	r, err := f.svc.Complete(ctx, a.ID)
	require.NoError(t, err)
	require.Nil(t, r)

	h, ok := f.store.Hold(a.ID)
	require.True(t, ok)
	require.True(t, h.Released)

	got, err := f.store.Load(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionCompleted, got.Status)
	require.Empty(t, got.RentalID)

	_, err = f.svc.GetWinningBid(ctx, a.ID)
	require.ErrorIs(t, err, auctionerrors.ErrBidNotFound)

	// the range is free again
	f.openAuction(t, nil)
}

func TestComplete_ConcurrentCallsProduceOneRental(t *testing.T) {
	t.Parallel()
	f := newFixture(t, Options{})
	a := f.openAuction(t, nil)
	f.bid(t, a.ID, "t1", 500)
	f.clock.Advance(time.Hour)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[string]struct{}{}
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var (
				r   *models.Rental
				err error
			)
			if i%2 == 0 {
				r, err = f.svc.Complete(context.Background(), a.ID)
			} else {
				_, err = f.svc.Evaluate(context.Background(), a.ID)
				if err == nil {
					r, err = f.svc.Complete(context.Background(), a.ID)
				}
			}
			if err != nil {
				t.Errorf("complete: %v", err)
				return
			}
			mu.Lock()
			ids[r.ID] = struct{}{}
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	require.Len(t, ids, 1)
	require.Equal(t, 1, f.events.count(models.EventAuctionCompleted))
}

func TestEvaluate_PendingPastEndActivatesThenCompletes(t *testing.T) {
	t.Parallel()
	f := newFixture(t, Options{})
	ctx := context.Background()
	in := f.auctionInput()
	in.StartTime = t0.Add(time.Minute)
	in.EndTime = t0.Add(2 * time.Minute)
	a, err := f.svc.CreateAuction(ctx, in)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	got, err := f.svc.Evaluate(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionCompleted, got.Status)
	require.Equal(t, 1, f.events.count(models.EventAuctionActivated))
	require.Equal(t, 1, f.events.count(models.EventAuctionCompleted))
}

func TestCancelAuction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("owner_cancels_active", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, Options{})
		a := f.openAuction(t, nil)
		f.bid(t, a.ID, "t1", 500)

		_, err := f.svc.CancelAuction(ctx, a.ID, "t1")
		require.ErrorIs(t, err, auctionerrors.ErrForbidden)

		got, err := f.svc.CancelAuction(ctx, a.ID, "owner")
		require.NoError(t, err)
		require.Equal(t, models.AuctionCancelled, got.Status)
		require.Empty(t, got.RentalID)

		h, _ := f.store.Hold(a.ID)
		require.True(t, h.Released)

		_, err = f.svc.PlaceBid(ctx, PlaceBidInput{AuctionID: a.ID, BidderID: "t2", Amount: 900})
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotActive)

		_, err = f.svc.CancelAuction(ctx, a.ID, "owner")
		require.ErrorIs(t, err, auctionerrors.ErrInvalidTransition)
		require.Equal(t, 1, f.events.count(models.EventAuctionCancelled))

		// completion never follows a cancellation
		f.clock.Advance(time.Hour)
		_, err = f.svc.Complete(ctx, a.ID)
		require.ErrorIs(t, err, auctionerrors.ErrInvalidTransition)
	})

	t.Run("admin_cancels_pending", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, Options{})
		a := f.openAuction(t, func(in *CreateAuctionInput) {
			in.StartTime = t0.Add(time.Hour)
			in.EndTime = t0.Add(2 * time.Hour)
		})
		require.Equal(t, models.AuctionPending, a.Status)

		got, err := f.svc.CancelAuction(ctx, a.ID, "admin")
		require.NoError(t, err)
		require.Equal(t, models.AuctionCancelled, got.Status)
	})

	t.Run("completed_cannot_be_cancelled", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, Options{})
		a := f.openAuction(t, nil)
		f.bid(t, a.ID, "t1", 500)
		f.clock.Advance(time.Hour)

		// the due completion is applied first
		_, err := f.svc.CancelAuction(ctx, a.ID, "owner")
		require.ErrorIs(t, err, auctionerrors.ErrInvalidTransition)

		got, err := f.store.Load(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, models.AuctionCompleted, got.Status)
		require.NotEmpty(t, got.RentalID)
	})
}

type fakeTimer struct {
	mu     sync.Mutex
	armed  map[string]time.Time
	disarm []string
}

func (ft *fakeTimer) Arm(_ context.Context, id string, at time.Time) error {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if ft.armed == nil {
		ft.armed = map[string]time.Time{}
	}
	ft.armed[id] = at
	return nil
}

func (ft *fakeTimer) Disarm(_ context.Context, id string) error {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	delete(ft.armed, id)
	ft.disarm = append(ft.disarm, id)
	return nil
}

func TestTimerFollowsLifecycle(t *testing.T) {
	t.Parallel()
	timer := &fakeTimer{}
	f := newFixture(t, Options{Timer: timer})
	ctx := context.Background()

	in := f.auctionInput()
	in.StartTime = t0.Add(time.Minute)
	in.EndTime = t0.Add(time.Hour)
	a, err := f.svc.CreateAuction(ctx, in)
	require.NoError(t, err)
	require.Equal(t, in.StartTime, timer.armed[a.ID])

	f.clock.Advance(time.Minute)
	_, err = f.svc.Evaluate(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, in.EndTime, timer.armed[a.ID])

	_, err = f.svc.CancelAuction(ctx, a.ID, "owner")
	require.NoError(t, err)
	require.NotContains(t, timer.armed, a.ID)
	require.Equal(t, []string{a.ID}, timer.disarm)
}

func TestListAuctions(t *testing.T) {
	t.Parallel()
	f := newFixture(t, Options{})
	ctx := context.Background()
	a := f.openAuction(t, nil)

	_, err := f.svc.ListAuctions(ctx, "RUNNING", 10, 0)
	require.ErrorIs(t, err, auctionerrors.ErrValidation)

	list, err := f.svc.ListAuctions(ctx, string(models.AuctionActive), 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// listing applies due transitions
	f.clock.Advance(time.Hour)
	list, err = f.svc.ListAuctions(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, a.ID, list[0].ID)
	require.Equal(t, models.AuctionCompleted, list[0].Status)
}
