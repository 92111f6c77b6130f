package auction

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"rentauction/internal/keylock"
	"rentauction/internal/models"
	"rentauction/internal/repository"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// recorder is a synchronous Notifier that keeps every event.
type recorder struct {
	mu     sync.Mutex
	events []models.Event
}

func (r *recorder) Publish(_ context.Context, _ string, ev models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) count(typ models.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

type fixture struct {
	svc    *auctionService
	store  *repository.MemoryStore
	clock  *clockwork.FakeClock
	events *recorder
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	store.AddApartment(models.Apartment{ID: "apt-1", OwnerID: "owner"})
	store.AddApartment(models.Apartment{ID: "apt-2", OwnerID: "owner2"})
	store.AddUser("owner", models.RoleOwner)
	store.AddUser("owner2", models.RoleOwner, models.RoleTenant)
	store.AddUser("admin", models.RoleAdmin)
	for i := 1; i <= 20; i++ {
		store.AddUser(fmt.Sprintf("t%d", i), models.RoleTenant)
	}

	clock := clockwork.NewFakeClockAt(t0)
	events := &recorder{}
	svc := NewAuctionService(store, store, keylock.New(), events, clock, opts).(*auctionService)
	return &fixture{svc: svc, store: store, clock: clock, events: events}
}

func (f *fixture) auctionInput() CreateAuctionInput {
	now := f.clock.Now()
	return CreateAuctionInput{
		ApartmentID:         "apt-1",
		RequesterID:         "owner",
		StartTime:           now,
		EndTime:             now.Add(time.Hour),
		StartingPrice:       500,
		MinimumBidIncrement: 50,
		RentalStartDate:     t0.AddDate(0, 1, 0),
		RentalEndDate:       t0.AddDate(0, 1, 7),
	}
}

// openAuction creates an auction from the default input, optionally
// modified, and evaluates it so a window that has begun is ACTIVE.
func (f *fixture) openAuction(t *testing.T, mutate func(*CreateAuctionInput)) *models.Auction {
	t.Helper()
	in := f.auctionInput()
	if mutate != nil {
		mutate(&in)
	}
	a, err := f.svc.CreateAuction(context.Background(), in)
	require.NoError(t, err)
	a, err = f.svc.Evaluate(context.Background(), a.ID)
	require.NoError(t, err)
	return a
}

func (f *fixture) bid(t *testing.T, auctionID, bidderID string, amount float64) *models.Bid {
	t.Helper()
	b, err := f.svc.PlaceBid(context.Background(), PlaceBidInput{AuctionID: auctionID, BidderID: bidderID, Amount: amount})
	require.NoError(t, err)
	return b
}

// wonRental runs an auction to completion with a single winning bid.
func (f *fixture) wonRental(t *testing.T, amount float64) *models.Rental {
	t.Helper()
	a := f.openAuction(t, nil)
	f.bid(t, a.ID, "t1", amount)
	f.clock.Advance(time.Hour)
	r, err := f.svc.Complete(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, r)
	return r
}

func TestNewAuctionService_Defaults(t *testing.T) {
	t.Parallel()
	store := repository.NewMemoryStore()
	svc := NewAuctionService(store, store, keylock.New(), nil, clockwork.NewFakeClock(), Options{}).(*auctionService)

	require.Equal(t, DefaultPaymentGrace, svc.opts.PaymentGrace)
	require.Equal(t, float64(DefaultFinePercent), svc.opts.FinePercent)
	require.Equal(t, OverdueFlag, svc.opts.OverdueAction)
	require.NotNil(t, svc.notifier)
}
