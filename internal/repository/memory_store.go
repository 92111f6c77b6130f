package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"rentauction/internal/auctionerrors"
	"rentauction/internal/models"
)

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore
// and UserDirectory.
type MemoryStore struct {
	mu         sync.RWMutex
	seq        int64
	apartments map[string]models.Apartment
	users      map[string]models.RoleSet
	auctions   map[string]models.Auction // bids kept separately
	bids       map[string][]models.Bid   // key: auctionID
	holds      map[string]models.Hold    // key: auctionID
	rentals    map[string]models.Rental
}

var (
	_ AuctionStore  = (*MemoryStore)(nil)
	_ UserDirectory = (*MemoryStore)(nil)
)

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		apartments: make(map[string]models.Apartment),
		users:      make(map[string]models.RoleSet),
		auctions:   make(map[string]models.Auction),
		bids:       make(map[string][]models.Bid),
		holds:      make(map[string]models.Hold),
		rentals:    make(map[string]models.Rental),
	}
}

// AddApartment seeds an apartment. Apartments are owned by the listing
// service; this is how they reach the in-memory store.
func (s *MemoryStore) AddApartment(a models.Apartment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apartments[a.ID] = a
}

// AddUser seeds a user's roles.
func (s *MemoryStore) AddUser(userID string, roles ...models.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = models.NewRoleSet(roles...)
}

// AddRental seeds a rental, e.g. an ordinary booking occupying a range.
func (s *MemoryStore) AddRental(r models.Rental) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rentals[r.ID] = r
}

func (s *MemoryStore) Roles(_ context.Context, userID string) (models.RoleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rs, ok := s.users[userID]
	if !ok {
		return models.NewRoleSet(), nil
	}
	return rs, nil
}

func (s *MemoryStore) GetApartment(_ context.Context, apartmentID string) (models.Apartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.apartments[apartmentID]
	if !ok {
		return models.Apartment{}, fmt.Errorf("get apartment %s: %w", apartmentID, auctionerrors.ErrApartmentNotFound)
	}
	return a, nil
}

func (s *MemoryStore) CreateAuction(_ context.Context, a models.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.apartments[a.ApartmentID]; !ok {
		return fmt.Errorf("create auction %s: %w", a.ID, auctionerrors.ErrApartmentNotFound)
	}
	if s.rangeTakenLocked(a.ApartmentID, a.RentalStartDate, a.RentalEndDate) {
		return fmt.Errorf("create auction %s: %w", a.ID, auctionerrors.ErrApartmentUnavailable)
	}

	a.Bids = nil
	s.auctions[a.ID] = a
	s.holds[a.ID] = models.Hold{
		ApartmentID: a.ApartmentID,
		AuctionID:   a.ID,
		StartDate:   a.RentalStartDate,
		EndDate:     a.RentalEndDate,
	}
	return nil
}

func (s *MemoryStore) rangeTakenLocked(apartmentID string, start, end time.Time) bool {
	for _, h := range s.holds {
		if !h.Released && h.ApartmentID == apartmentID && models.Overlaps(h.StartDate, h.EndDate, start, end) {
			return true
		}
	}
	for _, r := range s.rentals {
		if r.Status != models.RentalCancelled && r.ApartmentID == apartmentID && models.Overlaps(r.StartDate, r.EndDate, start, end) {
			return true
		}
	}
	return false
}

func (s *MemoryStore) Load(_ context.Context, auctionID string) (*models.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.auctions[auctionID]
	if !ok {
		return nil, fmt.Errorf("load auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	a.Bids = slices.Clone(s.bids[auctionID])
	return &a, nil
}

func (s *MemoryStore) ListAuctions(_ context.Context, status models.AuctionStatus, limit, offset int) ([]models.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Auction, 0, len(s.auctions))
	for _, a := range s.auctions {
		if status != "" && a.Status != status {
			continue
		}
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].EndTime.Equal(list[j].EndTime) {
			return list[i].ID < list[j].ID
		}
		return list[i].EndTime.After(list[j].EndTime)
	})
	if offset >= len(list) {
		return []models.Auction{}, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (s *MemoryStore) ListDueAuctions(_ context.Context, now time.Time, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id, a := range s.auctions {
		switch {
		case a.Status == models.AuctionPending && !now.Before(a.StartTime):
			ids = append(ids, id)
		case a.Status == models.AuctionActive && !now.Before(a.EndTime):
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (s *MemoryStore) AppendBid(_ context.Context, bid models.Bid) (models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[bid.AuctionID]
	if !ok {
		return models.Bid{}, fmt.Errorf("append bid to auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.Status != models.AuctionActive {
		return models.Bid{}, fmt.Errorf("append bid to auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotActive)
	}
	a.Bids = s.bids[bid.AuctionID]
	highest, _ := a.HighestBid()
	st := bidState{
		startingPrice: a.StartingPrice,
		increment:     a.MinimumBidIncrement,
		maxBidders:    a.MaxBidders,
		bids:          len(a.ActiveBids()),
		highest:       highest,
		bidders:       a.BidderCount(),
		hasBid:        a.HasActiveBidFrom(bid.BidderID),
	}
	if err := st.admit(bid); err != nil {
		return models.Bid{}, err
	}

	s.seq++
	bid.Seq = s.seq
	s.bids[bid.AuctionID] = append(s.bids[bid.AuctionID], bid)
	return bid, nil
}

func (s *MemoryStore) DropBid(_ context.Context, auctionID, bidID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bids := s.bids[auctionID]
	for i := range bids {
		if bids[i].ID == bidID {
			bids[i].Dropped = true
			return nil
		}
	}
	return fmt.Errorf("drop bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
}

func (s *MemoryStore) Transition(_ context.Context, auctionID string, from []models.AuctionStatus, to models.AuctionStatus, p TransitionPayload) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return false, fmt.Errorf("transition auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if !slices.Contains(from, a.Status) {
		return false, nil
	}

	if p.Rental != nil {
		if _, exists := s.rentals[p.Rental.ID]; exists {
			return false, fmt.Errorf("transition auction %s: rental %s already exists", auctionID, p.Rental.ID)
		}
		s.rentals[p.Rental.ID] = *p.Rental
		a.RentalID = p.Rental.ID
	}
	if p.ReleaseHold {
		if h, ok := s.holds[auctionID]; ok {
			h.Released = true
			s.holds[auctionID] = h
		}
	}
	a.Status = to
	a.UpdatedAt = p.At
	s.auctions[auctionID] = a
	return true, nil
}

// Hold returns the hold placed by an auction. It is intended for tests.
func (s *MemoryStore) Hold(auctionID string) (models.Hold, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.holds[auctionID]
	return h, ok
}

func (s *MemoryStore) GetRental(_ context.Context, rentalID string) (*models.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rentals[rentalID]
	if !ok {
		return nil, fmt.Errorf("get rental %s: %w", rentalID, auctionerrors.ErrRentalNotFound)
	}
	return &r, nil
}

func (s *MemoryStore) FindOverdueAuctionRentals(_ context.Context, now time.Time) ([]models.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Rental
	for _, r := range s.rentals {
		if r.Overdue(now) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AuctionPaymentDeadline.Before(out[j].AuctionPaymentDeadline)
	})
	return out, nil
}

func (s *MemoryStore) IssueFine(_ context.Context, rentalID string, amount float64, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rentals[rentalID]
	if !ok {
		return false, fmt.Errorf("issue fine on rental %s: %w", rentalID, auctionerrors.ErrRentalNotFound)
	}
	if !r.Overdue(now) {
		return false, nil
	}
	r.AuctionFineIssued = true
	r.AuctionFineAmount = &amount
	r.FineIssuedAt = &now
	s.rentals[rentalID] = r
	return true, nil
}

func (s *MemoryStore) ConfirmAuctionPayment(_ context.Context, rentalID string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rentals[rentalID]
	if !ok {
		return false, fmt.Errorf("confirm payment on rental %s: %w", rentalID, auctionerrors.ErrRentalNotFound)
	}
	if !r.IsAuction || r.AuctionPaymentConfirmed || r.AuctionFineIssued {
		return false, nil
	}
	r.AuctionPaymentConfirmed = true
	r.PaymentConfirmedAt = &now
	if r.Status == models.RentalPending {
		r.Status = models.RentalConfirmed
	}
	s.rentals[rentalID] = r
	return true, nil
}

func (s *MemoryStore) SetRentalStatus(_ context.Context, rentalID string, from, to models.RentalStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rentals[rentalID]
	if !ok {
		return false, fmt.Errorf("set rental %s status: %w", rentalID, auctionerrors.ErrRentalNotFound)
	}
	if r.Status != from {
		return false, nil
	}
	r.Status = to
	s.rentals[rentalID] = r
	return true, nil
}
