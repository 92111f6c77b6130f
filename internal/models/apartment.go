package models

import "time"

// Apartment is the slice of the listing the auction engine needs.
type Apartment struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

// Hold reserves an apartment's date range while an auction is open.
type Hold struct {
	ApartmentID string    `json:"apartment_id"`
	AuctionID   string    `json:"auction_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Released    bool      `json:"released"`
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
