package models

import "time"

type RentalStatus string

const (
	RentalPending        RentalStatus = "PENDING"
	RentalConfirmed      RentalStatus = "CONFIRMED"
	RentalPaymentOverdue RentalStatus = "PAYMENT_OVERDUE"
	RentalCancelled      RentalStatus = "CANCELLED"
)

// Rental is a booking. Auction-born rentals carry the payment deadline
// fields; TotalCost is the winning amount and is never recomputed.
type Rental struct {
	ID          string       `json:"id"`
	ApartmentID string       `json:"apartment_id"`
	TenantID    string       `json:"tenant_id"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     time.Time    `json:"end_date"`
	TotalCost   float64      `json:"total_cost"`
	Status      RentalStatus `json:"status"`

	IsAuction               bool       `json:"is_auction"`
	AuctionID               string     `json:"auction_id,omitempty"`
	AuctionPaymentConfirmed bool       `json:"auction_payment_confirmed"`
	AuctionPaymentDeadline  time.Time  `json:"auction_payment_deadline"`
	AuctionFineIssued       bool       `json:"auction_fine_issued"`
	AuctionFineAmount       *float64   `json:"auction_fine_amount,omitempty"`
	PaymentConfirmedAt      *time.Time `json:"payment_confirmed_at,omitempty"`
	FineIssuedAt            *time.Time `json:"fine_issued_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Overdue reports whether the rental is eligible for a fine at now.
func (r *Rental) Overdue(now time.Time) bool {
	return r.IsAuction && !r.AuctionPaymentConfirmed && !r.AuctionFineIssued &&
		now.After(r.AuctionPaymentDeadline)
}
