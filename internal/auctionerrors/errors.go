package auctionerrors

import (
	"errors"
	"fmt"
)

// Kinds. Every concrete error below wraps exactly one of these so callers
// can branch on the category with errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrState          = errors.New("state error")
	ErrConflict       = errors.New("conflict")
	ErrEligibility    = errors.New("not eligible")
	ErrNotFound       = errors.New("not found")
	ErrInfrastructure = errors.New("infrastructure error")
)

// Repository-level errors
var (
	ErrAuctionNotFound      = fmt.Errorf("auction %w", ErrNotFound)
	ErrRentalNotFound       = fmt.Errorf("rental %w", ErrNotFound)
	ErrApartmentNotFound    = fmt.Errorf("apartment %w", ErrNotFound)
	ErrBidNotFound          = fmt.Errorf("bid %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrApartmentUnavailable = fmt.Errorf("apartment already held for an overlapping period: %w", ErrConflict)
)

// business logic errors
var (
	ErrInvalidInput        = fmt.Errorf("invalid input: %w", ErrValidation)
	ErrAuctionNotActive    = fmt.Errorf("auction not active: %w", ErrState)
	ErrInvalidTransition   = fmt.Errorf("transition not allowed from current status: %w", ErrState)
	ErrPaymentWindowClosed = fmt.Errorf("fine already issued for this rental: %w", ErrState)
	ErrNotAuctionRental    = fmt.Errorf("rental was not created by an auction: %w", ErrState)
	ErrBidTooLow           = fmt.Errorf("bid amount too low: %w", ErrConflict)
	ErrCapacityExceeded    = fmt.Errorf("auction bidder capacity reached: %w", ErrConflict)
	ErrBidderNotEligible   = fmt.Errorf("bidder not eligible: %w", ErrEligibility)
	ErrForbidden           = fmt.Errorf("forbidden: %w", ErrEligibility)
)

// BidTooLowError carries the minimum so a client can retry.
type BidTooLowError struct {
	Amount  float64
	Minimum float64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid %.2f below minimum %.2f", e.Amount, e.Minimum)
}

func (e *BidTooLowError) Unwrap() error { return ErrBidTooLow }

// CapacityExceededError carries the current occupancy.
type CapacityExceededError struct {
	Current int
	Max     int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("auction has %d of %d bidders", e.Current, e.Max)
}

func (e *CapacityExceededError) Unwrap() error { return ErrCapacityExceeded }

// Infra wraps a store or broker failure so it classifies as ErrInfrastructure
// while keeping the cause reachable.
func Infra(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrInfrastructure, err)
}

// Invalid builds a validation error with a reason.
func Invalid(reason string) error {
	return fmt.Errorf("%w - %s", ErrInvalidInput, reason)
}
