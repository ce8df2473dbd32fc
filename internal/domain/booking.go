package domain

import (
	"errors"
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusApproved  BookingStatus = "APPROVED"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// BlockingStatuses are the statuses that hold an equipment's calendar.
var BlockingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusApproved,
	BookingStatusActive,
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusApproved, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusApproved: {BookingStatusActive, BookingStatusCancelled},
	BookingStatusActive:   {BookingStatusCompleted, BookingStatusCancelled},
}

// ErrInvalidTransition is wrapped by every refused status change.
var ErrInvalidTransition = errors.New("invalid booking transition")

// TransitionError names the current and requested status.
type TransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move booking from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected,
		BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s BookingStatus) Terminal() bool {
	return len(bookingTransitions[s]) == 0
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PricingType string

const (
	PricingTypeHourly PricingType = "HOURLY"
	PricingTypeDaily  PricingType = "DAILY"
	PricingTypeWeekly PricingType = "WEEKLY"
)

func (p PricingType) Valid() bool {
	return p == PricingTypeHourly || p == PricingTypeDaily || p == PricingTypeWeekly
}

type Booking struct {
	ID string `json:"id"`

	EquipmentID       string            `json:"equipment_id"`
	EquipmentName     string            `json:"equipment_name"`
	EquipmentCategory EquipmentCategory `json:"equipment_category"`

	// Renter owns the equipment; rent taker asked for it. Names and phones
	// are copied when the booking is created.
	RenterID       string `json:"renter_id"`
	RenterName     string `json:"renter_name"`
	RenterPhone    string `json:"renter_phone"`
	RentTakerID    string `json:"rent_taker_id"`
	RentTakerName  string `json:"rent_taker_name"`
	RentTakerPhone string `json:"rent_taker_phone"`

	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	DurationHours int32         `json:"duration_hours"`
	TotalCost     float64       `json:"total_cost"`
	PricingType   PricingType   `json:"pricing_type"`
	Status        BookingStatus `json:"status"`

	Notes           string `json:"notes,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`

	RatingByRentTaker *int32 `json:"rating_by_rent_taker,omitempty"`
	ReviewByRentTaker string `json:"review_by_rent_taker,omitempty"`
	RatingByRenter    *int32 `json:"rating_by_renter,omitempty"`
	ReviewByRenter    string `json:"review_by_renter,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Transition moves the booking to next or returns a *TransitionError.
func (b *Booking) Transition(next BookingStatus, now time.Time) error {
	if !b.Status.CanTransitionTo(next) {
		return &TransitionError{From: b.Status, To: next}
	}
	b.Status = next
	b.UpdatedAt = now
	return nil
}

// IsParty reports whether userID is the renter or the rent taker.
func (b *Booking) IsParty(userID string) bool {
	return userID != "" && (b.RenterID == userID || b.RentTakerID == userID)
}

// Overlaps is the inclusive interval test used for booking conflicts:
// two ranges that only touch at an endpoint still overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
