package utils

import "agrorent-backend/internal/domain"

// RatingSelector picks one direction of rating off a booking.
type RatingSelector func(b *domain.Booking) *int32

func RentTakerRating(b *domain.Booking) *int32 { return b.RatingByRentTaker }
func RenterRating(b *domain.Booking) *int32    { return b.RatingByRenter }

// RatingSummary is the recomputed mean (one decimal) and number of ratings.
type RatingSummary struct {
	Average float64
	Count   int32
}

// AggregateRatings averages the selected rating over completed bookings that
// carry one. ok is false when nothing qualifies.
func AggregateRatings(bookings []domain.Booking, selector RatingSelector) (RatingSummary, bool) {
	var sum int64
	var count int32
	for i := range bookings {
		b := &bookings[i]
		if b.Status != domain.BookingStatusCompleted {
			continue
		}
		r := selector(b)
		if r == nil {
			continue
		}
		sum += int64(*r)
		count++
	}
	if count == 0 {
		return RatingSummary{}, false
	}
	return RatingSummary{
		Average: RoundHalfUp(float64(sum)/float64(count), 1),
		Count:   count,
	}, true
}
