package utils

import (
	"fmt"
	"math"
	"time"

	"agrorent-backend/internal/domain"
)

const (
	hoursPerDay = 24
	daysPerWeek = 7
)

// BookingQuote is the priced outcome of a rental window.
type BookingQuote struct {
	PricingType domain.PricingType `json:"pricing_type"`
	Hours       int32              `json:"duration_hours"`
	Days        int32              `json:"days"`
	TotalCost   float64            `json:"total_cost"`
}

// CalculateBookingCost picks exactly one tier for the whole window and prices it.
//
// Hours are truncated to whole hours and days are whole 24h blocks. The first
// matching tier wins: weekly (7+ days), daily (1+ day), hourly, and finally a
// daily fallback that charges at least one day, or nothing if the equipment
// has no daily rate. The weekly tier prorates partial weeks.
func CalculateBookingCost(start, end time.Time, rates domain.RateSheet) (BookingQuote, error) {
	if !end.After(start) {
		return BookingQuote{}, fmt.Errorf("end date must be after start date")
	}

	hours := wholeHours(start, end)
	if hours > math.MaxInt32 {
		return BookingQuote{}, fmt.Errorf("rental window is too long")
	}
	days := hours / hoursPerDay

	q := BookingQuote{Hours: int32(hours), Days: int32(days)}
	var cost float64

	switch {
	case days >= daysPerWeek && rates.Weekly != nil:
		q.PricingType = domain.PricingTypeWeekly
		cost = float64(days) / float64(daysPerWeek) * *rates.Weekly
	case days >= 1 && rates.Daily != nil:
		q.PricingType = domain.PricingTypeDaily
		cost = float64(days) * *rates.Daily
	case rates.Hourly != nil:
		q.PricingType = domain.PricingTypeHourly
		cost = float64(hours) * *rates.Hourly
	default:
		q.PricingType = domain.PricingTypeDaily
		if rates.Daily != nil {
			cost = float64(max(1, days)) * *rates.Daily
		}
	}

	q.TotalCost = RoundHalfUp(cost, 2)
	return q, nil
}

// wholeHours counts complete hours between start and end without going through
// time.Duration, which saturates after about 292 years.
func wholeHours(start, end time.Time) int64 {
	secs := end.Unix() - start.Unix()
	if end.Nanosecond() < start.Nanosecond() {
		secs--
	}
	return secs / 3600
}
