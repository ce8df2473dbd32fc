package service

import (
	"context"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"
)

type conflictChecker struct {
	bookingRepo repository.BookingRepository
}

func NewConflictChecker(bookingRepo repository.BookingRepository) ConflictChecker {
	return &conflictChecker{bookingRepo: bookingRepo}
}

// HasConflict is true when a PENDING, APPROVED or ACTIVE booking on the
// equipment touches [start, end]. Shared endpoints count as a conflict.
func (c *conflictChecker) HasConflict(ctx context.Context, equipmentID string, start, end time.Time) (bool, error) {
	existing, err := c.bookingRepo.ListOverlapping(ctx, equipmentID, start, end, domain.BlockingStatuses)
	if err != nil {
		return false, err
	}
	for i := range existing {
		if domain.Overlaps(existing[i].StartDate, existing[i].EndDate, start, end) {
			logger.Debug("Booking conflict", "equipmentID", equipmentID, "conflictsWith", existing[i].ID)
			return true, nil
		}
	}
	return false, nil
}
