package service

import (
	"context"

	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"
	"agrorent-backend/internal/utils"
)

type ratingAggregator struct {
	equipmentRepo repository.EquipmentRepository
	bookingRepo   repository.BookingRepository
	userRepo      repository.UserRepository
}

func NewRatingAggregator(
	equipmentRepo repository.EquipmentRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
) RatingAggregator {
	return &ratingAggregator{
		equipmentRepo: equipmentRepo,
		bookingRepo:   bookingRepo,
		userRepo:      userRepo,
	}
}

// RecomputeEquipment averages the rent takers' ratings over every completed
// booking of the equipment. Nothing is written when none is rated.
func (a *ratingAggregator) RecomputeEquipment(ctx context.Context, equipmentID string) error {
	bookings, err := a.bookingRepo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return err
	}
	summary, ok := utils.AggregateRatings(bookings, utils.RentTakerRating)
	if !ok {
		return nil
	}
	logger.Debug("Equipment rating recomputed", "equipmentID", equipmentID, "rating", summary.Average, "count", summary.Count)
	return a.equipmentRepo.UpdateRating(ctx, equipmentID, summary.Average, summary.Count)
}

// RecomputeUser averages the renters' ratings of a rent taker.
func (a *ratingAggregator) RecomputeUser(ctx context.Context, userID string) error {
	bookings, err := a.bookingRepo.ListByRentTaker(ctx, userID)
	if err != nil {
		return err
	}
	summary, ok := utils.AggregateRatings(bookings, utils.RenterRating)
	if !ok {
		return nil
	}
	logger.Debug("User rating recomputed", "userID", userID, "rating", summary.Average, "count", summary.Count)
	return a.userRepo.UpdateRating(ctx, userID, summary.Average, summary.Count)
}

// RecomputeAll walks every equipment and user. Individual failures are
// counted and logged; the pass keeps going.
func (a *ratingAggregator) RecomputeAll(ctx context.Context) (RecomputeReport, error) {
	var report RecomputeReport

	equipmentIDs, err := a.equipmentRepo.ListIDs(ctx)
	if err != nil {
		return report, err
	}
	for _, id := range equipmentIDs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := a.RecomputeEquipment(ctx, id); err != nil {
			logger.Error("Failed to recompute equipment rating", "equipmentID", id, "error", err)
			report.Failed++
			continue
		}
		report.Equipment++
	}

	userIDs, err := a.userRepo.ListIDs(ctx)
	if err != nil {
		return report, err
	}
	for _, id := range userIDs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := a.RecomputeUser(ctx, id); err != nil {
			logger.Error("Failed to recompute user rating", "userID", id, "error", err)
			report.Failed++
			continue
		}
		report.Users++
	}

	logger.Info("Rating reconciliation finished", "equipment", report.Equipment, "users", report.Users, "failed", report.Failed)
	return report, nil
}
