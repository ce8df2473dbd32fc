package jobs

import (
	"context"

	"agrorent-backend/internal/logger"
)

// RecomputeRatings re-derives every equipment and user rating from the
// completed bookings, repairing any drift left by failed recomputes.
func (jr *JobRunner) RecomputeRatings() {
	jr.runWithRecovery("RecomputeRatings", func(ctx context.Context) {
		report, err := jr.services.Ratings.RecomputeAll(ctx)
		if err != nil {
			logger.Error("Failed to recompute ratings", "error", err,
				"equipment", report.Equipment, "users", report.Users)
			return
		}
		if report.Failed > 0 {
			logger.Warn("Some ratings could not be recomputed", "failed", report.Failed)
		}
	})
}
