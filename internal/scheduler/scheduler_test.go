package scheduler

import (
	"testing"

	"agrorent-backend/internal/config"
	"agrorent-backend/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler(t *testing.T) {
	t.Run("Registers rating job", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{RecomputeRatings: "0 0 3 * * *"}}
		s, err := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, cfg))
		require.NoError(t, err)
		assert.True(t, s.IsRunning())

		s.Start()
		s.Stop()
	})

	t.Run("Invalid schedule", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{RecomputeRatings: "every night"}}
		_, err := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, cfg))
		assert.Error(t, err)
	})

	t.Run("Five field expression is rejected", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{RecomputeRatings: "0 3 * * *"}}
		_, err := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, cfg))
		assert.Error(t, err)
	})
}
