package search

import (
	"context"
	"math"
	"testing"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/repository/memory"
	apperrors "agrorent-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func ids(results []domain.EquipmentResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestSortResults(t *testing.T) {
	rated := func(id string, rating float64, n int32) domain.EquipmentResult {
		return domain.EquipmentResult{Equipment: domain.Equipment{ID: id, Rating: rating, TotalRatings: n}}
	}

	t.Run("Rating defaults to descending with unrated last", func(t *testing.T) {
		results := []domain.EquipmentResult{rated("a", 3.0, 1), rated("b", 4.5, 2), rated("c", 0, 0)}
		SortResults(results, Sort{By: "rating"}, domain.PricingTypeDaily)
		assert.Equal(t, []string{"b", "a", "c"}, ids(results))
	})

	t.Run("Rating ascending keeps unrated last", func(t *testing.T) {
		results := []domain.EquipmentResult{rated("c", 0, 0), rated("b", 4.5, 2), rated("a", 3.0, 1)}
		SortResults(results, Sort{By: "RATING", Order: "asc"}, domain.PricingTypeDaily)
		assert.Equal(t, []string{"a", "b", "c"}, ids(results))
	})

	t.Run("Price uses the selected rate", func(t *testing.T) {
		results := []domain.EquipmentResult{
			{Equipment: domain.Equipment{ID: "daily-only", PricePerDay: f64(100)}},
			{Equipment: domain.Equipment{ID: "cheap-hour", PricePerHour: f64(20), PricePerDay: f64(900)}},
			{Equipment: domain.Equipment{ID: "dear-hour", PricePerHour: f64(80)}},
		}
		SortResults(results, Sort{By: "price"}, domain.PricingTypeHourly)
		assert.Equal(t, []string{"cheap-hour", "dear-hour", "daily-only"}, ids(results))

		SortResults(results, Sort{By: "price", Order: "desc"}, domain.PricingTypeHourly)
		assert.Equal(t, []string{"dear-hour", "cheap-hour", "daily-only"}, ids(results))
	})

	t.Run("Unknown key sorts by distance", func(t *testing.T) {
		results := []domain.EquipmentResult{
			{Equipment: domain.Equipment{ID: "far"}, DistanceKm: f64(12.5)},
			{Equipment: domain.Equipment{ID: "none"}},
			{Equipment: domain.Equipment{ID: "near"}, DistanceKm: f64(1.2)},
		}
		SortResults(results, Sort{By: "popularity"}, domain.PricingTypeDaily)
		assert.Equal(t, []string{"near", "far", "none"}, ids(results))
	})
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	store := memory.NewStore()
	repo := store.Equipment()
	ctx := context.Background()

	items := []domain.Equipment{
		{ID: "tractor-pune", OwnerID: "o1", Category: domain.CategoryTractor, PricePerDay: f64(1200), Location: domain.GeoPoint{Lat: 18.52, Lon: 73.85}, Available: true, Rating: 4.0, TotalRatings: 3},
		{ID: "tractor-kothrud", OwnerID: "o1", Category: domain.CategoryTractor, PricePerDay: f64(800), Location: domain.GeoPoint{Lat: 18.50, Lon: 73.81}, Available: true},
		{ID: "tractor-idle", OwnerID: "o2", Category: domain.CategoryTractor, PricePerDay: f64(500), Location: domain.GeoPoint{Lat: 18.52, Lon: 73.85}, Available: false},
		{ID: "sprayer-pune", OwnerID: "o2", Category: domain.CategorySprayer, PricePerHour: f64(60), Location: domain.GeoPoint{Lat: 18.56, Lon: 73.91}, Available: true},
		{ID: "tractor-nagpur", OwnerID: "o3", Category: domain.CategoryTractor, PricePerDay: f64(700), Location: domain.GeoPoint{Lat: 21.14, Lon: 79.08}, Available: true},
	}
	for i := range items {
		require.NoError(t, repo.Create(ctx, &items[i]))
	}
	return NewEngine(repo, 50)
}

func TestEngineSearch(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)

	t.Run("Center with default radius sorts nearest first", func(t *testing.T) {
		got, err := engine.Search(ctx, Criteria{
			Category:  "tractor",
			Latitude:  f64(18.52),
			Longitude: f64(73.85),
		}, Sort{})
		require.NoError(t, err)
		assert.Equal(t, []string{"tractor-pune", "tractor-kothrud"}, ids(got))
		require.NotNil(t, got[0].DistanceKm)
		assert.Equal(t, 0.0, *got[0].DistanceKm)
		assert.Greater(t, *got[1].DistanceKm, 0.0)
	})

	t.Run("Without a center there is no distance", func(t *testing.T) {
		got, err := engine.Search(ctx, Criteria{Category: "TRACTOR"}, Sort{By: "price"})
		require.NoError(t, err)
		assert.Equal(t, []string{"tractor-nagpur", "tractor-kothrud", "tractor-pune"}, ids(got))
		for _, r := range got {
			assert.Nil(t, r.DistanceKm)
		}
	})

	t.Run("Lone latitude is ignored", func(t *testing.T) {
		got, err := engine.Search(ctx, Criteria{Latitude: f64(18.52)}, Sort{})
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("Rating sort puts unrated last", func(t *testing.T) {
		got, err := engine.Search(ctx, Criteria{Category: "tractor"}, Sort{By: "rating"})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "tractor-pune", got[0].ID)
	})

	t.Run("Price bounds on hourly rate", func(t *testing.T) {
		got, err := engine.Search(ctx, Criteria{PricingType: "hourly", MaxPrice: f64(100)}, Sort{})
		require.NoError(t, err)
		assert.Equal(t, []string{"sprayer-pune"}, ids(got))
	})

	t.Run("Validation", func(t *testing.T) {
		cases := []Criteria{
			{Category: "SPACESHIP"},
			{PricingType: "MONTHLY"},
			{MinPrice: f64(10), MaxPrice: f64(5)},
			{Latitude: f64(91), Longitude: f64(0)},
			{Latitude: f64(18), Longitude: f64(73), RadiusKm: f64(-1)},
			{Latitude: f64(18), Longitude: f64(73), RadiusKm: f64(math.NaN())},
		}
		for _, c := range cases {
			_, err := engine.Search(ctx, c, Sort{})
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "%+v", c)
		}
	})
}

func TestEngineNearby(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)

	got, err := engine.Nearby(ctx, 18.52, 73.85, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"tractor-pune", "tractor-kothrud", "sprayer-pune"}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, *got[i-1].DistanceKm, *got[i].DistanceKm)
	}

	got, err = engine.Nearby(ctx, 18.52, 73.85, 1000)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	_, err = engine.Nearby(ctx, 0, 200, 10)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	for _, r := range []float64{math.NaN(), math.Inf(1)} {
		_, err = engine.Nearby(ctx, 18.52, 73.85, r)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "radius %v", r)
	}
}
