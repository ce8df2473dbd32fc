package geo

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	t.Run("Same point", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineKm(18.52, 73.85, 18.52, 73.85))
	})

	t.Run("Tenth of a degree of latitude at the equator", func(t *testing.T) {
		assert.Equal(t, 11.1, DistanceKm(0, 0, 0.1, 0))
		assert.InDelta(t, 11.12, HaversineKm(0, 0, 0.1, 0), 0.01)
	})

	t.Run("Pune to Mumbai", func(t *testing.T) {
		d := HaversineKm(18.5204, 73.8567, 19.0760, 72.8777)
		assert.InDelta(t, 120, d, 2)
	})

	t.Run("Symmetric", func(t *testing.T) {
		assert.InDelta(t, HaversineKm(10, 20, 30, 40), HaversineKm(30, 40, 10, 20), 1e-9)
	})
}

func TestBoundingBox(t *testing.T) {
	t.Run("Contains every point of the circle", func(t *testing.T) {
		box := BoundingBox(18.5, 73.8, 50)
		assert.True(t, box.Contains(18.5, 73.8))
		// points roughly 49 km away in each cardinal direction
		assert.True(t, box.Contains(18.94, 73.8))
		assert.True(t, box.Contains(18.06, 73.8))
		assert.True(t, box.Contains(18.5, 74.26))
		assert.True(t, box.Contains(18.5, 73.34))
		assert.False(t, box.Contains(19.5, 73.8))
	})

	t.Run("Longitude span widens with latitude", func(t *testing.T) {
		eq := BoundingBox(0, 0, 100)
		north := BoundingBox(60, 0, 100)
		assert.Greater(t, north.MaxLon-north.MinLon, eq.MaxLon-eq.MinLon)
	})

	t.Run("Crossing the antimeridian", func(t *testing.T) {
		box := BoundingBox(0, 179.9, 50)
		assert.True(t, box.CrossesAntimeridian())
		assert.True(t, box.Contains(0, -179.9))
		assert.True(t, box.Contains(0, 179.95))
		assert.False(t, box.Contains(0, 0))
	})

	t.Run("Encloses circles at high latitudes and large radii", func(t *testing.T) {
		for _, lat := range []float64{0, 45, 60, 75, -75} {
			for _, radius := range []float64{50, 500, 2000} {
				box := BoundingBox(lat, 10, radius)
				for bearing := 0.0; bearing < 360; bearing += 5 {
					pLat, pLon := destination(lat, 10, bearing, radius*0.999)
					assert.True(t, box.Contains(pLat, pLon),
						fmt.Sprintf("lat=%v radius=%v bearing=%v point=(%.4f,%.4f) box=%+v", lat, radius, bearing, pLat, pLon, box))
				}
			}
		}
	})

	t.Run("Tangent longitude is wider than the parallel offset", func(t *testing.T) {
		box := BoundingBox(60, 10, 2000)
		r := 2000 / EarthRadiusKm
		naive := r * 180 / math.Pi / math.Cos(60*math.Pi/180)
		assert.Greater(t, box.MaxLon-10, naive)
	})

	t.Run("Near the pole covers all longitudes", func(t *testing.T) {
		box := BoundingBox(89.9, 10, 50)
		assert.Equal(t, -180.0, box.MinLon)
		assert.Equal(t, 180.0, box.MaxLon)
	})
}

// destination walks distKm from (lat, lon) along the initial bearing.
func destination(lat, lon, bearingDeg, distKm float64) (float64, float64) {
	phi1, lambda1 := toRad(lat), toRad(lon)
	theta, delta := toRad(bearingDeg), distKm/EarthRadiusKm

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2),
	)
	return phi2 * 180 / math.Pi, normalizeLon(lambda2 * 180 / math.Pi)
}
