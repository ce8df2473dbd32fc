// Package geo holds great-circle helpers shared by the search engine and the
// in-memory store.
package geo

import (
	"math"

	"agrorent-backend/internal/utils"
)

const EarthRadiusKm = 6371.0

func toRad(deg float64) float64 { return deg * math.Pi / 180.0 }

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad, lat2Rad := toRad(lat1), toRad(lat2)
	dLat := lat2Rad - lat1Rad
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// DistanceKm is HaversineKm rounded to one decimal, the precision shown to clients.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return utils.RoundHalfUp(HaversineKm(lat1, lon1, lat2, lon2), 1)
}

// Box is a lat/lon rectangle. MinLon may exceed MaxLon when the box crosses
// the antimeridian; use Contains rather than comparing bounds directly.
type Box struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// BoundingBox returns a box enclosing every point within radiusKm of the
// center. The longitude half-width is the tangent-meridian extent
// asin(sin(r)/cos(lat)), which becomes the full range once the circle reaches
// a pole.
func BoundingBox(lat, lon, radiusKm float64) Box {
	r := radiusKm / EarthRadiusKm
	dLat := r * (180 / math.Pi)

	box := Box{
		MinLat: math.Max(lat-dLat, -90),
		MaxLat: math.Min(lat+dLat, 90),
	}

	if box.MinLat <= -90 || box.MaxLat >= 90 {
		box.MinLon, box.MaxLon = -180, 180
		return box
	}

	ratio := math.Sin(r) / math.Cos(toRad(lat))
	if ratio >= 1 {
		box.MinLon, box.MaxLon = -180, 180
		return box
	}

	dLon := math.Asin(ratio) * (180 / math.Pi)
	box.MinLon = normalizeLon(lon - dLon)
	box.MaxLon = normalizeLon(lon + dLon)
	return box
}

func (b Box) CrossesAntimeridian() bool {
	return b.MinLon > b.MaxLon
}

func (b Box) Contains(lat, lon float64) bool {
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}
	if b.CrossesAntimeridian() {
		return lon >= b.MinLon || lon <= b.MaxLon
	}
	return lon >= b.MinLon && lon <= b.MaxLon
}

func normalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
