package memory

import (
	"fmt"
	"sort"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/geo"

	"github.com/dhconnelly/rtreego"
)

const (
	tolerance   = 1e-7
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

type geoItem struct {
	id    string
	point domain.GeoPoint
	rect  *rtreego.Rect
}

func (g *geoItem) Bounds() *rtreego.Rect {
	return g.rect
}

// GeoHit is one point returned by a radius query.
type GeoHit struct {
	ID         string
	DistanceKm float64
}

// GeoIndex is an R-tree over (lat, lon). It is not safe for concurrent use;
// the owning Store serializes access.
type GeoIndex struct {
	tree  *rtreego.Rtree
	items map[string]*geoItem
}

func NewGeoIndex() *GeoIndex {
	return &GeoIndex{
		tree:  rtreego.NewTree(dimensions, minChildren, maxChildren),
		items: make(map[string]*geoItem),
	}
}

// Upsert indexes id at p, replacing any previous position.
func (g *GeoIndex) Upsert(id string, p domain.GeoPoint) {
	g.Remove(id)
	item := &geoItem{
		id:    id,
		point: p,
		rect:  rtreego.Point{p.Lat, p.Lon}.ToRect(tolerance),
	}
	g.tree.Insert(item)
	g.items[id] = item
}

func (g *GeoIndex) Remove(id string) {
	item, ok := g.items[id]
	if !ok {
		return
	}
	g.tree.Delete(item)
	delete(g.items, id)
}

func (g *GeoIndex) Size() int {
	return len(g.items)
}

// Within returns every indexed point no further than radiusKm from center,
// nearest first. The R-tree narrows candidates to the bounding box and the
// great-circle distance decides membership.
func (g *GeoIndex) Within(center domain.GeoPoint, radiusKm float64) ([]GeoHit, error) {
	box := geo.BoundingBox(center.Lat, center.Lon, radiusKm)

	var spans [][2]float64
	if box.CrossesAntimeridian() {
		spans = [][2]float64{{box.MinLon, 180}, {-180, box.MaxLon}}
	} else {
		spans = [][2]float64{{box.MinLon, box.MaxLon}}
	}

	seen := make(map[string]struct{})
	var hits []GeoHit
	for _, span := range spans {
		rect, err := rtreego.NewRect(
			rtreego.Point{box.MinLat, span[0]},
			[]float64{positive(box.MaxLat - box.MinLat), positive(span[1] - span[0])},
		)
		if err != nil {
			return nil, fmt.Errorf("invalid radius search: %w", err)
		}
		for _, s := range g.tree.SearchIntersect(rect) {
			item, ok := s.(*geoItem)
			if !ok {
				continue
			}
			if _, dup := seen[item.id]; dup {
				continue
			}
			seen[item.id] = struct{}{}

			d := geo.HaversineKm(center.Lat, center.Lon, item.point.Lat, item.point.Lon)
			if d <= radiusKm {
				hits = append(hits, GeoHit{ID: item.id, DistanceKm: d})
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].DistanceKm == hits[j].DistanceKm {
			return hits[i].ID < hits[j].ID
		}
		return hits[i].DistanceKm < hits[j].DistanceKm
	})
	return hits, nil
}

// rtreego rejects zero-length sides.
func positive(v float64) float64 {
	if v <= 0 {
		return tolerance
	}
	return v
}
