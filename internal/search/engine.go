// Package search ranks available equipment by distance, price or rating.
package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/geo"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"
	apperrors "agrorent-backend/pkg/errors"
)

type SortKey string

const (
	SortByDistance SortKey = "distance"
	SortByPrice    SortKey = "price"
	SortByRating   SortKey = "rating"
)

type SortOrder string

const (
	OrderDefault SortOrder = ""
	OrderAsc     SortOrder = "asc"
	OrderDesc    SortOrder = "desc"
)

// Sort is a client sort directive. Unknown keys fall back to distance and
// unknown orders to the key's default direction.
type Sort struct {
	By    string `json:"sort_by,omitempty"`
	Order string `json:"sort_order,omitempty"`
}

func (s Sort) key() SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s.By))) {
	case SortByPrice:
		return SortByPrice
	case SortByRating:
		return SortByRating
	default:
		return SortByDistance
	}
}

// descending resolves the direction: rating is high-to-low unless asc is
// asked for; distance and price are low-to-high unless desc is asked for.
func (s Sort) descending() bool {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s.Order)))
	if s.key() == SortByRating {
		return order != OrderAsc
	}
	return order == OrderDesc
}

type Criteria struct {
	Category    string   `json:"category,omitempty"`
	PricingType string   `json:"pricing_type,omitempty"`
	MinPrice    *float64 `json:"min_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	RadiusKm    *float64 `json:"radius_km,omitempty"`
}

type Engine struct {
	repo            repository.EquipmentRepository
	defaultRadiusKm float64
}

func NewEngine(repo repository.EquipmentRepository, defaultRadiusKm float64) *Engine {
	return &Engine{repo: repo, defaultRadiusKm: defaultRadiusKm}
}

func (e *Engine) DefaultRadiusKm() float64 { return e.defaultRadiusKm }

func parsePricingType(s string) (domain.PricingType, error) {
	if s == "" {
		return domain.PricingTypeDaily, nil
	}
	p := domain.PricingType(strings.ToUpper(s))
	if !p.Valid() {
		return "", apperrors.NewValidationError(fmt.Sprintf("unknown pricing type %q", s))
	}
	return p, nil
}

func (e *Engine) radius(r *float64) (float64, error) {
	if r == nil {
		return e.defaultRadiusKm, nil
	}
	if math.IsNaN(*r) || math.IsInf(*r, 0) {
		return 0, apperrors.NewValidationError("radius must be a finite number")
	}
	if *r < 0 {
		return 0, apperrors.NewValidationError("radius must not be negative")
	}
	return *r, nil
}

// filter turns client criteria into a store filter. A center needs both
// coordinates; a lone latitude or longitude is ignored.
func (e *Engine) filter(c Criteria) (repository.EquipmentFilter, error) {
	f := repository.EquipmentFilter{AvailableOnly: true}

	if c.Category != "" {
		cat, ok := domain.ParseCategory(c.Category)
		if !ok {
			return f, apperrors.NewValidationError(fmt.Sprintf("unknown category %q", c.Category))
		}
		f.Category = cat
	}

	pt, err := parsePricingType(c.PricingType)
	if err != nil {
		return f, err
	}
	f.PricingType = pt

	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return f, apperrors.NewValidationError("min price exceeds max price")
	}
	f.MinPrice = c.MinPrice
	f.MaxPrice = c.MaxPrice

	if c.Latitude != nil && c.Longitude != nil {
		center := domain.GeoPoint{Lat: *c.Latitude, Lon: *c.Longitude}
		if !center.Valid() {
			return f, apperrors.NewValidationError("coordinates out of range")
		}
		r, err := e.radius(c.RadiusKm)
		if err != nil {
			return f, err
		}
		f.Center = &center
		f.RadiusKm = r
	}
	return f, nil
}

// Search returns available equipment matching c, ranked by s.
func (e *Engine) Search(ctx context.Context, c Criteria, s Sort) ([]domain.EquipmentResult, error) {
	f, err := e.filter(c)
	if err != nil {
		return nil, err
	}

	found, err := e.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}

	results := make([]domain.EquipmentResult, len(found))
	for i := range found {
		results[i].Equipment = found[i]
		if f.Center != nil {
			d := geo.DistanceKm(f.Center.Lat, f.Center.Lon, found[i].Location.Lat, found[i].Location.Lon)
			results[i].DistanceKm = &d
		}
	}

	SortResults(results, s, f.PricingType)
	logger.Debug("Equipment search", "results", len(results), "sort", s.key(), "desc", s.descending())
	return results, nil
}

// Nearby lists available equipment within radiusKm, nearest first, with the
// distance the store reported. A non-positive radius uses the default.
func (e *Engine) Nearby(ctx context.Context, lat, lon, radiusKm float64) ([]domain.EquipmentResult, error) {
	center := domain.GeoPoint{Lat: lat, Lon: lon}
	if !center.Valid() {
		return nil, apperrors.NewValidationError("coordinates out of range")
	}
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return nil, apperrors.NewValidationError("radius must be a finite number")
	}
	if radiusKm <= 0 {
		radiusKm = e.defaultRadiusKm
	}

	hits, err := e.repo.Nearby(ctx, center, radiusKm)
	if err != nil {
		return nil, err
	}
	out := hits[:0]
	for _, h := range hits {
		if h.Available {
			out = append(out, h)
		}
	}
	return out, nil
}

// sortValue extracts the key; ok is false when the result has no value for it.
func sortValue(r *domain.EquipmentResult, key SortKey, pt domain.PricingType) (float64, bool) {
	switch key {
	case SortByPrice:
		p := r.Rates().For(pt)
		if p == nil {
			return 0, false
		}
		return *p, true
	case SortByRating:
		if !r.Rated() {
			return 0, false
		}
		return r.Rating, true
	default:
		if r.DistanceKm == nil {
			return 0, false
		}
		return *r.DistanceKm, true
	}
}

// SortResults orders results in place. Results lacking the key go last in
// either direction; ties keep store order.
func SortResults(results []domain.EquipmentResult, s Sort, pt domain.PricingType) {
	key, desc := s.key(), s.descending()
	sort.SliceStable(results, func(i, j int) bool {
		vi, okI := sortValue(&results[i], key, pt)
		vj, okJ := sortValue(&results[j], key, pt)
		switch {
		case !okI && !okJ:
			return false
		case !okI:
			return false
		case !okJ:
			return true
		case desc:
			return vi > vj
		default:
			return vi < vj
		}
	})
}
