package memory

import (
	"context"
	"sort"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/repository"
	apperrors "agrorent-backend/pkg/errors"

	"github.com/google/uuid"
)

type equipmentRepository struct {
	s *Store
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if _, exists := r.s.equipment[e.ID]; exists {
		return apperrors.NewConflictError("equipment already exists")
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	c := cloneEquipment(e)
	r.s.equipment[e.ID] = &c
	r.s.geo.Upsert(e.ID, e.Location)
	return nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.equipment[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("equipment not found")
	}
	c := cloneEquipment(e)
	return &c, nil
}

func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.equipment[e.ID]
	if !ok {
		return apperrors.NewNotFoundError("equipment not found")
	}
	e.UpdatedAt = time.Now().UTC()

	c := cloneEquipment(e)
	// counters are owned by the lifecycle, not by owner edits
	c.OwnerID = stored.OwnerID
	c.Rating = stored.Rating
	c.TotalRatings = stored.TotalRatings
	c.TimesRented = stored.TimesRented
	c.CreatedAt = stored.CreatedAt
	r.s.equipment[e.ID] = &c

	if stored.Location != c.Location {
		r.s.geo.Upsert(e.ID, c.Location)
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.equipment[id]; !ok {
		return apperrors.NewNotFoundError("equipment not found")
	}
	delete(r.s.equipment, id)
	r.s.geo.Remove(id)
	return nil
}

func (r *equipmentRepository) collect(keep func(e *domain.Equipment) bool) []domain.Equipment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Equipment
	for _, id := range sortedKeys(r.s.equipment) {
		e := r.s.equipment[id]
		if keep(e) {
			out = append(out, cloneEquipment(e))
		}
	}
	return out
}

func (r *equipmentRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Equipment, error) {
	out := r.collect(func(e *domain.Equipment) bool { return e.OwnerID == ownerID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *equipmentRepository) ListByCategory(ctx context.Context, category domain.EquipmentCategory, availableOnly bool) ([]domain.Equipment, error) {
	out := r.collect(func(e *domain.Equipment) bool {
		return e.Category == category && (!availableOnly || e.Available)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *equipmentRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedKeys(r.s.equipment), nil
}

func matches(e *domain.Equipment, f repository.EquipmentFilter) bool {
	if f.AvailableOnly && !e.Available {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		rate := e.Rates().For(f.PricingType)
		if rate == nil {
			return false
		}
		if f.MinPrice != nil && *rate < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && *rate > *f.MaxPrice {
			return false
		}
	}
	return true
}

func (r *equipmentRepository) Search(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, error) {
	if f.Center == nil {
		return r.collect(func(e *domain.Equipment) bool { return matches(e, f) }), nil
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	hits, err := r.s.geo.Within(*f.Center, f.RadiusKm)
	if err != nil {
		return nil, apperrors.NewInternalError("geo index query failed", err)
	}
	var out []domain.Equipment
	for _, h := range hits {
		e, ok := r.s.equipment[h.ID]
		if ok && matches(e, f) {
			out = append(out, cloneEquipment(e))
		}
	}
	return out, nil
}

func (r *equipmentRepository) Nearby(ctx context.Context, center domain.GeoPoint, radiusKm float64) ([]domain.EquipmentResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	hits, err := r.s.geo.Within(center, radiusKm)
	if err != nil {
		return nil, apperrors.NewInternalError("geo index query failed", err)
	}
	out := make([]domain.EquipmentResult, 0, len(hits))
	for _, h := range hits {
		e, ok := r.s.equipment[h.ID]
		if !ok {
			continue
		}
		d := h.DistanceKm // unrounded; Search rounds for display
		out = append(out, domain.EquipmentResult{Equipment: cloneEquipment(e), DistanceKm: &d})
	}
	return out, nil
}

func (r *equipmentRepository) IncrementTimesRented(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.equipment[id]
	if !ok {
		return apperrors.NewNotFoundError("equipment not found")
	}
	e.TimesRented++
	e.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *equipmentRepository) UpdateRating(ctx context.Context, id string, rating float64, totalRatings int32) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.equipment[id]
	if !ok {
		return apperrors.NewNotFoundError("equipment not found")
	}
	e.Rating = rating
	e.TotalRatings = totalRatings
	e.UpdatedAt = time.Now().UTC()
	return nil
}
