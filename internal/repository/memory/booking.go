package memory

import (
	"context"
	"slices"
	"time"

	"agrorent-backend/internal/domain"
	apperrors "agrorent-backend/pkg/errors"

	"github.com/google/uuid"
)

type bookingRepository struct {
	s *Store
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if _, exists := r.s.bookings[b.ID]; exists {
		return apperrors.NewConflictError("booking already exists")
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	c := cloneBooking(b)
	r.s.bookings[b.ID] = &c
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("booking not found")
	}
	c := cloneBooking(b)
	return &c, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.bookings[b.ID]
	if !ok {
		return apperrors.NewNotFoundError("booking not found")
	}
	stored.Status = b.Status
	stored.RejectionReason = b.RejectionReason
	stored.RatingByRentTaker = cloneInt32(b.RatingByRentTaker)
	stored.ReviewByRentTaker = b.ReviewByRentTaker
	stored.RatingByRenter = cloneInt32(b.RatingByRenter)
	stored.ReviewByRenter = b.ReviewByRenter
	stored.UpdatedAt = b.UpdatedAt
	return nil
}

func (r *bookingRepository) filter(keep func(b *domain.Booking) bool) []domain.Booking {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Booking
	for _, b := range r.s.bookings {
		if keep(b) {
			out = append(out, cloneBooking(b))
		}
	}
	newestFirst(out)
	return out
}

func (r *bookingRepository) ListByEquipment(ctx context.Context, equipmentID string) ([]domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool { return b.EquipmentID == equipmentID }), nil
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool { return b.RenterID == renterID }), nil
}

func (r *bookingRepository) ListByRentTaker(ctx context.Context, rentTakerID string) ([]domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool { return b.RentTakerID == rentTakerID }), nil
}

func (r *bookingRepository) ListByRenterAndStatus(ctx context.Context, renterID string, status domain.BookingStatus) ([]domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool {
		return b.RenterID == renterID && b.Status == status
	}), nil
}

func (r *bookingRepository) ListOverlapping(ctx context.Context, equipmentID string, start, end time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool {
		return b.EquipmentID == equipmentID &&
			slices.Contains(statuses, b.Status) &&
			domain.Overlaps(b.StartDate, b.EndDate, start, end)
	}), nil
}
