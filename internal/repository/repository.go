package repository

import (
	"context"
	"time"

	"agrorent-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	UpdateRating(ctx context.Context, id string, rating float64, totalRatings int32) error
	ListIDs(ctx context.Context) ([]string, error)
}

// EquipmentFilter is the store-side part of a search. Zero values mean "no
// constraint"; price bounds apply to the rate column of PricingType.
type EquipmentFilter struct {
	AvailableOnly bool
	Category      domain.EquipmentCategory
	PricingType   domain.PricingType
	MinPrice      *float64
	MaxPrice      *float64
	Center        *domain.GeoPoint
	RadiusKm      float64
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Equipment, error)
	ListByCategory(ctx context.Context, category domain.EquipmentCategory, availableOnly bool) ([]domain.Equipment, error)
	ListIDs(ctx context.Context) ([]string, error)
	Search(ctx context.Context, filter EquipmentFilter) ([]domain.Equipment, error)
	// Nearby uses the store's own distance operator and returns hits nearest
	// first with the distance the store computed.
	Nearby(ctx context.Context, center domain.GeoPoint, radiusKm float64) ([]domain.EquipmentResult, error)
	IncrementTimesRented(ctx context.Context, id string) error
	UpdateRating(ctx context.Context, id string, rating float64, totalRatings int32) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	ListByEquipment(ctx context.Context, equipmentID string) ([]domain.Booking, error)
	// List queries below return newest first.
	ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error)
	ListByRentTaker(ctx context.Context, rentTakerID string) ([]domain.Booking, error)
	ListByRenterAndStatus(ctx context.Context, renterID string, status domain.BookingStatus) ([]domain.Booking, error)
	// ListOverlapping returns bookings on the equipment whose status is one of
	// statuses and whose window intersects [start, end], endpoints included.
	ListOverlapping(ctx context.Context, equipmentID string, start, end time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error)
}

// Store bundles the repositories of one backing store.
type Store interface {
	Users() UserRepository
	Equipment() EquipmentRepository
	Bookings() BookingRepository
}
