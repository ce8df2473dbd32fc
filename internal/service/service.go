package service

import (
	"context"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/search"
)

// Callers are identified by phone, the principal carried in access tokens.

type RegisterInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Village  string
	District string
	State    string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) // user, access token
	Login(ctx context.Context, phone, password string) (*domain.User, string, error)
}

type UserService interface {
	GetCurrentUser(ctx context.Context, phone string) (*domain.User, error)
}

type EquipmentService interface {
	CreateEquipment(ctx context.Context, ownerPhone string, eq *domain.Equipment) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, ownerPhone, equipmentID string, eq *domain.Equipment) (*domain.Equipment, error)
	DeleteEquipment(ctx context.Context, ownerPhone, equipmentID string) error
	ToggleAvailability(ctx context.Context, ownerPhone, equipmentID string) (*domain.Equipment, error)
	GetMyEquipment(ctx context.Context, ownerPhone string) ([]domain.Equipment, error)
	GetEquipment(ctx context.Context, equipmentID string) (*domain.Equipment, error)
	GetEquipmentByCategory(ctx context.Context, category string) ([]domain.Equipment, error)
	ListCategories(ctx context.Context) []domain.EquipmentCategory
	SearchEquipment(ctx context.Context, criteria search.Criteria, sort search.Sort) ([]domain.EquipmentResult, error)
	GetNearbyEquipment(ctx context.Context, lat, lon, radiusKm float64) ([]domain.EquipmentResult, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, requesterPhone, equipmentID string, start, end time.Time, notes string) (*domain.Booking, error)
	ApproveBooking(ctx context.Context, renterPhone, bookingID string) (*domain.Booking, error)
	RejectBooking(ctx context.Context, renterPhone, bookingID, reason string) (*domain.Booking, error)
	StartBooking(ctx context.Context, renterPhone, bookingID string) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, renterPhone, bookingID string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, actorPhone, bookingID string) (*domain.Booking, error)

	// Rate resolves the direction from the caller's side of the booking.
	Rate(ctx context.Context, actorPhone, bookingID string, rating int32, review string) (*domain.Booking, error)
	RateByRentTaker(ctx context.Context, rentTakerPhone, bookingID string, rating int32, review string) (*domain.Booking, error)
	RateByRenter(ctx context.Context, renterPhone, bookingID string, rating int32, review string) (*domain.Booking, error)

	GetBooking(ctx context.Context, actorPhone, bookingID string) (*domain.Booking, error)
	GetRenterBookings(ctx context.Context, renterPhone string) ([]domain.Booking, error)
	GetRentTakerBookings(ctx context.Context, rentTakerPhone string) ([]domain.Booking, error)
	GetPendingBookingsForRenter(ctx context.Context, renterPhone string) ([]domain.Booking, error)
}

// ConflictChecker answers whether a window collides with live bookings.
type ConflictChecker interface {
	HasConflict(ctx context.Context, equipmentID string, start, end time.Time) (bool, error)
}

// RatingAggregator re-derives denormalized ratings from completed bookings.
type RatingAggregator interface {
	RecomputeEquipment(ctx context.Context, equipmentID string) error
	RecomputeUser(ctx context.Context, userID string) error
	RecomputeAll(ctx context.Context) (RecomputeReport, error)
}

type RecomputeReport struct {
	Equipment int
	Users     int
	Failed    int
}
