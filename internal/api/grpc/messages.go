package grpc

import (
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/search"
)

type Empty struct{}

// Auth

type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
	Village  string `json:"village,omitempty"`
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type UserResponse struct {
	User *domain.User `json:"user"`
}

// Equipment

type EquipmentIDRequest struct {
	ID string `json:"id"`
}

type EquipmentRequest struct {
	ID        string           `json:"id,omitempty"`
	Equipment domain.Equipment `json:"equipment"`
}

type EquipmentResponse struct {
	Equipment *domain.Equipment `json:"equipment"`
}

type EquipmentListResponse struct {
	Equipment []domain.Equipment `json:"equipment"`
}

type CategoryRequest struct {
	Category string `json:"category"`
}

type CategoriesResponse struct {
	Categories []domain.EquipmentCategory `json:"categories"`
}

type SearchEquipmentRequest struct {
	search.Criteria
	search.Sort
}

type NearbyRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radius_km,omitempty"`
}

type SearchResponse struct {
	Results []domain.EquipmentResult `json:"results"`
}

// Bookings

type CreateBookingRequest struct {
	EquipmentID string    `json:"equipment_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Notes       string    `json:"notes,omitempty"`
}

type BookingIDRequest struct {
	BookingID string `json:"booking_id"`
}

type RejectBookingRequest struct {
	BookingID string `json:"booking_id"`
	Reason    string `json:"reason,omitempty"`
}

type RateBookingRequest struct {
	BookingID string `json:"booking_id"`
	Rating    int32  `json:"rating"`
	Review    string `json:"review,omitempty"`
}

type BookingResponse struct {
	Booking *domain.Booking `json:"booking"`
}

type BookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
}
