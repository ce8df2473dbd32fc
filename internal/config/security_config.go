package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps methods to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	"/grpc.health.v1.Health/Check": SecurityPublic,
	"/grpc.health.v1.Health/Watch": SecurityPublic,

	// AuthService - Public
	"/agrorent.api.v1.AuthService/Register": SecurityPublic,
	"/agrorent.api.v1.AuthService/Login":    SecurityPublic,

	// AuthService - Protected
	"/agrorent.api.v1.AuthService/GetCurrentUser": SecurityAccess,

	// EquipmentService - Public reads
	"/agrorent.api.v1.EquipmentService/ListCategories":         SecurityPublic,
	"/agrorent.api.v1.EquipmentService/GetEquipment":           SecurityPublic,
	"/agrorent.api.v1.EquipmentService/GetEquipmentByCategory": SecurityPublic,
	"/agrorent.api.v1.EquipmentService/SearchEquipment":        SecurityPublic,
	"/agrorent.api.v1.EquipmentService/GetNearbyEquipment":     SecurityPublic,

	// EquipmentService - Owner actions
	"/agrorent.api.v1.EquipmentService/CreateEquipment":    SecurityAccess,
	"/agrorent.api.v1.EquipmentService/UpdateEquipment":    SecurityAccess,
	"/agrorent.api.v1.EquipmentService/DeleteEquipment":    SecurityAccess,
	"/agrorent.api.v1.EquipmentService/ToggleAvailability": SecurityAccess,
	"/agrorent.api.v1.EquipmentService/GetMyEquipment":     SecurityAccess,

	// BookingService - All Access Protected
	"/agrorent.api.v1.BookingService/CreateBooking":         SecurityAccess,
	"/agrorent.api.v1.BookingService/ApproveBooking":        SecurityAccess,
	"/agrorent.api.v1.BookingService/RejectBooking":         SecurityAccess,
	"/agrorent.api.v1.BookingService/StartBooking":          SecurityAccess,
	"/agrorent.api.v1.BookingService/CompleteBooking":       SecurityAccess,
	"/agrorent.api.v1.BookingService/CancelBooking":         SecurityAccess,
	"/agrorent.api.v1.BookingService/RateBooking":           SecurityAccess,
	"/agrorent.api.v1.BookingService/GetBooking":            SecurityAccess,
	"/agrorent.api.v1.BookingService/ListRenterBookings":    SecurityAccess,
	"/agrorent.api.v1.BookingService/ListRentTakerBookings": SecurityAccess,
	"/agrorent.api.v1.BookingService/ListPendingBookings":   SecurityAccess,
}

// GetSecurityLevel returns the security level for a given method
func GetSecurityLevel(method string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
