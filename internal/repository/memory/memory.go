// Package memory is an in-process implementation of the repositories, used by
// single-node deployments and tests. Reads and writes copy values so callers
// never share state with the store.
package memory

import (
	"sort"
	"sync"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/repository"
)

type Store struct {
	mu        sync.RWMutex
	users     map[string]*domain.User
	phones    map[string]string
	equipment map[string]*domain.Equipment
	bookings  map[string]*domain.Booking
	geo       *GeoIndex
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]*domain.User),
		phones:    make(map[string]string),
		equipment: make(map[string]*domain.Equipment),
		bookings:  make(map[string]*domain.Booking),
		geo:       NewGeoIndex(),
	}
}

func (s *Store) Users() repository.UserRepository           { return &userRepository{s: s} }
func (s *Store) Equipment() repository.EquipmentRepository { return &equipmentRepository{s: s} }
func (s *Store) Bookings() repository.BookingRepository    { return &bookingRepository{s: s} }

func cloneEquipment(e *domain.Equipment) domain.Equipment {
	c := *e
	c.Images = append([]string(nil), e.Images...)
	c.VerificationDocs = append([]string(nil), e.VerificationDocs...)
	c.PricePerHour = cloneFloat(e.PricePerHour)
	c.PricePerDay = cloneFloat(e.PricePerDay)
	c.PricePerWeek = cloneFloat(e.PricePerWeek)
	return c
}

func cloneBooking(b *domain.Booking) domain.Booking {
	c := *b
	c.RatingByRentTaker = cloneInt32(b.RatingByRentTaker)
	c.RatingByRenter = cloneInt32(b.RatingByRenter)
	return c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}

func cloneInt32(v *int32) *int32 {
	if v == nil {
		return nil
	}
	i := *v
	return &i
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newestFirst(bookings []domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID > bookings[j].ID
		}
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}
