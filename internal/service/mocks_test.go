package service_test

import (
	"context"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/lock"
	"agrorent-backend/internal/repository"
	"agrorent-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateRating(ctx context.Context, id string, rating float64, totalRatings int32) error {
	args := m.Called(ctx, id, rating, totalRatings)
	return args.Error(0)
}
func (m *MockUserRepo) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Equipment, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) ListByCategory(ctx context.Context, category domain.EquipmentCategory, availableOnly bool) ([]domain.Equipment, error) {
	args := m.Called(ctx, category, availableOnly)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockEquipmentRepo) Search(ctx context.Context, filter repository.EquipmentFilter) ([]domain.Equipment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Nearby(ctx context.Context, center domain.GeoPoint, radiusKm float64) ([]domain.EquipmentResult, error) {
	args := m.Called(ctx, center, radiusKm)
	return args.Get(0).([]domain.EquipmentResult), args.Error(1)
}
func (m *MockEquipmentRepo) IncrementTimesRented(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) UpdateRating(ctx context.Context, id string, rating float64, totalRatings int32) error {
	args := m.Called(ctx, id, rating, totalRatings)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByEquipment(ctx context.Context, equipmentID string) ([]domain.Booking, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	args := m.Called(ctx, renterID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByRentTaker(ctx context.Context, rentTakerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, rentTakerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByRenterAndStatus(ctx context.Context, renterID string, status domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, renterID, status)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListOverlapping(ctx context.Context, equipmentID string, start, end time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, equipmentID, start, end, statuses)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockLocker
type MockLocker struct {
	mock.Mock
	released int
}

func (m *MockLocker) Acquire(ctx context.Context, key string) (lock.Release, error) {
	args := m.Called(ctx, key)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(context.Context) error {
		m.released++
		return nil
	}, nil
}

// MockRatingAggregator
type MockRatingAggregator struct {
	mock.Mock
}

func (m *MockRatingAggregator) RecomputeEquipment(ctx context.Context, equipmentID string) error {
	args := m.Called(ctx, equipmentID)
	return args.Error(0)
}
func (m *MockRatingAggregator) RecomputeUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockRatingAggregator) RecomputeAll(ctx context.Context) (service.RecomputeReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.RecomputeReport), args.Error(1)
}
