package service

import (
	"context"
	"errors"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/lock"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"
	"agrorent-backend/internal/utils"
	apperrors "agrorent-backend/pkg/errors"
)

const (
	minRating = 1
	maxRating = 5
)

type bookingService struct {
	bookingRepo   repository.BookingRepository
	equipmentRepo repository.EquipmentRepository
	userRepo      repository.UserRepository
	conflicts     ConflictChecker
	ratings       RatingAggregator
	locker        lock.Locker
	now           func() time.Time
}

type BookingOption func(*bookingService)

// WithLocker serializes booking creation per equipment.
func WithLocker(l lock.Locker) BookingOption {
	return func(s *bookingService) { s.locker = l }
}

func WithClock(now func() time.Time) BookingOption {
	return func(s *bookingService) { s.now = now }
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	equipmentRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	conflicts ConflictChecker,
	ratings RatingAggregator,
	opts ...BookingOption,
) BookingService {
	s := &bookingService{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		conflicts:     conflicts,
		ratings:       ratings,
		locker:        lock.Noop{},
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *bookingService) CreateBooking(ctx context.Context, requesterPhone, equipmentID string, start, end time.Time, notes string) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.CreateBooking", "requesterPhone", requesterPhone, "equipmentID", equipmentID, "start", start, "end", end)

	booking, err := s.createBooking(ctx, requesterPhone, equipmentID, start, end, notes)
	if err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err)
		return nil, err
	}

	logger.ExitMethod("bookingService.CreateBooking", "bookingID", booking.ID, "pricingType", booking.PricingType, "totalCost", booking.TotalCost)
	return booking, nil
}

func (s *bookingService) createBooking(ctx context.Context, requesterPhone, equipmentID string, start, end time.Time, notes string) (*domain.Booking, error) {
	if !end.After(start) {
		return nil, apperrors.NewValidationError("end date must be after start date")
	}

	rentTaker, err := s.userRepo.GetByPhone(ctx, requesterPhone)
	if err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if !equipment.Available {
		return nil, apperrors.NewInvalidStateError("equipment is not available for booking", nil)
	}

	release, err := s.locker.Acquire(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, apperrors.NewConflictError("another booking for this equipment is in progress")
		}
		return nil, apperrors.NewInternalError("failed to lock equipment", err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("Failed to release booking lock", "equipmentID", equipmentID, "error", err)
		}
	}()

	conflict, err := s.conflicts.HasConflict(ctx, equipmentID, start, end)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.NewConflictError("equipment is already booked for the selected dates")
	}

	quote, err := utils.CalculateBookingCost(start, end, equipment.Rates())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	booking := &domain.Booking{
		EquipmentID:       equipment.ID,
		EquipmentName:     equipment.Name,
		EquipmentCategory: equipment.Category,
		RenterID:          equipment.OwnerID,
		RenterName:        equipment.OwnerName,
		RenterPhone:       equipment.OwnerPhone,
		RentTakerID:       rentTaker.ID,
		RentTakerName:     rentTaker.Name,
		RentTakerPhone:    rentTaker.Phone,
		StartDate:         start,
		EndDate:           end,
		DurationHours:     quote.Hours,
		TotalCost:         quote.TotalCost,
		PricingType:       quote.PricingType,
		Status:            domain.BookingStatusPending,
		Notes:             notes,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	logger.Info("Booking requested", "bookingID", booking.ID, "equipmentID", equipmentID, "rentTakerID", rentTaker.ID)
	return booking, nil
}

// bookingForRenter loads the booking and checks that phone is its renter.
func (s *bookingService) bookingForRenter(ctx context.Context, renterPhone, bookingID string) (*domain.Booking, error) {
	renter, err := s.userRepo.GetByPhone(ctx, renterPhone)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != renter.ID {
		return nil, apperrors.NewUnauthorizedError("this booking does not belong to you")
	}
	return booking, nil
}

func transitionError(err error) error {
	var te *domain.TransitionError
	if errors.As(err, &te) {
		return apperrors.NewInvalidStateError(te.Error(), err)
	}
	return err
}

// advance applies one status change and persists it.
func (s *bookingService) advance(ctx context.Context, booking *domain.Booking, next domain.BookingStatus, mutate func(*domain.Booking)) error {
	from := booking.Status
	if err := booking.Transition(next, s.now()); err != nil {
		return transitionError(err)
	}
	if mutate != nil {
		mutate(booking)
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return err
	}
	logger.Info("Booking status changed", "bookingID", booking.ID, "from", from, "to", next)
	return nil
}

func (s *bookingService) renterAction(ctx context.Context, method, renterPhone, bookingID string, next domain.BookingStatus, mutate func(*domain.Booking)) (*domain.Booking, error) {
	logger.EnterMethod(method, "renterPhone", renterPhone, "bookingID", bookingID)

	booking, err := s.bookingForRenter(ctx, renterPhone, bookingID)
	if err == nil {
		err = s.advance(ctx, booking, next, mutate)
	}
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}

	logger.ExitMethod(method, "status", booking.Status)
	return booking, nil
}

func (s *bookingService) ApproveBooking(ctx context.Context, renterPhone, bookingID string) (*domain.Booking, error) {
	return s.renterAction(ctx, "bookingService.ApproveBooking", renterPhone, bookingID, domain.BookingStatusApproved, nil)
}

func (s *bookingService) RejectBooking(ctx context.Context, renterPhone, bookingID, reason string) (*domain.Booking, error) {
	return s.renterAction(ctx, "bookingService.RejectBooking", renterPhone, bookingID, domain.BookingStatusRejected, func(b *domain.Booking) {
		b.RejectionReason = reason
	})
}

// StartBooking also bumps the equipment's rental counter. The start is
// already saved by then, so a failed increment is logged and the ACTIVE
// booking is still returned.
func (s *bookingService) StartBooking(ctx context.Context, renterPhone, bookingID string) (*domain.Booking, error) {
	booking, err := s.renterAction(ctx, "bookingService.StartBooking", renterPhone, bookingID, domain.BookingStatusActive, nil)
	if err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.IncrementTimesRented(ctx, booking.EquipmentID); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			logger.Warn("Started booking for missing equipment", "bookingID", booking.ID, "equipmentID", booking.EquipmentID)
		} else {
			logger.Error("Failed to increment times rented", "bookingID", booking.ID, "equipmentID", booking.EquipmentID, "error", err)
		}
	}
	return booking, nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, renterPhone, bookingID string) (*domain.Booking, error) {
	return s.renterAction(ctx, "bookingService.CompleteBooking", renterPhone, bookingID, domain.BookingStatusCompleted, nil)
}

func (s *bookingService) CancelBooking(ctx context.Context, actorPhone, bookingID string) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.CancelBooking", "actorPhone", actorPhone, "bookingID", bookingID)

	booking, err := s.bookingForParty(ctx, actorPhone, bookingID)
	if err == nil {
		err = s.advance(ctx, booking, domain.BookingStatusCancelled, nil)
	}
	if err != nil {
		logger.ExitMethodWithError("bookingService.CancelBooking", err)
		return nil, err
	}

	logger.ExitMethod("bookingService.CancelBooking")
	return booking, nil
}

func (s *bookingService) bookingForParty(ctx context.Context, phone, bookingID string) (*domain.Booking, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsParty(user.ID) {
		return nil, apperrors.NewUnauthorizedError("you are not a party to this booking")
	}
	return booking, nil
}

func validateRating(rating int32) error {
	if rating < minRating || rating > maxRating {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}
	return nil
}

func requireCompleted(b *domain.Booking) error {
	if b.Status != domain.BookingStatusCompleted {
		return apperrors.NewInvalidStateError("can only rate completed bookings", nil)
	}
	return nil
}

func (s *bookingService) Rate(ctx context.Context, actorPhone, bookingID string, rating int32, review string) (*domain.Booking, error) {
	user, err := s.userRepo.GetByPhone(ctx, actorPhone)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	switch user.ID {
	case booking.RentTakerID:
		return s.RateByRentTaker(ctx, actorPhone, bookingID, rating, review)
	case booking.RenterID:
		return s.RateByRenter(ctx, actorPhone, bookingID, rating, review)
	default:
		return nil, apperrors.NewUnauthorizedError("you are not a party to this booking")
	}
}

// RateByRentTaker records the rent taker's score of the equipment and
// recomputes the equipment's aggregate.
func (s *bookingService) RateByRentTaker(ctx context.Context, rentTakerPhone, bookingID string, rating int32, review string) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.RateByRentTaker", "rentTakerPhone", rentTakerPhone, "bookingID", bookingID, "rating", rating)

	booking, err := s.rateByRentTaker(ctx, rentTakerPhone, bookingID, rating, review)
	if err != nil {
		logger.ExitMethodWithError("bookingService.RateByRentTaker", err)
		return nil, err
	}

	logger.ExitMethod("bookingService.RateByRentTaker")
	return booking, nil
}

func (s *bookingService) rateByRentTaker(ctx context.Context, rentTakerPhone, bookingID string, rating int32, review string) (*domain.Booking, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	rentTaker, err := s.userRepo.GetByPhone(ctx, rentTakerPhone)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RentTakerID != rentTaker.ID {
		return nil, apperrors.NewUnauthorizedError("you can only rate your own bookings")
	}
	if err := requireCompleted(booking); err != nil {
		return nil, err
	}

	booking.RatingByRentTaker = &rating
	booking.ReviewByRentTaker = review
	booking.UpdatedAt = s.now()
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	if err := s.ratings.RecomputeEquipment(ctx, booking.EquipmentID); err != nil {
		return nil, err
	}
	return booking, nil
}

// RateByRenter records the renter's score of the rent taker and recomputes
// the rent taker's aggregate.
func (s *bookingService) RateByRenter(ctx context.Context, renterPhone, bookingID string, rating int32, review string) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.RateByRenter", "renterPhone", renterPhone, "bookingID", bookingID, "rating", rating)

	booking, err := s.rateByRenter(ctx, renterPhone, bookingID, rating, review)
	if err != nil {
		logger.ExitMethodWithError("bookingService.RateByRenter", err)
		return nil, err
	}

	logger.ExitMethod("bookingService.RateByRenter")
	return booking, nil
}

func (s *bookingService) rateByRenter(ctx context.Context, renterPhone, bookingID string, rating int32, review string) (*domain.Booking, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	booking, err := s.bookingForRenter(ctx, renterPhone, bookingID)
	if err != nil {
		return nil, err
	}
	if err := requireCompleted(booking); err != nil {
		return nil, err
	}

	booking.RatingByRenter = &rating
	booking.ReviewByRenter = review
	booking.UpdatedAt = s.now()
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	if err := s.ratings.RecomputeUser(ctx, booking.RentTakerID); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actorPhone, bookingID string) (*domain.Booking, error) {
	return s.bookingForParty(ctx, actorPhone, bookingID)
}

func (s *bookingService) GetRenterBookings(ctx context.Context, renterPhone string) ([]domain.Booking, error) {
	renter, err := s.userRepo.GetByPhone(ctx, renterPhone)
	if err != nil {
		return nil, err
	}
	return s.bookingRepo.ListByRenter(ctx, renter.ID)
}

func (s *bookingService) GetRentTakerBookings(ctx context.Context, rentTakerPhone string) ([]domain.Booking, error) {
	rentTaker, err := s.userRepo.GetByPhone(ctx, rentTakerPhone)
	if err != nil {
		return nil, err
	}
	return s.bookingRepo.ListByRentTaker(ctx, rentTaker.ID)
}

func (s *bookingService) GetPendingBookingsForRenter(ctx context.Context, renterPhone string) ([]domain.Booking, error) {
	renter, err := s.userRepo.GetByPhone(ctx, renterPhone)
	if err != nil {
		return nil, err
	}
	return s.bookingRepo.ListByRenterAndStatus(ctx, renter.ID, domain.BookingStatusPending)
}
