package grpc

import (
	"context"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

func bookingResponse(b *domain.Booking, err error) (*BookingResponse, error) {
	if err != nil {
		return nil, err
	}
	return &BookingResponse{Booking: b}, nil
}

func bookingList(list []domain.Booking, err error) (*BookingListResponse, error) {
	if err != nil {
		return nil, err
	}
	return &BookingListResponse{Bookings: list}, nil
}

func (h *BookingHandler) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return bookingResponse(h.bookingSvc.CreateBooking(ctx, phone, req.EquipmentID, req.StartDate, req.EndDate, req.Notes))
}

func (h *BookingHandler) ApproveBooking(ctx context.Context, req *BookingIDRequest) (*BookingResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return bookingResponse(h.bookingSvc.ApproveBooking(ctx, phone, req.BookingID))
}

func (h *BookingHandler) RejectBooking(ctx context.Context, req *RejectBookingRequest) (*BookingResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return bookingResponse(h.bookingSvc.RejectBooking(ctx, phone, req.BookingID, req.Reason))
}

func (h *BookingHandler) StartBooking(ctx context.Context, req *BookingIDRequest) (*BookingResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return bookingResponse(h.bookingSvc.StartBooking(ctx, phone, req.BookingID))
}

func (h *BookingHandler) CompleteBooking(ctx context.Context, req *BookingIDRequest) (*BookingResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return bookingResponse(h.bookingSvc.CompleteBooking(ctx, phone, req.BookingID))
}

func (h *BookingHandler) CancelBooking(ctx context.Context, req *BookingIDRequest) (*BookingResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return bookingResponse(h.bookingSvc.CancelBooking(ctx, phone, req.BookingID))
}

func (h *BookingHandler) RateBooking(ctx context.Context, req *RateBookingRequest) (*BookingResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return bookingResponse(h.bookingSvc.Rate(ctx, phone, req.BookingID, req.Rating, req.Review))
}

func (h *BookingHandler) GetBooking(ctx context.Context, req *BookingIDRequest) (*BookingResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return bookingResponse(h.bookingSvc.GetBooking(ctx, phone, req.BookingID))
}

func (h *BookingHandler) ListRenterBookings(ctx context.Context, req *Empty) (*BookingListResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return bookingList(h.bookingSvc.GetRenterBookings(ctx, phone))
}

func (h *BookingHandler) ListRentTakerBookings(ctx context.Context, req *Empty) (*BookingListResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return bookingList(h.bookingSvc.GetRentTakerBookings(ctx, phone))
}

func (h *BookingHandler) ListPendingBookings(ctx context.Context, req *Empty) (*BookingListResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return bookingList(h.bookingSvc.GetPendingBookingsForRenter(ctx, phone))
}
