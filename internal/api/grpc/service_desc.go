package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	AuthServiceName      = "agrorent.api.v1.AuthService"
	EquipmentServiceName = "agrorent.api.v1.EquipmentService"
	BookingServiceName   = "agrorent.api.v1.BookingService"
)

// FullMethod builds the "/service/method" path used by interceptors and clients.
func FullMethod(service, method string) string {
	return "/" + service + "/" + method
}

// unaryMethod adapts a typed handler method to grpc.MethodDesc.
func unaryMethod[S any, Req any, Resp any](service, name string, fn func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			call := func(ctx context.Context, req any) (any, error) {
				resp, err := fn(srv.(S), ctx, req.(*Req))
				if err != nil {
					return nil, err
				}
				return resp, nil
			}
			if interceptor == nil {
				return call(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(service, name)}
			return interceptor(ctx, in, info, call)
		},
	}
}

type AuthServer interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	GetCurrentUser(ctx context.Context, req *Empty) (*UserResponse, error)
}

var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(AuthServiceName, "Register", AuthServer.Register),
		unaryMethod(AuthServiceName, "Login", AuthServer.Login),
		unaryMethod(AuthServiceName, "GetCurrentUser", AuthServer.GetCurrentUser),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "agrorent/api/v1/auth",
}

type EquipmentServer interface {
	ListCategories(ctx context.Context, req *Empty) (*CategoriesResponse, error)
	GetEquipment(ctx context.Context, req *EquipmentIDRequest) (*EquipmentResponse, error)
	GetEquipmentByCategory(ctx context.Context, req *CategoryRequest) (*EquipmentListResponse, error)
	SearchEquipment(ctx context.Context, req *SearchEquipmentRequest) (*SearchResponse, error)
	GetNearbyEquipment(ctx context.Context, req *NearbyRequest) (*SearchResponse, error)
	CreateEquipment(ctx context.Context, req *EquipmentRequest) (*EquipmentResponse, error)
	UpdateEquipment(ctx context.Context, req *EquipmentRequest) (*EquipmentResponse, error)
	DeleteEquipment(ctx context.Context, req *EquipmentIDRequest) (*Empty, error)
	ToggleAvailability(ctx context.Context, req *EquipmentIDRequest) (*EquipmentResponse, error)
	GetMyEquipment(ctx context.Context, req *Empty) (*EquipmentListResponse, error)
}

var EquipmentServiceDesc = grpc.ServiceDesc{
	ServiceName: EquipmentServiceName,
	HandlerType: (*EquipmentServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(EquipmentServiceName, "ListCategories", EquipmentServer.ListCategories),
		unaryMethod(EquipmentServiceName, "GetEquipment", EquipmentServer.GetEquipment),
		unaryMethod(EquipmentServiceName, "GetEquipmentByCategory", EquipmentServer.GetEquipmentByCategory),
		unaryMethod(EquipmentServiceName, "SearchEquipment", EquipmentServer.SearchEquipment),
		unaryMethod(EquipmentServiceName, "GetNearbyEquipment", EquipmentServer.GetNearbyEquipment),
		unaryMethod(EquipmentServiceName, "CreateEquipment", EquipmentServer.CreateEquipment),
		unaryMethod(EquipmentServiceName, "UpdateEquipment", EquipmentServer.UpdateEquipment),
		unaryMethod(EquipmentServiceName, "DeleteEquipment", EquipmentServer.DeleteEquipment),
		unaryMethod(EquipmentServiceName, "ToggleAvailability", EquipmentServer.ToggleAvailability),
		unaryMethod(EquipmentServiceName, "GetMyEquipment", EquipmentServer.GetMyEquipment),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "agrorent/api/v1/equipment",
}

type BookingServer interface {
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingResponse, error)
	ApproveBooking(ctx context.Context, req *BookingIDRequest) (*BookingResponse, error)
	RejectBooking(ctx context.Context, req *RejectBookingRequest) (*BookingResponse, error)
	StartBooking(ctx context.Context, req *BookingIDRequest) (*BookingResponse, error)
	CompleteBooking(ctx context.Context, req *BookingIDRequest) (*BookingResponse, error)
	CancelBooking(ctx context.Context, req *BookingIDRequest) (*BookingResponse, error)
	RateBooking(ctx context.Context, req *RateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, req *BookingIDRequest) (*BookingResponse, error)
	ListRenterBookings(ctx context.Context, req *Empty) (*BookingListResponse, error)
	ListRentTakerBookings(ctx context.Context, req *Empty) (*BookingListResponse, error)
	ListPendingBookings(ctx context.Context, req *Empty) (*BookingListResponse, error)
}

var BookingServiceDesc = grpc.ServiceDesc{
	ServiceName: BookingServiceName,
	HandlerType: (*BookingServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(BookingServiceName, "CreateBooking", BookingServer.CreateBooking),
		unaryMethod(BookingServiceName, "ApproveBooking", BookingServer.ApproveBooking),
		unaryMethod(BookingServiceName, "RejectBooking", BookingServer.RejectBooking),
		unaryMethod(BookingServiceName, "StartBooking", BookingServer.StartBooking),
		unaryMethod(BookingServiceName, "CompleteBooking", BookingServer.CompleteBooking),
		unaryMethod(BookingServiceName, "CancelBooking", BookingServer.CancelBooking),
		unaryMethod(BookingServiceName, "RateBooking", BookingServer.RateBooking),
		unaryMethod(BookingServiceName, "GetBooking", BookingServer.GetBooking),
		unaryMethod(BookingServiceName, "ListRenterBookings", BookingServer.ListRenterBookings),
		unaryMethod(BookingServiceName, "ListRentTakerBookings", BookingServer.ListRentTakerBookings),
		unaryMethod(BookingServiceName, "ListPendingBookings", BookingServer.ListPendingBookings),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "agrorent/api/v1/booking",
}

// Register installs every service on s.
func Register(s grpc.ServiceRegistrar, auth AuthServer, equipment EquipmentServer, bookings BookingServer) {
	s.RegisterService(&AuthServiceDesc, auth)
	s.RegisterService(&EquipmentServiceDesc, equipment)
	s.RegisterService(&BookingServiceDesc, bookings)
}
