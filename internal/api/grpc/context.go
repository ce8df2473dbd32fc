package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"agrorent-backend/internal/api/grpc/interceptor"
)

// GetUserPhoneFromContext extracts the caller's phone from the gRPC metadata.
func GetUserPhoneFromContext(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Errorf(codes.Unauthenticated, "metadata is not provided")
	}

	phones := md.Get(interceptor.UserPhoneKey)
	if len(phones) == 0 || phones[0] == "" {
		return "", status.Errorf(codes.Unauthenticated, "user phone is not provided in metadata")
	}
	return phones[0], nil
}
