package interceptor

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"agrorent-backend/internal/logger"
	apperrors "agrorent-backend/pkg/errors"
)

// StatusCode maps an application error type to its gRPC code.
func StatusCode(t apperrors.ErrorType) codes.Code {
	switch t {
	case apperrors.ErrorTypeNotFound:
		return codes.NotFound
	case apperrors.ErrorTypeValidation:
		return codes.InvalidArgument
	case apperrors.ErrorTypeConflict:
		return codes.AlreadyExists
	case apperrors.ErrorTypeUnauthorized:
		return codes.PermissionDenied
	case apperrors.ErrorTypeInvalidState:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// ToStatus converts err into a gRPC status error. Errors that already carry a
// status pass through; internal failures hide their cause from the client.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	code := StatusCode(apperrors.TypeOf(err))
	return status.Error(code, apperrors.MessageOf(err))
}

// Errors logs each call and translates handler errors to status codes.
func Errors() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err == nil {
			logger.Debug("rpc completed", "method", info.FullMethod, "duration", time.Since(start))
			return resp, nil
		}

		st := ToStatus(err)
		code := status.Code(st)
		if code == codes.Internal || code == codes.Unknown {
			logger.Error("rpc failed", "method", info.FullMethod, "code", code.String(), "error", err)
		} else {
			logger.Warn("rpc rejected", "method", info.FullMethod, "code", code.String(), "error", err)
		}
		return nil, st
	}
}
