package interceptor

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"agrorent-backend/internal/config"
	"agrorent-backend/internal/security"
)

// Metadata keys the handlers read the principal from. Client-sent values are
// stripped before the interceptor sets them.
const (
	UserIDKey    = "user-id"
	UserPhoneKey = "user-phone"
)

type AuthInterceptor struct {
	tokenManager security.TokenManager
}

func NewAuthInterceptor(tm security.TokenManager) *AuthInterceptor {
	return &AuthInterceptor{tokenManager: tm}
}

// Unary returns a server interceptor function to authenticate unary RPCs
func (i *AuthInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			md = metadata.New(nil)
		} else {
			md = md.Copy()
		}
		// Identity headers only ever come from a validated token.
		md.Delete(UserIDKey)
		md.Delete(UserPhoneKey)

		if config.GetSecurityLevel(info.FullMethod) == config.SecurityPublic {
			return handler(metadata.NewIncomingContext(ctx, md), req)
		}

		token, err := extractToken(md)
		if err != nil {
			return nil, err
		}

		claims, err := i.tokenManager.ValidateToken(token)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "invalid token: %v", err)
		}
		if claims.Type != security.TokenTypeAccess {
			return nil, status.Error(codes.PermissionDenied, "access token required")
		}

		md.Set(UserIDKey, claims.UserID)
		md.Set(UserPhoneKey, claims.Phone)
		return handler(metadata.NewIncomingContext(ctx, md), req)
	}
}

func extractToken(md metadata.MD) (string, error) {
	authHeader := md.Get("authorization")
	if len(authHeader) == 0 {
		return "", status.Error(codes.Unauthenticated, "authorization token is not provided")
	}

	token := authHeader[0]
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	if token == "" {
		return "", status.Error(codes.Unauthenticated, "authorization token is empty")
	}
	return token, nil
}
