package grpc

import (
	"context"

	"agrorent-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
	userSvc service.UserService
}

func NewAuthHandler(authSvc service.AuthService, userSvc service.UserService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, userSvc: userSvc}
}

func (h *AuthHandler) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	user, token, err := h.authSvc.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Village:  req.Village,
		District: req.District,
		State:    req.State,
	})
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

func (h *AuthHandler) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, token, err := h.authSvc.Login(ctx, req.Phone, req.Password)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

func (h *AuthHandler) GetCurrentUser(ctx context.Context, req *Empty) (*UserResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	user, err := h.userSvc.GetCurrentUser(ctx, phone)
	if err != nil {
		return nil, err
	}
	return &UserResponse{User: user}, nil
}
