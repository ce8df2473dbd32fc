package service

import (
	"context"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetCurrentUser(ctx context.Context, phone string) (*domain.User, error) {
	return s.userRepo.GetByPhone(ctx, phone)
}
