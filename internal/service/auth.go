package service

import (
	"context"
	"regexp"
	"strings"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"
	"agrorent-backend/internal/security"
	apperrors "agrorent-backend/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

// Ten-digit Indian mobile numbers.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

const (
	minPasswordLen = 4
	maxPasswordLen = 50
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func validateRegistration(in RegisterInput) error {
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 || len(name) > 100 {
		return apperrors.NewValidationError("name must be between 2 and 100 characters")
	}
	if !phonePattern.MatchString(in.Phone) {
		return apperrors.NewValidationError("please enter a valid 10-digit mobile number")
	}
	if len(in.Password) < minPasswordLen || len(in.Password) > maxPasswordLen {
		return apperrors.NewValidationError("password must be between 4 and 50 characters")
	}
	return nil
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	logger.EnterMethod("authService.Register", "phone", in.Phone)

	if err := validateRegistration(in); err != nil {
		logger.ExitMethodWithError("authService.Register", err)
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to hash password", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: string(hash),
		Village:      in.Village,
		District:     in.District,
		State:        in.State,
	}
	// Create reports a taken phone as a conflict
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("authService.Register", err)
		return nil, "", err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Phone)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to issue token", err)
	}

	logger.ExitMethod("authService.Register", "userID", user.ID)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, phone, password string) (*domain.User, string, error) {
	logger.EnterMethod("authService.Login", "phone", phone)

	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			err = apperrors.NewUnauthorizedError("invalid phone or password")
		}
		logger.ExitMethodWithError("authService.Login", err)
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		err = apperrors.NewUnauthorizedError("invalid phone or password")
		logger.ExitMethodWithError("authService.Login", err)
		return nil, "", err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Phone)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to issue token", err)
	}

	logger.ExitMethod("authService.Login", "userID", user.ID)
	return user, token, nil
}
