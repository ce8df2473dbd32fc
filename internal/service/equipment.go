package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"
	"agrorent-backend/internal/search"
	apperrors "agrorent-backend/pkg/errors"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	userRepo      repository.UserRepository
	engine        *search.Engine
}

func NewEquipmentService(
	equipmentRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	engine *search.Engine,
) EquipmentService {
	return &equipmentService{
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		engine:        engine,
	}
}

func validateEquipment(eq *domain.Equipment) error {
	if strings.TrimSpace(eq.Name) == "" {
		return apperrors.NewValidationError("equipment name is required")
	}
	if !eq.Category.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown category %q", eq.Category))
	}
	rates := eq.Rates()
	if !rates.Any() {
		return apperrors.NewValidationError("at least one of hourly, daily or weekly price is required")
	}
	for _, r := range []*float64{rates.Hourly, rates.Daily, rates.Weekly} {
		if r == nil {
			continue
		}
		if math.IsNaN(*r) || math.IsInf(*r, 0) || *r <= 0 {
			return apperrors.NewValidationError("prices must be positive")
		}
	}
	if !eq.Location.Valid() {
		return apperrors.NewValidationError("coordinates out of range")
	}
	return nil
}

// ownedEquipment loads the equipment and checks that phone owns it.
func (s *equipmentService) ownedEquipment(ctx context.Context, ownerPhone, equipmentID string) (*domain.Equipment, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	owner, err := s.userRepo.GetByPhone(ctx, ownerPhone)
	if err != nil {
		return nil, err
	}
	if eq.OwnerID != owner.ID {
		return nil, apperrors.NewUnauthorizedError("you can only manage your own equipment")
	}
	return eq, nil
}

func (s *equipmentService) CreateEquipment(ctx context.Context, ownerPhone string, eq *domain.Equipment) (*domain.Equipment, error) {
	logger.EnterMethod("equipmentService.CreateEquipment", "ownerPhone", ownerPhone, "name", eq.Name)

	if c, ok := domain.ParseCategory(string(eq.Category)); ok {
		eq.Category = c
	}
	if err := validateEquipment(eq); err != nil {
		logger.ExitMethodWithError("equipmentService.CreateEquipment", err)
		return nil, err
	}

	owner, err := s.userRepo.GetByPhone(ctx, ownerPhone)
	if err != nil {
		logger.ExitMethodWithError("equipmentService.CreateEquipment", err)
		return nil, err
	}

	created := *eq
	created.ID = ""
	created.OwnerID = owner.ID
	created.OwnerName = owner.Name
	created.OwnerPhone = owner.Phone
	created.Available = true
	created.Verified = false
	created.Rating = 0
	created.TotalRatings = 0
	created.TimesRented = 0
	if created.Images == nil {
		created.Images = []string{}
	}
	if created.VerificationDocs == nil {
		created.VerificationDocs = []string{}
	}

	if err := s.equipmentRepo.Create(ctx, &created); err != nil {
		logger.ExitMethodWithError("equipmentService.CreateEquipment", err)
		return nil, err
	}

	logger.ExitMethod("equipmentService.CreateEquipment", "equipmentID", created.ID)
	return &created, nil
}

// UpdateEquipment replaces the owner-editable fields. Nil image or document
// lists keep what is stored.
func (s *equipmentService) UpdateEquipment(ctx context.Context, ownerPhone, equipmentID string, eq *domain.Equipment) (*domain.Equipment, error) {
	logger.EnterMethod("equipmentService.UpdateEquipment", "ownerPhone", ownerPhone, "equipmentID", equipmentID)

	if c, ok := domain.ParseCategory(string(eq.Category)); ok {
		eq.Category = c
	}
	if err := validateEquipment(eq); err != nil {
		logger.ExitMethodWithError("equipmentService.UpdateEquipment", err)
		return nil, err
	}

	current, err := s.ownedEquipment(ctx, ownerPhone, equipmentID)
	if err != nil {
		logger.ExitMethodWithError("equipmentService.UpdateEquipment", err)
		return nil, err
	}

	current.Name = eq.Name
	current.Description = eq.Description
	current.Category = eq.Category
	if eq.Images != nil {
		current.Images = eq.Images
	}
	if eq.VerificationDocs != nil {
		current.VerificationDocs = eq.VerificationDocs
	}
	current.PricePerHour = eq.PricePerHour
	current.PricePerDay = eq.PricePerDay
	current.PricePerWeek = eq.PricePerWeek
	current.Location = eq.Location
	current.Address = eq.Address
	current.Village = eq.Village
	current.District = eq.District
	current.State = eq.State
	current.Pincode = eq.Pincode

	if err := s.equipmentRepo.Update(ctx, current); err != nil {
		logger.ExitMethodWithError("equipmentService.UpdateEquipment", err)
		return nil, err
	}

	logger.ExitMethod("equipmentService.UpdateEquipment", "equipmentID", equipmentID)
	return current, nil
}

func (s *equipmentService) DeleteEquipment(ctx context.Context, ownerPhone, equipmentID string) error {
	if _, err := s.ownedEquipment(ctx, ownerPhone, equipmentID); err != nil {
		return err
	}
	if err := s.equipmentRepo.Delete(ctx, equipmentID); err != nil {
		return err
	}
	logger.Info("Equipment deleted", "equipmentID", equipmentID)
	return nil
}

func (s *equipmentService) ToggleAvailability(ctx context.Context, ownerPhone, equipmentID string) (*domain.Equipment, error) {
	eq, err := s.ownedEquipment(ctx, ownerPhone, equipmentID)
	if err != nil {
		return nil, err
	}
	eq.Available = !eq.Available
	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		return nil, err
	}
	logger.Info("Equipment availability changed", "equipmentID", equipmentID, "available", eq.Available)
	return eq, nil
}

func (s *equipmentService) GetMyEquipment(ctx context.Context, ownerPhone string) ([]domain.Equipment, error) {
	owner, err := s.userRepo.GetByPhone(ctx, ownerPhone)
	if err != nil {
		return nil, err
	}
	return s.equipmentRepo.ListByOwner(ctx, owner.ID)
}

func (s *equipmentService) GetEquipment(ctx context.Context, equipmentID string) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, equipmentID)
}

func (s *equipmentService) GetEquipmentByCategory(ctx context.Context, category string) ([]domain.Equipment, error) {
	c, ok := domain.ParseCategory(category)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown category %q", category))
	}
	return s.equipmentRepo.ListByCategory(ctx, c, true)
}

func (s *equipmentService) ListCategories(ctx context.Context) []domain.EquipmentCategory {
	out := make([]domain.EquipmentCategory, len(domain.Categories))
	copy(out, domain.Categories)
	return out
}

func (s *equipmentService) SearchEquipment(ctx context.Context, criteria search.Criteria, sort search.Sort) ([]domain.EquipmentResult, error) {
	return s.engine.Search(ctx, criteria, sort)
}

func (s *equipmentService) GetNearbyEquipment(ctx context.Context, lat, lon, radiusKm float64) ([]domain.EquipmentResult, error) {
	return s.engine.Nearby(ctx, lat, lon, radiusKm)
}
