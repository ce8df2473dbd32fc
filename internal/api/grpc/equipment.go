package grpc

import (
	"context"

	"agrorent-backend/internal/service"
)

type EquipmentHandler struct {
	equipmentSvc service.EquipmentService
}

func NewEquipmentHandler(equipmentSvc service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentSvc: equipmentSvc}
}

func (h *EquipmentHandler) ListCategories(ctx context.Context, req *Empty) (*CategoriesResponse, error) {
	return &CategoriesResponse{Categories: h.equipmentSvc.ListCategories(ctx)}, nil
}

func (h *EquipmentHandler) GetEquipment(ctx context.Context, req *EquipmentIDRequest) (*EquipmentResponse, error) {
	eq, err := h.equipmentSvc.GetEquipment(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &EquipmentResponse{Equipment: eq}, nil
}

func (h *EquipmentHandler) GetEquipmentByCategory(ctx context.Context, req *CategoryRequest) (*EquipmentListResponse, error) {
	list, err := h.equipmentSvc.GetEquipmentByCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	return &EquipmentListResponse{Equipment: list}, nil
}

func (h *EquipmentHandler) SearchEquipment(ctx context.Context, req *SearchEquipmentRequest) (*SearchResponse, error) {
	results, err := h.equipmentSvc.SearchEquipment(ctx, req.Criteria, req.Sort)
	if err != nil {
		return nil, err
	}
	return &SearchResponse{Results: results}, nil
}

func (h *EquipmentHandler) GetNearbyEquipment(ctx context.Context, req *NearbyRequest) (*SearchResponse, error) {
	results, err := h.equipmentSvc.GetNearbyEquipment(ctx, req.Latitude, req.Longitude, req.RadiusKm)
	if err != nil {
		return nil, err
	}
	return &SearchResponse{Results: results}, nil
}

func (h *EquipmentHandler) CreateEquipment(ctx context.Context, req *EquipmentRequest) (*EquipmentResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	eq, err := h.equipmentSvc.CreateEquipment(ctx, phone, &req.Equipment)
	if err != nil {
		return nil, err
	}
	return &EquipmentResponse{Equipment: eq}, nil
}

func (h *EquipmentHandler) UpdateEquipment(ctx context.Context, req *EquipmentRequest) (*EquipmentResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	eq, err := h.equipmentSvc.UpdateEquipment(ctx, phone, req.ID, &req.Equipment)
	if err != nil {
		return nil, err
	}
	return &EquipmentResponse{Equipment: eq}, nil
}

func (h *EquipmentHandler) DeleteEquipment(ctx context.Context, req *EquipmentIDRequest) (*Empty, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.equipmentSvc.DeleteEquipment(ctx, phone, req.ID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (h *EquipmentHandler) ToggleAvailability(ctx context.Context, req *EquipmentIDRequest) (*EquipmentResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	eq, err := h.equipmentSvc.ToggleAvailability(ctx, phone, req.ID)
	if err != nil {
		return nil, err
	}
	return &EquipmentResponse{Equipment: eq}, nil
}

func (h *EquipmentHandler) GetMyEquipment(ctx context.Context, req *Empty) (*EquipmentListResponse, error) {
	phone, err := GetUserPhoneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	list, err := h.equipmentSvc.GetMyEquipment(ctx, phone)
	if err != nil {
		return nil, err
	}
	return &EquipmentListResponse{Equipment: list}, nil
}
