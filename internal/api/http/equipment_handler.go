package http

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/search"
	"agrorent-backend/internal/service"
	apperrors "agrorent-backend/pkg/errors"

	"github.com/gorilla/mux"
)

// EquipmentHandler serves the unauthenticated equipment read API.
type EquipmentHandler struct {
	equipmentSvc service.EquipmentService
}

func NewEquipmentHandler(equipmentSvc service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentSvc: equipmentSvc}
}

// SearchRequest is the body of POST /api/equipment/search.
type SearchRequest struct {
	search.Criteria
	search.Sort
}

func (h *EquipmentHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]string{"status": "ok"})
}

func (h *EquipmentHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	writeOK(w, h.equipmentSvc.ListCategories(r.Context()))
}

func (h *EquipmentHandler) HandleGetEquipment(w http.ResponseWriter, r *http.Request) {
	eq, err := h.equipmentSvc.GetEquipment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, eq)
}

func (h *EquipmentHandler) HandleByCategory(w http.ResponseWriter, r *http.Request) {
	list, err := h.equipmentSvc.GetEquipmentByCategory(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, list)
}

func (h *EquipmentHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.NewValidationError("malformed search request"))
		return
	}
	results, err := h.equipmentSvc.SearchEquipment(r.Context(), req.Criteria, req.Sort)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, results)
}

// HandleNearby reads latitude, longitude and an optional radiusKm from the query.
func (h *EquipmentHandler) HandleNearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := parseFinite(q.Get("latitude"))
	if err != nil {
		writeError(w, r, apperrors.NewValidationError("latitude is required"))
		return
	}
	lon, err := parseFinite(q.Get("longitude"))
	if err != nil {
		writeError(w, r, apperrors.NewValidationError("longitude is required"))
		return
	}
	var radius float64
	if raw := q.Get("radiusKm"); raw != "" {
		if radius, err = parseFinite(raw); err != nil {
			writeError(w, r, apperrors.NewValidationError("radiusKm must be a number"))
			return
		}
	}

	results, err := h.equipmentSvc.GetNearbyEquipment(r.Context(), lat, lon, radius)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, results)
}

// parseFinite rejects NaN and infinities, which ParseFloat accepts.
func parseFinite(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// NewRouter builds the public HTTP API.
func NewRouter(equipmentSvc service.EquipmentService) *mux.Router {
	h := NewEquipmentHandler(equipmentSvc)
	router := mux.NewRouter()
	router.Use(logRequests)

	router.HandleFunc("/healthz", h.HandleHealth).Methods("GET")
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/categories", h.HandleCategories).Methods("GET")
	api.HandleFunc("/equipment/public/{id}", h.HandleGetEquipment).Methods("GET")
	api.HandleFunc("/equipment/public/category/{category}", h.HandleByCategory).Methods("GET")
	api.HandleFunc("/equipment/search", h.HandleSearch).Methods("POST")
	api.HandleFunc("/equipment/search/nearby", h.HandleNearby).Methods("GET")
	return router
}
