package domain

import (
	"strings"
	"time"
)

type EquipmentCategory string

const (
	CategoryTractor    EquipmentCategory = "TRACTOR"
	CategoryHarvester  EquipmentCategory = "HARVESTER"
	CategoryPlough     EquipmentCategory = "PLOUGH"
	CategoryCultivator EquipmentCategory = "CULTIVATOR"
	CategorySeeder     EquipmentCategory = "SEEDER"
	CategorySprayer    EquipmentCategory = "SPRAYER"
	CategoryThresher   EquipmentCategory = "THRESHER"
	CategoryRotavator  EquipmentCategory = "ROTAVATOR"
	CategoryTiller     EquipmentCategory = "TILLER"
	CategoryTrailer    EquipmentCategory = "TRAILER"
	CategoryOther      EquipmentCategory = "OTHER"
)

// Categories lists every category in display order.
var Categories = []EquipmentCategory{
	CategoryTractor,
	CategoryHarvester,
	CategoryPlough,
	CategoryCultivator,
	CategorySeeder,
	CategorySprayer,
	CategoryThresher,
	CategoryRotavator,
	CategoryTiller,
	CategoryTrailer,
	CategoryOther,
}

func (c EquipmentCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory accepts any letter case.
func ParseCategory(s string) (EquipmentCategory, bool) {
	c := EquipmentCategory(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}

// GeoPoint is a WGS84 position in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// RateSheet holds the optional per-period prices of one equipment.
type RateSheet struct {
	Hourly *float64 `json:"price_per_hour,omitempty"`
	Daily  *float64 `json:"price_per_day,omitempty"`
	Weekly *float64 `json:"price_per_week,omitempty"`
}

func (r RateSheet) Any() bool {
	return r.Hourly != nil || r.Daily != nil || r.Weekly != nil
}

// For returns the rate backing the given pricing type, nil when absent.
func (r RateSheet) For(p PricingType) *float64 {
	switch p {
	case PricingTypeHourly:
		return r.Hourly
	case PricingTypeWeekly:
		return r.Weekly
	default:
		return r.Daily
	}
}

type Equipment struct {
	ID         string `json:"id"`
	OwnerID    string `json:"owner_id"`
	OwnerName  string `json:"owner_name"`
	OwnerPhone string `json:"owner_phone"`

	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Category         EquipmentCategory `json:"category"`
	Images           []string          `json:"images"`
	VerificationDocs []string          `json:"verification_docs"`
	Verified         bool              `json:"verified"`

	PricePerHour *float64 `json:"price_per_hour,omitempty"`
	PricePerDay  *float64 `json:"price_per_day,omitempty"`
	PricePerWeek *float64 `json:"price_per_week,omitempty"`

	Location GeoPoint `json:"location"`
	Address  string   `json:"address"`
	Village  string   `json:"village"`
	District string   `json:"district"`
	State    string   `json:"state"`
	Pincode  string   `json:"pincode"`

	Available    bool    `json:"available"`
	Rating       float64 `json:"rating"`
	TotalRatings int32   `json:"total_ratings"`
	TimesRented  int32   `json:"times_rented"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Equipment) Rates() RateSheet {
	return RateSheet{Hourly: e.PricePerHour, Daily: e.PricePerDay, Weekly: e.PricePerWeek}
}

// Rated reports whether at least one completed booking has rated this equipment.
func (e *Equipment) Rated() bool {
	return e.TotalRatings > 0
}

// EquipmentResult is a search hit. DistanceKm is nil when the query had no center.
type EquipmentResult struct {
	Equipment
	DistanceKm *float64 `json:"distance_km,omitempty"`
}
