package service_test

import (
	"context"
	"math"
	"testing"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/search"
	"agrorent-backend/internal/service"
	apperrors "agrorent-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	m := newMarketplace(t)

	t.Run("Register and login", func(t *testing.T) {
		u := m.register(t, "Ramesh Patil", "9876543210")
		assert.NotEmpty(t, u.ID)
		assert.NotEqual(t, "secret", u.PasswordHash)

		got, token, err := m.auth.Login(ctx, "9876543210", "secret")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("Duplicate phone", func(t *testing.T) {
		_, _, err := m.auth.Register(ctx, serviceRegister("Other", "9876543210"))
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})

	t.Run("Bad credentials", func(t *testing.T) {
		_, _, err := m.auth.Login(ctx, "9876543210", "wrong")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
		_, _, err = m.auth.Login(ctx, "9111111111", "secret")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})

	t.Run("Validation", func(t *testing.T) {
		for _, in := range []struct{ name, phone string }{
			{"R", "9876543211"},
			{"Ramesh", "1234567890"},
			{"Ramesh", "98765"},
		} {
			_, _, err := m.auth.Register(ctx, serviceRegister(in.name, in.phone))
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), in.phone)
		}
	})
}

func TestEquipmentService(t *testing.T) {
	ctx := context.Background()
	m := newMarketplace(t)
	owner := m.register(t, "Suresh", "9000000001")
	other := m.register(t, "Ganesh", "9000000004")

	eq := m.listTractor(t, owner.Phone)

	t.Run("Create snapshots the owner", func(t *testing.T) {
		assert.Equal(t, owner.ID, eq.OwnerID)
		assert.Equal(t, "Suresh", eq.OwnerName)
		assert.Equal(t, domain.CategoryTractor, eq.Category)
		assert.True(t, eq.Available)
		assert.Zero(t, eq.Rating)
	})

	t.Run("Create validation", func(t *testing.T) {
		bad := []*domain.Equipment{
			{Category: domain.CategoryTractor, PricePerDay: rate(10)},
			{Name: "x", Category: "ROCKET", PricePerDay: rate(10)},
			{Name: "x", Category: domain.CategoryTractor},
			{Name: "x", Category: domain.CategoryTractor, PricePerHour: rate(-5)},
			{Name: "x", Category: domain.CategoryTractor, PricePerDay: rate(math.NaN())},
			{Name: "x", Category: domain.CategoryTractor, PricePerWeek: rate(math.Inf(1))},
			{Name: "x", Category: domain.CategoryTractor, PricePerDay: rate(10), Location: domain.GeoPoint{Lat: 95}},
		}
		for _, e := range bad {
			_, err := m.equipment.CreateEquipment(ctx, owner.Phone, e)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "%+v", e)
		}
	})

	t.Run("Only the owner manages", func(t *testing.T) {
		_, err := m.equipment.ToggleAvailability(ctx, other.Phone, eq.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
		err = m.equipment.DeleteEquipment(ctx, other.Phone, eq.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})

	t.Run("Toggle hides from public lists", func(t *testing.T) {
		toggled, err := m.equipment.ToggleAvailability(ctx, owner.Phone, eq.ID)
		require.NoError(t, err)
		assert.False(t, toggled.Available)

		listed, err := m.equipment.GetEquipmentByCategory(ctx, "TRACTOR")
		require.NoError(t, err)
		assert.Empty(t, listed)

		found, err := m.equipment.SearchEquipment(ctx, search.Criteria{}, search.Sort{})
		require.NoError(t, err)
		assert.Empty(t, found)

		_, err = m.equipment.ToggleAvailability(ctx, owner.Phone, eq.ID)
		require.NoError(t, err)
	})

	t.Run("Update keeps images when omitted", func(t *testing.T) {
		withImages := m.listTractor(t, owner.Phone)
		withImages.Images = []string{"a.jpg"}
		_, err := m.equipment.UpdateEquipment(ctx, owner.Phone, withImages.ID, withImages)
		require.NoError(t, err)

		updated, err := m.equipment.UpdateEquipment(ctx, owner.Phone, withImages.ID, &domain.Equipment{
			Name:         "Swaraj 744 XT",
			Category:     domain.CategoryTractor,
			PricePerHour: rate(150),
			Location:     domain.GeoPoint{Lat: 18.6, Lon: 73.9},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.jpg"}, updated.Images)
		assert.Nil(t, updated.PricePerDay)
		assert.Equal(t, "Swaraj 744 XT", updated.Name)
	})

	t.Run("Nearby and my equipment", func(t *testing.T) {
		mine, err := m.equipment.GetMyEquipment(ctx, owner.Phone)
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		near, err := m.equipment.GetNearbyEquipment(ctx, 18.52, 73.85, 5)
		require.NoError(t, err)
		require.Len(t, near, 1)
		assert.Equal(t, eq.ID, near[0].ID)
	})

	t.Run("Categories", func(t *testing.T) {
		cats := m.equipment.ListCategories(ctx)
		assert.Len(t, cats, 11)
		cats[0] = "MUTATED"
		assert.Equal(t, domain.CategoryTractor, m.equipment.ListCategories(ctx)[0])

		_, err := m.equipment.GetEquipmentByCategory(ctx, "spaceship")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, m.equipment.DeleteEquipment(ctx, owner.Phone, eq.ID))
		_, err := m.equipment.GetEquipment(ctx, eq.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func serviceRegister(name, phone string) service.RegisterInput {
	return service.RegisterInput{Name: name, Phone: phone, Password: "secret"}
}
