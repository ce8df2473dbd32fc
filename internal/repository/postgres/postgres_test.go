package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/repository"
	apperrors "agrorent-backend/pkg/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var userRowColumns = []string{"id", "name", "phone", "email", "password_hash", "village", "district", "state", "rating", "total_ratings", "created_at", "updated_at"}

func TestUserRepository_GetByPhone(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(userRowColumns).
			AddRow("u-1", "Ramesh", "9876543210", "", "hash", "Kothrud", "Pune", "MH", 4.5, 2, time.Now(), time.Now())
		mock.ExpectQuery("SELECT (.+) FROM users WHERE phone = \\$1").
			WithArgs("9876543210").
			WillReturnRows(rows)

		u, err := repo.GetByPhone(ctx, "9876543210")
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		assert.Equal(t, 4.5, u.Rating)
		assert.Equal(t, int32(2), u.TotalRatings)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE phone = \\$1").
			WithArgs("000").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.GetByPhone(ctx, "000")
		assert.Nil(t, u)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success assigns id", func(t *testing.T) {
		u := &domain.User{Name: "Suresh", Phone: "111", PasswordHash: "hash"}
		mock.ExpectExec("INSERT INTO users").
			WithArgs(sqlmock.AnyArg(), "Suresh", "111", "", "hash", "", "", "", 0.0, int32(0), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, u))
		assert.NotEmpty(t, u.ID)
		assert.False(t, u.CreatedAt.IsZero())
	})

	t.Run("Duplicate phone is a conflict", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pq.Error{Code: uniqueViolation})

		err := repo.Create(ctx, &domain.User{Name: "Dup", Phone: "111"})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRating(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET rating=\\$1, total_ratings=\\$2").
		WithArgs(4.5, int32(2), sqlmock.AnyArg(), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateRating(context.Background(), "u-1", 4.5, 2))

	mock.ExpectExec("UPDATE users SET rating=\\$1, total_ratings=\\$2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateRating(context.Background(), "missing", 4.5, 2)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

var bookingRowColumns = []string{"id", "equipment_id", "equipment_name", "equipment_category",
	"renter_id", "renter_name", "renter_phone", "rent_taker_id", "rent_taker_name", "rent_taker_phone",
	"start_date", "end_date", "duration_hours", "total_cost", "pricing_type", "status", "notes", "rejection_reason",
	"rating_by_rent_taker", "review_by_rent_taker", "rating_by_renter", "review_by_renter", "created_at", "updated_at"}

func bookingRow(rows *sqlmock.Rows, id string, status domain.BookingStatus, rating any) *sqlmock.Rows {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "eq-1", "Mahindra 575", "TRACTOR",
		"owner-1", "Owner", "111", "taker-1", "Taker", "222",
		start, start.Add(8*time.Hour), 8, 800.0, "HOURLY", string(status), "", "",
		rating, "", nil, "", start, start)
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepository(db)

	t.Run("Success with nullable ratings", func(t *testing.T) {
		rows := bookingRow(sqlmock.NewRows(bookingRowColumns), "b-1", domain.BookingStatusCompleted, 5)
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs("b-1").
			WillReturnRows(rows)

		b, err := repo.GetByID(context.Background(), "b-1")
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCompleted, b.Status)
		require.NotNil(t, b.RatingByRentTaker)
		assert.Equal(t, int32(5), *b.RatingByRentTaker)
		assert.Nil(t, b.RatingByRenter)
		assert.Equal(t, domain.PricingTypeHourly, b.PricingType)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "nope")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListOverlapping(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepository(db)

	start := time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	rows := bookingRow(sqlmock.NewRows(bookingRowColumns), "b-1", domain.BookingStatusApproved, nil)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE equipment_id = $1 AND status = ANY($2) AND start_date <= $3 AND end_date >= $4")).
		WithArgs("eq-1", sqlmock.AnyArg(), end, start).
		WillReturnRows(rows)

	got, err := repo.ListOverlapping(context.Background(), "eq-1", start, end, domain.BlockingStatuses)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepository(db)

	rating := int32(4)
	b := &domain.Booking{ID: "b-1", Status: domain.BookingStatusCompleted, RatingByRentTaker: &rating, ReviewByRentTaker: "good"}

	mock.ExpectExec("UPDATE bookings SET status=\\$1").
		WithArgs(domain.BookingStatusCompleted, "", sql.NullInt32{Int32: 4, Valid: true}, "good", sql.NullInt32{}, "", sqlmock.AnyArg(), "b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(context.Background(), b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

var equipmentRowColumns = []string{"id", "owner_id", "owner_name", "owner_phone", "name", "description", "category",
	"images", "verification_docs", "verified", "price_per_hour", "price_per_day", "price_per_week",
	"lat", "lon", "address", "village", "district", "state", "pincode",
	"available", "rating", "total_ratings", "times_rented", "created_at", "updated_at"}

func equipmentValues(id string, daily driver.Value) []driver.Value {
	now := time.Now()
	return []driver.Value{id, "owner-1", "Owner", "111", "Tractor " + id, "", "TRACTOR",
		"{a.jpg}", "{}", true, nil, daily, nil,
		18.52, 73.85, "", "Kothrud", "Pune", "MH", "411038",
		true, 0.0, 0, 3, now, now}
}

func TestEquipmentRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM "equipment" WHERE \("id" = \$1\)`).
		WithArgs("eq-1").
		WillReturnRows(sqlmock.NewRows(equipmentRowColumns).AddRow(equipmentValues("eq-1", 1000.0)...))

	e, err := repo.GetByID(context.Background(), "eq-1")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryTractor, e.Category)
	assert.Equal(t, []string{"a.jpg"}, e.Images)
	assert.Nil(t, e.PricePerHour)
	require.NotNil(t, e.PricePerDay)
	assert.Equal(t, 1000.0, *e.PricePerDay)
	assert.Equal(t, 18.52, e.Location.Lat)
	assert.Equal(t, int32(3), e.TimesRented)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_Search(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db)

	min, max := 500.0, 2000.0
	mock.ExpectQuery(`SELECT (.+) FROM "equipment" WHERE (.+)"available"(.+)"category" = (.+)"price_per_week" >= (.+)"price_per_week" <= (.+)ST_DWithin`).
		WillReturnRows(sqlmock.NewRows(equipmentRowColumns).
			AddRow(equipmentValues("eq-1", 1000.0)...).
			AddRow(equipmentValues("eq-2", nil)...))

	got, err := repo.Search(context.Background(), repository.EquipmentFilter{
		AvailableOnly: true,
		Category:      domain.CategoryTractor,
		PricingType:   domain.PricingTypeWeekly,
		MinPrice:      &min,
		MaxPrice:      &max,
		Center:        &domain.GeoPoint{Lat: 18.5, Lon: 73.8},
		RadiusKm:      50,
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_Nearby(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db)

	cols := append(append([]string{}, equipmentRowColumns...), "distance_km")
	mock.ExpectQuery(`ST_Distance(.+)ORDER BY "distance_km" ASC`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(append(equipmentValues("eq-1", 1000.0), 2.345)...))

	got, err := repo.Nearby(context.Background(), domain.GeoPoint{Lat: 18.5, Lon: 73.8}, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].DistanceKm)
	assert.Equal(t, 2.345, *got[0].DistanceKm)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_IncrementTimesRented(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("SET times_rented = times_rented + 1")).
		WithArgs(sqlmock.AnyArg(), "eq-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.IncrementTimesRented(context.Background(), "eq-1"))

	mock.ExpectExec(regexp.QuoteMeta("SET times_rented = times_rented + 1")).
		WithArgs(sqlmock.AnyArg(), "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.IncrementTimesRented(context.Background(), "gone")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock := newMock(t)
	for range schemaStatements {
		mock.ExpectExec(".+").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
