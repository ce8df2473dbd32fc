package postgres

import (
	"context"
	"database/sql"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, equipment_id, equipment_name, equipment_category,
	renter_id, renter_name, renter_phone, rent_taker_id, rent_taker_name, rent_taker_phone,
	start_date, end_date, duration_hours, total_cost, pricing_type, status, notes, rejection_reason,
	rating_by_rent_taker, review_by_rent_taker, rating_by_renter, review_by_renter, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(s rowScanner) (domain.Booking, error) {
	var b domain.Booking
	var byRentTaker, byRenter sql.NullInt32
	err := s.Scan(&b.ID, &b.EquipmentID, &b.EquipmentName, &b.EquipmentCategory,
		&b.RenterID, &b.RenterName, &b.RenterPhone, &b.RentTakerID, &b.RentTakerName, &b.RentTakerPhone,
		&b.StartDate, &b.EndDate, &b.DurationHours, &b.TotalCost, &b.PricingType, &b.Status, &b.Notes, &b.RejectionReason,
		&byRentTaker, &b.ReviewByRentTaker, &byRenter, &b.ReviewByRenter, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return b, err
	}
	b.RatingByRentTaker = int32Ptr(byRentTaker)
	b.RatingByRenter = int32Ptr(byRenter)
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	logger.EnterMethod("bookingRepository.Create", "equipmentID", b.EquipmentID)

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	query := `INSERT INTO bookings (` + bookingColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.EquipmentID, b.EquipmentName, b.EquipmentCategory,
		b.RenterID, b.RenterName, b.RenterPhone, b.RentTakerID, b.RentTakerName, b.RentTakerPhone,
		b.StartDate, b.EndDate, b.DurationHours, b.TotalCost, b.PricingType, b.Status, b.Notes, b.RejectionReason,
		nullInt32(b.RatingByRentTaker), b.ReviewByRentTaker, nullInt32(b.RatingByRenter), b.ReviewByRenter,
		b.CreatedAt, b.UpdatedAt)
	if err != nil {
		logger.ExitMethodWithError("bookingRepository.Create", err)
		return translate(err, "booking")
	}

	logger.ExitMethod("bookingRepository.Create", "bookingID", b.ID)
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(err, "booking")
	}
	return &b, nil
}

// Update writes the fields a lifecycle action may touch.
func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, rejection_reason=$2, rating_by_rent_taker=$3, review_by_rent_taker=$4,
	          rating_by_renter=$5, review_by_renter=$6, updated_at=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, b.Status, b.RejectionReason,
		nullInt32(b.RatingByRentTaker), b.ReviewByRentTaker,
		nullInt32(b.RatingByRenter), b.ReviewByRenter, b.UpdatedAt, b.ID)
	if err != nil {
		return translate(err, "booking")
	}
	return requireRow(res, "booking")
}

func (r *bookingRepository) list(ctx context.Context, where string, args ...any) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + where + ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "booking")
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, translate(err, "booking")
		}
		bookings = append(bookings, b)
	}
	return bookings, translate(rows.Err(), "booking")
}

func (r *bookingRepository) ListByEquipment(ctx context.Context, equipmentID string) ([]domain.Booking, error) {
	return r.list(ctx, "equipment_id = $1", equipmentID)
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	return r.list(ctx, "renter_id = $1", renterID)
}

func (r *bookingRepository) ListByRentTaker(ctx context.Context, rentTakerID string) ([]domain.Booking, error) {
	return r.list(ctx, "rent_taker_id = $1", rentTakerID)
}

func (r *bookingRepository) ListByRenterAndStatus(ctx context.Context, renterID string, status domain.BookingStatus) ([]domain.Booking, error) {
	return r.list(ctx, "renter_id = $1 AND status = $2", renterID, status)
}

func (r *bookingRepository) ListOverlapping(ctx context.Context, equipmentID string, start, end time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return r.list(ctx, "equipment_id = $1 AND status = ANY($2) AND start_date <= $3 AND end_date >= $4",
		equipmentID, pq.Array(names), end, start)
}
