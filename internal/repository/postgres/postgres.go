package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"agrorent-backend/internal/repository"
	apperrors "agrorent-backend/pkg/errors"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// Store is the PostGIS backed implementation of repository.Store.
type Store struct {
	db        *sql.DB
	users     repository.UserRepository
	equipment repository.EquipmentRepository
	bookings  repository.BookingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		users:     NewUserRepository(db),
		equipment: NewEquipmentRepository(db),
		bookings:  NewBookingRepository(db),
	}
}

func (s *Store) Users() repository.UserRepository           { return s.users }
func (s *Store) Equipment() repository.EquipmentRepository { return s.equipment }
func (s *Store) Bookings() repository.BookingRepository    { return s.bookings }

func (s *Store) DB() *sql.DB { return s.db }

// translate maps driver errors onto application errors. what names the
// entity for not-found messages.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s not found", what))
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return apperrors.NewConflictError(fmt.Sprintf("%s already exists", what))
	}
	return apperrors.NewInternalError(fmt.Sprintf("%s query failed", what), err)
}

// requireRow turns a zero-row UPDATE/DELETE into NotFound.
func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s not found", what))
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt32(v *int32) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *v, Valid: true}
}

func int32Ptr(v sql.NullInt32) *int32 {
	if !v.Valid {
		return nil
	}
	i := v.Int32
	return &i
}
