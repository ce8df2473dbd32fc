package postgres

import (
	"context"
	"database/sql"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, phone, email, password_hash, village, district, state, rating, total_ratings, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `INSERT INTO users (` + userColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	logger.DatabaseCall("INSERT", "users", "phone", u.Phone)
	res, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.Phone, u.Email, u.PasswordHash, u.Village, u.District, u.State, u.Rating, u.TotalRatings, u.CreatedAt, u.UpdatedAt)
	var rows int64
	if err == nil {
		rows, _ = res.RowsAffected()
	}
	logger.DatabaseResult("INSERT", rows, err, "table", "users")
	return translate(err, "user")
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.Village, &u.District, &u.State, &u.Rating, &u.TotalRatings, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, translate(err, "user")
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.getOne(ctx, "phone = $1", phone)
}

func (r *userRepository) UpdateRating(ctx context.Context, id string, rating float64, totalRatings int32) error {
	query := `UPDATE users SET rating=$1, total_ratings=$2, updated_at=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, rating, totalRatings, time.Now().UTC(), id)
	if err != nil {
		return translate(err, "user")
	}
	return requireRow(res, "user")
}

func (r *userRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM users ORDER BY created_at`)
	if err != nil {
		return nil, translate(err, "user")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, translate(err, "user")
		}
		ids = append(ids, id)
	}
	return ids, translate(rows.Err(), "user")
}
