package memory

import (
	"context"
	"time"

	"agrorent-backend/internal/domain"
	apperrors "agrorent-backend/pkg/errors"

	"github.com/google/uuid"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.phones[u.Phone]; taken {
		return apperrors.NewConflictError("user already exists")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	c := *u
	r.s.users[u.ID] = &c
	r.s.phones[u.Phone] = u.ID
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	c := *u
	return &c, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.phones[phone]
	r.s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) UpdateRating(ctx context.Context, id string, rating float64, totalRatings int32) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return apperrors.NewNotFoundError("user not found")
	}
	u.Rating = rating
	u.TotalRatings = totalRatings
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *userRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedKeys(r.s.users), nil
}
