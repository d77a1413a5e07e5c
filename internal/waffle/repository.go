package waffle

import (
	"context"

	"gorm.io/gorm"
)

// Repository queries use equality filters only; callers sort in application
// code, newest first.
type Repository interface {
	Create(ctx context.Context, w *Waffle) error
	ListByUser(ctx context.Context, userID string) ([]Waffle, error)
	ListByUserAndPeriod(ctx context.Context, userID, period string) ([]Waffle, error)
	ListByPeriodAndUsers(ctx context.Context, period string, userIDs []string) ([]Waffle, error)
	ListByPeriodAndPrivacy(ctx context.Context, period, privacy string) ([]Waffle, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, w *Waffle) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Waffle, error) {
	var out []Waffle
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&out).Error
	return out, err
}

func (r *repository) ListByUserAndPeriod(ctx context.Context, userID, period string) ([]Waffle, error) {
	var out []Waffle
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND wednesday_date = ?", userID, period).
		Find(&out).Error
	return out, err
}

func (r *repository) ListByPeriodAndUsers(ctx context.Context, period string, userIDs []string) ([]Waffle, error) {
	var out []Waffle
	err := r.db.WithContext(ctx).
		Where("wednesday_date = ? AND user_id IN ?", period, userIDs).
		Find(&out).Error
	return out, err
}

func (r *repository) ListByPeriodAndPrivacy(ctx context.Context, period, privacy string) ([]Waffle, error) {
	var out []Waffle
	err := r.db.WithContext(ctx).
		Where("wednesday_date = ? AND privacy = ?", period, privacy).
		Find(&out).Error
	return out, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Waffle{}, "id = ?", id).Error
}
