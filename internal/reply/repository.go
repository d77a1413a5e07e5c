package reply

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, rp *Reply) error
	ListTo(ctx context.Context, userID string) ([]Reply, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rp *Reply) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *repository) ListTo(ctx context.Context, userID string) ([]Reply, error) {
	var out []Reply
	err := r.db.WithContext(ctx).Where("to_user_id = ?", userID).Find(&out).Error
	return out, err
}
