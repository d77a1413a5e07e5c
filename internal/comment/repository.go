package comment

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, c *Comment) error
	ListByWaffle(ctx context.Context, waffleID string) ([]Comment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) ListByWaffle(ctx context.Context, waffleID string) ([]Comment, error) {
	var out []Comment
	err := r.db.WithContext(ctx).Where("waffle_id = ?", waffleID).Find(&out).Error
	return out, err
}
