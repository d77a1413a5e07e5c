package migrate

import (
	"gorm.io/gorm"

	"waffle-service/internal/comment"
	"waffle-service/internal/reply"
	"waffle-service/internal/user"
	"waffle-service/internal/waffle"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&waffle.Waffle{},
		&comment.Comment{},
		&reply.Reply{},
	)
}
