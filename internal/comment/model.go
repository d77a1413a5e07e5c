package comment

import "time"

type Comment struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	WaffleID  string    `gorm:"size:64;index" json:"waffle_id"`
	UserID    string    `gorm:"size:64" json:"user_id"`
	UserName  string    `gorm:"size:128" json:"user_name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateRequest struct {
	Text string `json:"text"`
}
