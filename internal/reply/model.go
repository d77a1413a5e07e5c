package reply

import "time"

// Reply is a private voice message sent in response to someone's waffle.
type Reply struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	FromUserID   string    `gorm:"size:64" json:"from_user_id"`
	FromUserName string    `gorm:"size:128" json:"from_user_name"`
	ToUserID     string    `gorm:"size:64;index" json:"to_user_id"`
	AudioURL     string    `json:"audio_url"`
	Duration     float64   `json:"duration"`
	CreatedAt    time.Time `json:"created_at"`
}
