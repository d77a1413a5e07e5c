package waffle

import "time"

// Waffle is one weekly voice post. WednesdayDate is always computed
// server-side from the upload time; it is never client-supplied. Rows are
// immutable after creation and only removed by the retention pass.
type Waffle struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	UserID        string    `gorm:"size:64;index" json:"user_id"`
	UserName      string    `gorm:"size:128" json:"user_name"`
	AudioURL      string    `json:"audio_url"`
	Duration      float64   `json:"duration"`
	WednesdayDate string    `gorm:"size:10;index" json:"wednesday_date"`
	Privacy       string    `gorm:"size:16" json:"privacy"`
	CreatedAt     time.Time `json:"created_at"`
}
