package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	PrivacyFriends = "friends"
	PrivacyPublic  = "public"
)

// StringList is stored as a jsonb array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported jsonb source type")
	}
}

func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

type User struct {
	ID              string     `gorm:"primaryKey;size:64" json:"id"`
	Name            string     `gorm:"size:128" json:"name"`
	PhoneNumber     *string    `gorm:"size:32;index" json:"phone_number,omitempty"`
	AppleID         *string    `gorm:"size:128" json:"apple_id,omitempty"`
	FriendIDs       StringList `gorm:"type:jsonb" json:"friend_ids"`
	Privacy         string     `gorm:"size:16;default:public" json:"privacy"`
	ProfileImageURL *string    `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
