package entities

import (
	"github.com/google/uuid"
)

type Notification struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Type   string    `gorm:"type:varchar(32);not null" json:"type"` // purchase, referral_earning
	Title  string    `json:"title"`
	Body   string    `gorm:"type:text" json:"body"`
	Data   string    `gorm:"type:text" json:"data,omitempty"`
	IsRead bool      `gorm:"not null;default:false" json:"is_read"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
