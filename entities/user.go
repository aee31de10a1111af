package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `json:"name"`
	Email         string    `gorm:"uniqueIndex" json:"email"`
	Password      string    `json:"-"`
	WalletAddress string    `json:"wallet_address,omitempty"`
	ReferralCode  string    `gorm:"type:varchar(16);uniqueIndex" json:"referral_code"`
	Role          string    `json:"role"`

	Courses   []*Course   `gorm:"foreignKey:CreatorID"`
	Purchases []*Purchase `gorm:"foreignKey:BuyerID"`
	Timestamp
}
