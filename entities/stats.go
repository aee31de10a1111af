package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReferralStats is a derived row per referrer, reconstructable from Purchase rows.
// Mutated only by monotonic increments.
type ReferralStats struct {
	UserID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"user_id"`
	TotalReferrals   int64           `gorm:"not null;default:0" json:"total_referrals"`
	TotalEarningsUsd decimal.Decimal `gorm:"type:numeric(30,8);not null;default:0" json:"total_earnings_usd"`
	UpdatedAt        time.Time       `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID"`
}

// CreatorStats is a derived row per creator, written incrementally on events and
// overwritten by the batch recomputation.
type CreatorStats struct {
	UserID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"user_id"`
	CoursesCount     int64           `gorm:"not null;default:0" json:"courses_count"`
	StudentsCount    int64           `gorm:"not null;default:0" json:"students_count"`
	TotalEarningsUsd decimal.Decimal `gorm:"type:numeric(30,8);not null;default:0" json:"total_earnings_usd"`
	Points           int64           `gorm:"not null;default:0;index" json:"points"`
	UpdatedAt        time.Time       `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID"`
}
