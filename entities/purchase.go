package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is an append-only ledger row: created exactly once by the purchase
// recorder, never updated or deleted.
type Purchase struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	BuyerID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_purchases_buyer_course" json:"buyer_id"`
	CourseID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_purchases_buyer_course" json:"course_id"`
	TxHash          string           `gorm:"type:varchar(128);not null;uniqueIndex" json:"tx_hash"`
	PaidAmountUsd   decimal.Decimal  `gorm:"type:numeric(30,8);not null" json:"paid_amount_usd"`
	PaymentToken    string           `gorm:"type:varchar(16);not null" json:"payment_token"`
	ReferrerID      *uuid.UUID       `gorm:"type:uuid;index" json:"referrer_id,omitempty"`
	ReferralEarning *decimal.Decimal `gorm:"type:numeric(30,8)" json:"referral_earning,omitempty"`

	Buyer    *User   `gorm:"foreignKey:BuyerID"`
	Course   *Course `gorm:"foreignKey:CourseID"`
	Referrer *User   `gorm:"foreignKey:ReferrerID"`
	Timestamp
}
