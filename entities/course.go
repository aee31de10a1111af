package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Course struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CreatorID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"creator_id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	PriceUsd    decimal.Decimal `gorm:"type:numeric(30,8);not null;default:0" json:"price_usd"`
	IsFree      bool            `gorm:"not null;default:false" json:"is_free"`
	ExternalID  *int64          `gorm:"index" json:"external_id,omitempty"` // on-chain course id
	CoverURL    string          `json:"cover_url,omitempty"`
	IsPublished bool            `gorm:"not null;default:false" json:"is_published"`
	IsHidden    bool            `gorm:"not null;default:false" json:"is_hidden"`

	Creator   *User       `gorm:"foreignKey:CreatorID"`
	Purchases []*Purchase `gorm:"foreignKey:CourseID"`
	Timestamp
}

// EffectivePriceUsd is the price used for entitlement and earnings math.
// A free course is always priced at zero regardless of the stored value.
func (c *Course) EffectivePriceUsd() decimal.Decimal {
	if c.IsFree {
		return decimal.Zero
	}
	return c.PriceUsd
}
