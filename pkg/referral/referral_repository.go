package referral

import (
	"Go-Course-Market/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ReferralRepository interface {
		CreditReferral(ctx context.Context, referrerID uuid.UUID, earningUsd decimal.Decimal) error
		GetStats(ctx context.Context, userID uuid.UUID) (*entities.ReferralStats, error)
		GetRecentReferredPurchases(ctx context.Context, referrerID uuid.UUID, limit int) ([]*entities.Purchase, error)
	}

	referralRepository struct {
		db *gorm.DB
	}
)

func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &referralRepository{
		db: db,
	}
}

// CreditReferral is a single additive upsert: the row is created on the first
// credit, later credits add onto it. The increment happens in one statement so
// concurrent credits for the same referrer never lose updates.
func (r *referralRepository) CreditReferral(ctx context.Context, referrerID uuid.UUID, earningUsd decimal.Decimal) error {
	stats := &entities.ReferralStats{
		UserID:           referrerID,
		TotalReferrals:   1,
		TotalEarningsUsd: earningUsd,
		UpdatedAt:        time.Now(),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_referrals":    gorm.Expr("total_referrals + 1"),
			"total_earnings_usd": gorm.Expr("total_earnings_usd + ?", earningUsd),
			"updated_at":         time.Now(),
		}),
	}).Create(stats).Error
}

// GetStats returns the stats row, or a zero row when the user has never
// referred anyone.
func (r *referralRepository) GetStats(ctx context.Context, userID uuid.UUID) (*entities.ReferralStats, error) {
	var stats entities.ReferralStats
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entities.ReferralStats{
				UserID:           userID,
				TotalEarningsUsd: decimal.Zero,
			}, nil
		}
		return nil, err
	}
	return &stats, nil
}

func (r *referralRepository) GetRecentReferredPurchases(ctx context.Context, referrerID uuid.UUID, limit int) ([]*entities.Purchase, error) {
	var purchases []*entities.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Buyer").
		Where("referrer_id = ?", referrerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}
