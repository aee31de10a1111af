package referral

import (
	"Go-Course-Market/domain"
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const recentReferredLimit = 10

type (
	ReferralService interface {
		CreditReferral(ctx context.Context, referrerID uuid.UUID, earningUsd decimal.Decimal) error
		GetStats(ctx context.Context, userID uuid.UUID) (*domain.ReferralStatsResponse, error)
	}

	referralService struct {
		referralRepository ReferralRepository
	}
)

func NewReferralService(referralRepository ReferralRepository) ReferralService {
	return &referralService{
		referralRepository: referralRepository,
	}
}

func (s *referralService) CreditReferral(ctx context.Context, referrerID uuid.UUID, earningUsd decimal.Decimal) error {
	return s.referralRepository.CreditReferral(ctx, referrerID, earningUsd)
}

func (s *referralService) GetStats(ctx context.Context, userID uuid.UUID) (*domain.ReferralStatsResponse, error) {
	stats, err := s.referralRepository.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	purchases, err := s.referralRepository.GetRecentReferredPurchases(ctx, userID, recentReferredLimit)
	if err != nil {
		return nil, err
	}

	recent := make([]domain.ReferredUser, 0, len(purchases))
	for _, p := range purchases {
		name := ""
		if p.Buyer != nil {
			name = p.Buyer.Name
		}
		recent = append(recent, domain.ReferredUser{
			Name:        name,
			PurchasedAt: p.CreatedAt,
		})
	}

	return &domain.ReferralStatsResponse{
		TotalReferrals:      stats.TotalReferrals,
		TotalEarningsUsd:    stats.TotalEarningsUsd,
		RecentReferredUsers: recent,
	}, nil
}
