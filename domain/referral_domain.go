package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetReferralStats = "referral stats retrieved successfully"

	MessageFailedGetReferralStats = "failed to retrieve referral stats"
)

type (
	ReferredUser struct {
		Name        string    `json:"name"`
		PurchasedAt time.Time `json:"purchased_at"`
	}

	ReferralStatsResponse struct {
		TotalReferrals      int64           `json:"total_referrals"`
		TotalEarningsUsd    decimal.Decimal `json:"total_earnings_usd"`
		RecentReferredUsers []ReferredUser  `json:"recent_referred_users"`
	}
)
