package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessRecordPurchase = "purchase recorded successfully"

	MessageFailedRecordPurchase = "failed to record purchase"

	ErrAlreadyPurchased     = errors.New("course already purchased")
	ErrDuplicateTransaction = errors.New("transaction hash already recorded")
	ErrInvalidTxHash        = errors.New("invalid transaction hash format")
	ErrInvalidPaidAmount    = errors.New("paid amount must not be negative")
)

// Platform splits. The referral cut is taken from the course list price, the
// creator cut from the actually-paid amount; the two bases can legitimately
// diverge when the token price moved between listing and payment.
var (
	ReferralCutRate = decimal.NewFromFloat(0.03)
	CreatorCutRate  = decimal.NewFromFloat(0.92)
)

// TokenPrecision is the decimal precision used for on-chain token amounts.
const TokenPrecision = 8

var txHashPattern = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{16,128}$`)

func ValidTxHash(hash string) bool {
	return txHashPattern.MatchString(hash)
}

// ReferralEarningUsd computes the referrer cut from the course list price.
func ReferralEarningUsd(coursePriceUsd decimal.Decimal) decimal.Decimal {
	return coursePriceUsd.Mul(ReferralCutRate).Round(TokenPrecision)
}

// CreatorEarningUsd computes the creator cut from the actually-paid amount.
func CreatorEarningUsd(paidAmountUsd decimal.Decimal) decimal.Decimal {
	return paidAmountUsd.Mul(CreatorCutRate).Round(TokenPrecision)
}

type (
	RecordPurchaseRequest struct {
		CourseID     string          `json:"course_id" validate:"required,uuid"`
		TxHash       string          `json:"tx_hash" validate:"required,min=16,max=130"`
		PaidAmount   decimal.Decimal `json:"paid_amount"`
		PaymentToken string          `json:"payment_token" validate:"required,max=16"`
		ReferralCode string          `json:"referral_code" validate:"omitempty,max=16"`
	}

	PurchaseResponse struct {
		ID              string           `json:"id"`
		BuyerID         string           `json:"buyer_id"`
		CourseID        string           `json:"course_id"`
		TxHash          string           `json:"tx_hash"`
		PaidAmountUsd   decimal.Decimal  `json:"paid_amount_usd"`
		PaymentToken    string           `json:"payment_token"`
		ReferrerID      *string          `json:"referrer_id,omitempty"`
		ReferralEarning *decimal.Decimal `json:"referral_earning,omitempty"`
		CreatedAt       time.Time        `json:"created_at"`
	}
)
