package purchase

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/entities"
	"Go-Course-Market/pkg/course"
	"Go-Course-Market/pkg/leaderboard"
	"Go-Course-Market/pkg/notification"
	"Go-Course-Market/pkg/referral"
	"Go-Course-Market/pkg/user"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	PurchaseService interface {
		RecordPurchase(ctx context.Context, req domain.RecordPurchaseRequest, buyerID string) (*domain.PurchaseResponse, error)
	}

	purchaseService struct {
		purchaseRepository PurchaseRepository
		courseRepository   course.CourseRepository
		userRepository     user.UserRepository
		referralService    referral.ReferralService
		leaderboardService leaderboard.LeaderboardService
		notificationSink   notification.Sink
	}
)

func NewPurchaseService(
	purchaseRepository PurchaseRepository,
	courseRepository course.CourseRepository,
	userRepository user.UserRepository,
	referralService referral.ReferralService,
	leaderboardService leaderboard.LeaderboardService,
	notificationSink notification.Sink,
) PurchaseService {
	return &purchaseService{
		purchaseRepository: purchaseRepository,
		courseRepository:   courseRepository,
		userRepository:     userRepository,
		referralService:    referralService,
		leaderboardService: leaderboardService,
		notificationSink:   notificationSink,
	}
}

// RecordPurchase validates a claimed on-chain payment and records it exactly
// once. The Purchase insert is the atomicity boundary: validation failures
// mutate nothing, and failures after a durable insert only affect derived
// counters, which the leaderboard batch refresh reconciles.
func (s *purchaseService) RecordPurchase(ctx context.Context, req domain.RecordPurchaseRequest, buyerID string) (*domain.PurchaseResponse, error) {
	if !domain.ValidTxHash(req.TxHash) {
		return nil, domain.ErrInvalidTxHash
	}
	if req.PaidAmount.IsNegative() {
		return nil, domain.ErrInvalidPaidAmount
	}

	buyerUUID, err := uuid.Parse(buyerID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	crs, err := s.courseRepository.GetCourseByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	exists, err := s.purchaseRepository.PurchaseExists(ctx, buyerID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyPurchased
	}

	hashUsed, err := s.purchaseRepository.TxHashExists(ctx, req.TxHash)
	if err != nil {
		return nil, err
	}
	if hashUsed {
		return nil, domain.ErrDuplicateTransaction
	}

	referrerID, referralEarning := s.resolveReferral(ctx, req.ReferralCode, buyerUUID, crs)

	purchase := &entities.Purchase{
		ID:              uuid.New(),
		BuyerID:         buyerUUID,
		CourseID:        crs.ID,
		TxHash:          req.TxHash,
		PaidAmountUsd:   req.PaidAmount,
		PaymentToken:    req.PaymentToken,
		ReferrerID:      referrerID,
		ReferralEarning: referralEarning,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.purchaseRepository.CreatePurchase(ctx, purchase); err != nil {
		// The pre-checks race with concurrent submissions; the unique
		// constraints are authoritative, so map the violation back to a
		// specific conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyConflict(ctx, buyerID, req.CourseID)
		}
		return nil, err
	}

	s.distribute(ctx, purchase, crs, referrerID, referralEarning)

	return toPurchaseResponse(purchase), nil
}

// classifyConflict distinguishes a replayed transaction hash from a repeated
// (buyer, course) purchase after a constraint violation.
func (s *purchaseService) classifyConflict(ctx context.Context, buyerID, courseID string) error {
	exists, err := s.purchaseRepository.PurchaseExists(ctx, buyerID, courseID)
	if err == nil && exists {
		return domain.ErrAlreadyPurchased
	}
	return domain.ErrDuplicateTransaction
}

// resolveReferral maps a referral code to an attributable referrer. Referral is
// best-effort enrichment: an unknown code, the buyer's own code, or the course
// creator's code all resolve to no referrer without failing the purchase.
func (s *purchaseService) resolveReferral(ctx context.Context, code string, buyerID uuid.UUID, crs *entities.Course) (*uuid.UUID, *decimal.Decimal) {
	if code == "" {
		return nil, nil
	}

	referrer, err := s.userRepository.GetUserByReferralCode(ctx, code)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("failed to resolve referral code %q: %v", code, err)
		}
		return nil, nil
	}

	if referrer.ID == buyerID || referrer.ID == crs.CreatorID {
		return nil, nil
	}

	// Referral earning is cut from the course list price, not the paid
	// amount; the two bases can diverge when token prices move.
	earning := domain.ReferralEarningUsd(crs.EffectivePriceUsd())
	return &referrer.ID, &earning
}

// distribute runs the post-insert side effects: notifications and counter
// updates. Each step is additive or idempotent and failures are logged only;
// the Purchase row stays the source of truth for the batch refresh.
func (s *purchaseService) distribute(ctx context.Context, purchase *entities.Purchase, crs *entities.Course, referrerID *uuid.UUID, referralEarning *decimal.Decimal) {
	s.notificationSink.Enqueue(ctx, crs.CreatorID,
		domain.NotificationTypePurchase,
		"Course purchased",
		fmt.Sprintf("Your course %q was purchased.", crs.Title),
		notificationData(map[string]string{
			"course_id":   crs.ID.String(),
			"purchase_id": purchase.ID.String(),
		}),
	)

	if referrerID != nil && referralEarning != nil {
		if err := s.referralService.CreditReferral(ctx, *referrerID, *referralEarning); err != nil {
			log.Printf("failed to credit referral for %s on purchase %s: %v", referrerID, purchase.ID, err)
		} else {
			s.notificationSink.Enqueue(ctx, *referrerID,
				domain.NotificationTypeReferralEarning,
				"Referral reward earned",
				fmt.Sprintf("You earned $%s for referring a student to %q.", referralEarning.String(), crs.Title),
				notificationData(map[string]string{
					"course_id":   crs.ID.String(),
					"purchase_id": purchase.ID.String(),
					"earning_usd": referralEarning.String(),
				}),
			)
		}
	}

	creatorEarning := domain.CreatorEarningUsd(purchase.PaidAmountUsd)
	if err := s.leaderboardService.ApplyPurchase(ctx, crs.CreatorID, creatorEarning); err != nil {
		log.Printf("failed to apply purchase event for creator %s on purchase %s: %v", crs.CreatorID, purchase.ID, err)
	}
}

func notificationData(fields map[string]string) string {
	raw, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(raw)
}

func toPurchaseResponse(purchase *entities.Purchase) *domain.PurchaseResponse {
	resp := &domain.PurchaseResponse{
		ID:              purchase.ID.String(),
		BuyerID:         purchase.BuyerID.String(),
		CourseID:        purchase.CourseID.String(),
		TxHash:          purchase.TxHash,
		PaidAmountUsd:   purchase.PaidAmountUsd,
		PaymentToken:    purchase.PaymentToken,
		ReferralEarning: purchase.ReferralEarning,
		CreatedAt:       purchase.CreatedAt,
	}
	if purchase.ReferrerID != nil {
		id := purchase.ReferrerID.String()
		resp.ReferrerID = &id
	}
	return resp
}
