package purchase

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/entities"
	"Go-Course-Market/internal/testutil"
	"Go-Course-Market/pkg/course"
	"Go-Course-Market/pkg/leaderboard"
	"Go-Course-Market/pkg/referral"
	"Go-Course-Market/pkg/user"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sinkEvent struct {
	UserID uuid.UUID
	Type   string
}

// sinkStub records enqueued notifications without delivering anything.
type sinkStub struct {
	events []sinkEvent
}

func (s *sinkStub) Enqueue(_ context.Context, userID uuid.UUID, notifType, _, _, _ string) {
	s.events = append(s.events, sinkEvent{UserID: userID, Type: notifType})
}

type purchaseFixture struct {
	db          *gorm.DB
	service     PurchaseService
	referral    referral.ReferralService
	leaderboard leaderboard.LeaderboardRepository
	sink        *sinkStub
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()

	db := testutil.NewTestDB(t,
		&entities.User{},
		&entities.Course{},
		&entities.Purchase{},
		&entities.ReferralStats{},
		&entities.CreatorStats{},
	)

	sink := &sinkStub{}
	referralService := referral.NewReferralService(referral.NewReferralRepository(db))
	leaderboardRepository := leaderboard.NewLeaderboardRepository(db)

	service := NewPurchaseService(
		NewPurchaseRepository(db),
		course.NewCourseRepository(db),
		user.NewUserRepository(db),
		referralService,
		leaderboard.NewLeaderboardService(leaderboardRepository),
		sink,
	)

	return &purchaseFixture{
		db:          db,
		service:     service,
		referral:    referralService,
		leaderboard: leaderboardRepository,
		sink:        sink,
	}
}

func (f *purchaseFixture) createUser(t *testing.T, name, referralCode string) *entities.User {
	t.Helper()

	u := &entities.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		ReferralCode: referralCode,
		Role:         domain.RoleUser,
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *purchaseFixture) createCourse(t *testing.T, creatorID uuid.UUID, priceUsd string) *entities.Course {
	t.Helper()

	c := &entities.Course{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		Title:       "Test Course",
		PriceUsd:    decimal.RequireFromString(priceUsd),
		IsPublished: true,
	}
	require.NoError(t, f.db.Create(c).Error)
	return c
}

func testTxHash(n byte) string {
	return fmt.Sprintf("0x%064x", n)
}

func TestRecordPurchaseSuccess(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	creator := f.createUser(t, "Creator", "CR1234")
	buyer := f.createUser(t, "Buyer", "BY1234")
	referrer := f.createUser(t, "Referrer", "RF1234")
	crs := f.createCourse(t, creator.ID, "100")

	resp, err := f.service.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		CourseID:     crs.ID.String(),
		TxHash:       testTxHash(1),
		PaidAmount:   decimal.NewFromInt(100),
		PaymentToken: "TON",
		ReferralCode: "RF1234",
	}, buyer.ID.String())
	require.NoError(t, err)

	require.Equal(t, buyer.ID.String(), resp.BuyerID)
	require.Equal(t, crs.ID.String(), resp.CourseID)
	require.NotNil(t, resp.ReferrerID)
	require.Equal(t, referrer.ID.String(), *resp.ReferrerID)
	require.NotNil(t, resp.ReferralEarning)
	require.True(t, resp.ReferralEarning.Equal(decimal.NewFromInt(3)),
		"referral earning = %s", resp.ReferralEarning)

	// The referrer ledger is credited once.
	refStats, err := f.referral.GetStats(ctx, referrer.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), refStats.TotalReferrals)
	require.True(t, refStats.TotalEarningsUsd.Equal(decimal.NewFromInt(3)),
		"referrer earnings = %s", refStats.TotalEarningsUsd)

	// The creator counters pick up the student and the 92% cut.
	creatorStats, err := f.leaderboard.GetCreatorStats(ctx, creator.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), creatorStats.StudentsCount)
	require.True(t, creatorStats.TotalEarningsUsd.Equal(decimal.NewFromInt(92)),
		"creator earnings = %s", creatorStats.TotalEarningsUsd)

	// One notification for the creator, one for the referrer.
	require.Len(t, f.sink.events, 2)
	require.Equal(t, sinkEvent{UserID: creator.ID, Type: domain.NotificationTypePurchase}, f.sink.events[0])
	require.Equal(t, sinkEvent{UserID: referrer.ID, Type: domain.NotificationTypeReferralEarning}, f.sink.events[1])
}

func TestRecordPurchaseReferralSplitPrecision(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	creator := f.createUser(t, "Creator", "CR1234")
	buyer := f.createUser(t, "Buyer", "BY1234")
	f.createUser(t, "Referrer", "RF1234")
	crs := f.createCourse(t, creator.ID, "50")

	resp, err := f.service.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		CourseID:     crs.ID.String(),
		TxHash:       testTxHash(2),
		PaidAmount:   decimal.NewFromInt(50),
		PaymentToken: "TON",
		ReferralCode: "RF1234",
	}, buyer.ID.String())
	require.NoError(t, err)

	require.NotNil(t, resp.ReferralEarning)
	require.True(t, resp.ReferralEarning.Equal(decimal.RequireFromString("1.5")),
		"referral earning = %s", resp.ReferralEarning)
}

func TestRecordPurchaseCreatorCut(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	creator := f.createUser(t, "Creator", "CR1234")
	buyer := f.createUser(t, "Buyer", "BY1234")
	crs := f.createCourse(t, creator.ID, "20")

	_, err := f.service.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		CourseID:     crs.ID.String(),
		TxHash:       testTxHash(3),
		PaidAmount:   decimal.NewFromInt(20),
		PaymentToken: "TON",
	}, buyer.ID.String())
	require.NoError(t, err)

	stats, err := f.leaderboard.GetCreatorStats(ctx, creator.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.StudentsCount)
	require.True(t, stats.TotalEarningsUsd.Equal(decimal.RequireFromString("18.4")),
		"creator earnings = %s", stats.TotalEarningsUsd)
	require.Equal(t, int64(1), stats.Points)
}

func TestRecordPurchaseSelfReferralIgnored(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	creator := f.createUser(t, "Creator", "CR1234")
	buyer := f.createUser(t, "Buyer", "BY1234")
	crs := f.createCourse(t, creator.ID, "100")

	resp, err := f.service.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		CourseID:     crs.ID.String(),
		TxHash:       testTxHash(4),
		PaidAmount:   decimal.NewFromInt(100),
		PaymentToken: "TON",
		ReferralCode: "BY1234",
	}, buyer.ID.String())
	require.NoError(t, err)
	require.Nil(t, resp.ReferrerID)
	require.Nil(t, resp.ReferralEarning)
}

func TestRecordPurchaseCreatorReferralIgnored(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	creator := f.createUser(t, "Creator", "CR1234")
	buyer := f.createUser(t, "Buyer", "BY1234")
	crs := f.createCourse(t, creator.ID, "100")

	resp, err := f.service.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		CourseID:     crs.ID.String(),
		TxHash:       testTxHash(5),
		PaidAmount:   decimal.NewFromInt(100),
		PaymentToken: "TON",
		ReferralCode: "CR1234",
	}, buyer.ID.String())
	require.NoError(t, err)
	require.Nil(t, resp.ReferrerID)

	var count int64
	require.NoError(t, f.db.Model(&entities.ReferralStats{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestRecordPurchaseUnknownReferralCodeIgnored(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	creator := f.createUser(t, "Creator", "CR1234")
	buyer := f.createUser(t, "Buyer", "BY1234")
	crs := f.createCourse(t, creator.ID, "100")

	resp, err := f.service.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		CourseID:     crs.ID.String(),
		TxHash:       testTxHash(6),
		PaidAmount:   decimal.NewFromInt(100),
		PaymentToken: "TON",
		ReferralCode: "NOSUCH",
	}, buyer.ID.String())
	require.NoError(t, err)
	require.Nil(t, resp.ReferrerID)
}

func TestRecordPurchaseAlreadyPurchased(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	creator := f.createUser(t, "Creator", "CR1234")
	buyer := f.createUser(t, "Buyer", "BY1234")
	crs := f.createCourse(t, creator.ID, "100")

	_, err := f.service.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		CourseID:     crs.ID.String(),
		TxHash:       testTxHash(7),
		PaidAmount:   decimal.NewFromInt(100),
		PaymentToken: "TON",
	}, buyer.ID.String())
	require.NoError(t, err)

	// Same buyer and course again, with a fresh transaction hash.
	_, err = f.service.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		CourseID:     crs.ID.String(),
		TxHash:       testTxHash(8),
		PaidAmount:   decimal.NewFromInt(100),
		PaymentToken: "TON",
	}, buyer.ID.String())
	require.ErrorIs(t, err, domain.ErrAlreadyPurchased)

	// The rejected attempt left the ledger and counters untouched.
	var count int64
	require.NoError(t, f.db.Model(&entities.Purchase{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	stats, err := f.leaderboard.GetCreatorStats(ctx, creator.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.StudentsCount)
}

func TestRecordPurchaseDuplicateTransaction(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	creator := f.createUser(t, "Creator", "CR1234")
	buyerA := f.createUser(t, "Buyer A", "BA1234")
	buyerB := f.createUser(t, "Buyer B", "BB1234")
	courseA := f.createCourse(t, creator.ID, "100")
	courseB := f.createCourse(t, creator.ID, "100")

	_, err := f.service.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		CourseID:     courseA.ID.String(),
		TxHash:       testTxHash(9),
		PaidAmount:   decimal.NewFromInt(100),
		PaymentToken: "TON",
	}, buyerA.ID.String())
	require.NoError(t, err)

	// A different buyer replaying the same hash on a different course.
	_, err = f.service.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		CourseID:     courseB.ID.String(),
		TxHash:       testTxHash(9),
		PaidAmount:   decimal.NewFromInt(100),
		PaymentToken: "TON",
	}, buyerB.ID.String())
	require.ErrorIs(t, err, domain.ErrDuplicateTransaction)

	var count int64
	require.NoError(t, f.db.Model(&entities.Purchase{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestRecordPurchaseCourseNotFound(t *testing.T) {
	f := newPurchaseFixture(t)

	buyer := f.createUser(t, "Buyer", "BY1234")

	_, err := f.service.RecordPurchase(context.Background(), domain.RecordPurchaseRequest{
		CourseID:     uuid.NewString(),
		TxHash:       testTxHash(10),
		PaidAmount:   decimal.NewFromInt(100),
		PaymentToken: "TON",
	}, buyer.ID.String())
	require.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestRecordPurchaseInvalidTxHash(t *testing.T) {
	f := newPurchaseFixture(t)

	buyer := f.createUser(t, "Buyer", "BY1234")

	for _, hash := range []string{"", "0x12", "not-a-hash-at-all!!"} {
		_, err := f.service.RecordPurchase(context.Background(), domain.RecordPurchaseRequest{
			CourseID:     uuid.NewString(),
			TxHash:       hash,
			PaidAmount:   decimal.NewFromInt(100),
			PaymentToken: "TON",
		}, buyer.ID.String())
		require.ErrorIs(t, err, domain.ErrInvalidTxHash, "hash %q", hash)
	}
}

func TestRecordPurchaseNegativePaidAmount(t *testing.T) {
	f := newPurchaseFixture(t)

	buyer := f.createUser(t, "Buyer", "BY1234")

	_, err := f.service.RecordPurchase(context.Background(), domain.RecordPurchaseRequest{
		CourseID:     uuid.NewString(),
		TxHash:       testTxHash(11),
		PaidAmount:   decimal.NewFromInt(-5),
		PaymentToken: "TON",
	}, buyer.ID.String())
	require.ErrorIs(t, err, domain.ErrInvalidPaidAmount)
}

func TestRecordPurchaseFreeCourseReferralEarnsNothing(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	creator := f.createUser(t, "Creator", "CR1234")
	buyer := f.createUser(t, "Buyer", "BY1234")
	referrer := f.createUser(t, "Referrer", "RF1234")

	crs := &entities.Course{
		ID:          uuid.New(),
		CreatorID:   creator.ID,
		Title:       "Free Course",
		PriceUsd:    decimal.NewFromInt(100),
		IsFree:      true,
		IsPublished: true,
	}
	require.NoError(t, f.db.Create(crs).Error)

	resp, err := f.service.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		CourseID:     crs.ID.String(),
		TxHash:       testTxHash(12),
		PaidAmount:   decimal.Zero,
		PaymentToken: "TON",
		ReferralCode: "RF1234",
	}, buyer.ID.String())
	require.NoError(t, err)

	require.NotNil(t, resp.ReferrerID)
	require.Equal(t, referrer.ID.String(), *resp.ReferrerID)
	require.NotNil(t, resp.ReferralEarning)
	require.True(t, resp.ReferralEarning.IsZero(),
		"referral earning = %s", resp.ReferralEarning)
}
