package leaderboard

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/entities"
	"Go-Course-Market/internal/testutil"
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLeaderboardService(t *testing.T) (LeaderboardService, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t,
		&entities.User{},
		&entities.Course{},
		&entities.Purchase{},
		&entities.CreatorStats{},
	)
	return NewLeaderboardService(NewLeaderboardRepository(db)), db
}

func createCreator(t *testing.T, db *gorm.DB, name string) *entities.User {
	t.Helper()

	id := uuid.New()
	u := &entities.User{
		ID:           id,
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", id),
		ReferralCode: id.String()[:8],
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createCourseRow(t *testing.T, db *gorm.DB, creatorID uuid.UUID) *entities.Course {
	t.Helper()

	c := &entities.Course{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		Title:       "Course",
		PriceUsd:    decimal.NewFromInt(100),
		IsPublished: true,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func createPurchaseRow(t *testing.T, db *gorm.DB, buyerID, courseID uuid.UUID, paid string, seq byte) {
	t.Helper()

	p := &entities.Purchase{
		ID:            uuid.New(),
		BuyerID:       buyerID,
		CourseID:      courseID,
		TxHash:        fmt.Sprintf("0x%064x", seq),
		PaidAmountUsd: decimal.RequireFromString(paid),
		PaymentToken:  "TON",
		Timestamp:     entities.Timestamp{CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}
	require.NoError(t, db.Create(p).Error)
}

func TestComputePoints(t *testing.T) {
	require.Equal(t, int64(0), domain.ComputePoints(0, 0, decimal.Zero))
	require.Equal(t, int64(10), domain.ComputePoints(1, 0, decimal.Zero))
	require.Equal(t, int64(11), domain.ComputePoints(1, 1, decimal.Zero))
	// 99.99 earns no step, 100 earns one.
	require.Equal(t, int64(11), domain.ComputePoints(1, 1, decimal.RequireFromString("99.99")))
	require.Equal(t, int64(16), domain.ComputePoints(1, 1, decimal.NewFromInt(100)))
	require.Equal(t, int64(168), domain.ComputePoints(2, 3, decimal.NewFromInt(2990)))
}

func TestApplyEventsAccumulate(t *testing.T) {
	service, db := newLeaderboardService(t)
	ctx := context.Background()
	creator := createCreator(t, db, "Creator")

	require.NoError(t, service.ApplyCourseCreated(ctx, creator.ID))
	require.NoError(t, service.ApplyCourseCreated(ctx, creator.ID))
	require.NoError(t, service.ApplyPurchase(ctx, creator.ID, decimal.NewFromInt(92)))
	require.NoError(t, service.ApplyPurchase(ctx, creator.ID, decimal.NewFromInt(58)))

	resp, err := service.GetLeaderboard(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)

	entry := resp.Entries[0]
	require.Equal(t, int64(2), entry.CoursesCount)
	require.Equal(t, int64(2), entry.StudentsCount)
	require.True(t, entry.TotalEarningsUsd.Equal(decimal.NewFromInt(150)),
		"earnings = %s", entry.TotalEarningsUsd)
	// 2 courses * 10 + 2 students * 1 + 1 earnings step * 5.
	require.Equal(t, int64(27), entry.Points)
	require.Equal(t, "Creator", entry.Name)
}

func TestIncrementalMatchesRefresh(t *testing.T) {
	service, db := newLeaderboardService(t)
	ctx := context.Background()
	creator := createCreator(t, db, "Creator")

	courseA := createCourseRow(t, db, creator.ID)
	courseB := createCourseRow(t, db, creator.ID)
	require.NoError(t, service.ApplyCourseCreated(ctx, creator.ID))
	require.NoError(t, service.ApplyCourseCreated(ctx, creator.ID))

	// One purchase per buyer so the incremental student counter agrees with
	// the distinct-buyer count the refresh derives.
	paidAmounts := []string{"100", "150", "3000"}
	courses := []*entities.Course{courseA, courseB, courseA}
	for i, paid := range paidAmounts {
		buyer := createCreator(t, db, fmt.Sprintf("Buyer %d", i))
		createPurchaseRow(t, db, buyer.ID, courses[i].ID, paid, byte(i))
		require.NoError(t, service.ApplyPurchase(ctx, creator.ID,
			domain.CreatorEarningUsd(decimal.RequireFromString(paid))))
	}

	incremental, err := service.GetLeaderboard(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, incremental.Entries, 1)

	refreshResp, err := service.RefreshAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, refreshResp.RefreshedCount)

	refreshed, err := service.GetLeaderboard(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, refreshed.Entries, 1)

	in, re := incremental.Entries[0], refreshed.Entries[0]
	require.Equal(t, in.CoursesCount, re.CoursesCount)
	require.Equal(t, in.StudentsCount, re.StudentsCount)
	require.True(t, in.TotalEarningsUsd.Equal(re.TotalEarningsUsd),
		"incremental %s vs refreshed %s", in.TotalEarningsUsd, re.TotalEarningsUsd)
	require.Equal(t, in.Points, re.Points)

	// 92 + 138 + 2760 = 2990 earned, 29 steps.
	require.Equal(t, int64(2*10+3*1+29*5), re.Points)
}

func TestRefreshAllRepairsDrift(t *testing.T) {
	service, db := newLeaderboardService(t)
	ctx := context.Background()
	creator := createCreator(t, db, "Creator")
	crs := createCourseRow(t, db, creator.ID)

	buyer := createCreator(t, db, "Buyer")
	createPurchaseRow(t, db, buyer.ID, crs.ID, "100", 1)

	// Deliberately wrong derived row, as if an incremental event was lost.
	require.NoError(t, db.Create(&entities.CreatorStats{
		UserID:    creator.ID,
		Points:    999,
		UpdatedAt: time.Now(),
	}).Error)

	_, err := service.RefreshAll(ctx)
	require.NoError(t, err)

	resp, err := service.GetLeaderboard(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)

	entry := resp.Entries[0]
	require.Equal(t, int64(1), entry.CoursesCount)
	require.Equal(t, int64(1), entry.StudentsCount)
	require.True(t, entry.TotalEarningsUsd.Equal(decimal.NewFromInt(92)),
		"earnings = %s", entry.TotalEarningsUsd)
	require.Equal(t, domain.ComputePoints(1, 1, decimal.NewFromInt(92)), entry.Points)
}

func TestLeaderboardTieBreakStableAcrossPages(t *testing.T) {
	service, db := newLeaderboardService(t)
	ctx := context.Background()

	// Four creators on equal points; order must be user_id ascending and
	// must not change between page requests.
	ids := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		creator := createCreator(t, db, fmt.Sprintf("Creator %d", i))
		require.NoError(t, service.ApplyCourseCreated(ctx, creator.ID))
		ids = append(ids, creator.ID.String())
	}
	sort.Strings(ids)

	pageOne, err := service.GetLeaderboard(ctx, 2, 0)
	require.NoError(t, err)
	pageTwo, err := service.GetLeaderboard(ctx, 2, 2)
	require.NoError(t, err)

	require.Equal(t, int64(4), pageOne.Total)
	require.Len(t, pageOne.Entries, 2)
	require.Len(t, pageTwo.Entries, 2)

	got := []string{
		pageOne.Entries[0].UserID,
		pageOne.Entries[1].UserID,
		pageTwo.Entries[0].UserID,
		pageTwo.Entries[1].UserID,
	}
	require.Equal(t, ids, got)

	require.Equal(t, int64(1), pageOne.Entries[0].Rank)
	require.Equal(t, int64(2), pageOne.Entries[1].Rank)
	require.Equal(t, int64(3), pageTwo.Entries[0].Rank)
	require.Equal(t, int64(4), pageTwo.Entries[1].Rank)
}

func TestLeaderboardOrdersByPoints(t *testing.T) {
	service, db := newLeaderboardService(t)
	ctx := context.Background()

	low := createCreator(t, db, "Low")
	high := createCreator(t, db, "High")

	require.NoError(t, service.ApplyCourseCreated(ctx, low.ID))
	require.NoError(t, service.ApplyCourseCreated(ctx, high.ID))
	require.NoError(t, service.ApplyPurchase(ctx, high.ID, decimal.NewFromInt(200)))

	resp, err := service.GetLeaderboard(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	require.Equal(t, high.ID.String(), resp.Entries[0].UserID)
	require.Equal(t, low.ID.String(), resp.Entries[1].UserID)
}
