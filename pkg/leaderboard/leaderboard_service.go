package leaderboard

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	LeaderboardService interface {
		ApplyCourseCreated(ctx context.Context, creatorID uuid.UUID) error
		ApplyPurchase(ctx context.Context, creatorID uuid.UUID, creatorEarningUsd decimal.Decimal) error
		GetLeaderboard(ctx context.Context, limit, offset int) (*domain.LeaderboardResponse, error)
		RefreshAll(ctx context.Context) (*domain.RefreshLeaderboardResponse, error)
	}

	leaderboardService struct {
		leaderboardRepository LeaderboardRepository
	}
)

func NewLeaderboardService(leaderboardRepository LeaderboardRepository) LeaderboardService {
	return &leaderboardService{
		leaderboardRepository: leaderboardRepository,
	}
}

func (s *leaderboardService) ApplyCourseCreated(ctx context.Context, creatorID uuid.UUID) error {
	return s.leaderboardRepository.ApplyCourseCreated(ctx, creatorID)
}

func (s *leaderboardService) ApplyPurchase(ctx context.Context, creatorID uuid.UUID, creatorEarningUsd decimal.Decimal) error {
	return s.leaderboardRepository.ApplyPurchase(ctx, creatorID, creatorEarningUsd)
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit, offset int) (*domain.LeaderboardResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	stats, count, err := s.leaderboardRepository.GetTopCreators(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(stats))
	for i, st := range stats {
		name := ""
		if st.User != nil {
			name = st.User.Name
		}
		entries = append(entries, domain.LeaderboardEntry{
			Rank:             int64(offset + i + 1),
			UserID:           st.UserID.String(),
			Name:             name,
			CoursesCount:     st.CoursesCount,
			StudentsCount:    st.StudentsCount,
			TotalEarningsUsd: st.TotalEarningsUsd,
			Points:           st.Points,
			UpdatedAt:        st.UpdatedAt,
		})
	}

	return &domain.LeaderboardResponse{
		Entries: entries,
		Total:   count,
	}, nil
}

// RefreshAll rebuilds every creator's derived stats from the Course and
// Purchase source rows. Safe to re-run at any time; it only overwrites the
// derived rows. Aggregation runs in Go with decimal arithmetic so the replay
// matches the incremental path exactly.
func (s *leaderboardService) RefreshAll(ctx context.Context) (*domain.RefreshLeaderboardResponse, error) {
	creatorIDs, err := s.leaderboardRepository.GetCreatorIDs(ctx)
	if err != nil {
		return nil, err
	}

	refreshed := 0
	for _, creatorID := range creatorIDs {
		courses, err := s.leaderboardRepository.GetCreatorCourses(ctx, creatorID)
		if err != nil {
			return nil, err
		}

		courseIDs := make([]uuid.UUID, 0, len(courses))
		for _, c := range courses {
			courseIDs = append(courseIDs, c.ID)
		}

		purchases, err := s.leaderboardRepository.GetPurchasesByCourseIDs(ctx, courseIDs)
		if err != nil {
			return nil, err
		}

		buyers := make(map[uuid.UUID]struct{}, len(purchases))
		totalEarnings := decimal.Zero
		for _, p := range purchases {
			buyers[p.BuyerID] = struct{}{}
			totalEarnings = totalEarnings.Add(domain.CreatorEarningUsd(p.PaidAmountUsd))
		}

		coursesCount := int64(len(courses))
		studentsCount := int64(len(buyers))

		stats := &entities.CreatorStats{
			UserID:           creatorID,
			CoursesCount:     coursesCount,
			StudentsCount:    studentsCount,
			TotalEarningsUsd: totalEarnings,
			Points:           domain.ComputePoints(coursesCount, studentsCount, totalEarnings),
			UpdatedAt:        time.Now(),
		}

		if err := s.leaderboardRepository.SaveStats(ctx, stats); err != nil {
			return nil, err
		}
		refreshed++
	}

	return &domain.RefreshLeaderboardResponse{RefreshedCount: refreshed}, nil
}
