package leaderboard

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	LeaderboardRepository interface {
		ApplyCourseCreated(ctx context.Context, creatorID uuid.UUID) error
		ApplyPurchase(ctx context.Context, creatorID uuid.UUID, creatorEarningUsd decimal.Decimal) error
		GetTopCreators(ctx context.Context, limit, offset int) ([]*entities.CreatorStats, int64, error)
		GetCreatorStats(ctx context.Context, creatorID uuid.UUID) (*entities.CreatorStats, error)
		GetCreatorIDs(ctx context.Context) ([]uuid.UUID, error)
		GetCreatorCourses(ctx context.Context, creatorID uuid.UUID) ([]*entities.Course, error)
		GetPurchasesByCourseIDs(ctx context.Context, courseIDs []uuid.UUID) ([]*entities.Purchase, error)
		SaveStats(ctx context.Context, stats *entities.CreatorStats) error
	}

	leaderboardRepository struct {
		db *gorm.DB
	}
)

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{
		db: db,
	}
}

// ApplyCourseCreated atomically increments the course counter and rederives the
// point score from the updated row. The increment is a single additive upsert so
// concurrent events never lose updates.
func (r *leaderboardRepository) ApplyCourseCreated(ctx context.Context, creatorID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stats := &entities.CreatorStats{
			UserID:       creatorID,
			CoursesCount: 1,
			Points:       domain.ComputePoints(1, 0, decimal.Zero),
			UpdatedAt:    time.Now(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"courses_count": gorm.Expr("courses_count + 1"),
				"updated_at":    time.Now(),
			}),
		}).Create(stats).Error; err != nil {
			return err
		}

		return r.rederivePoints(ctx, tx, creatorID)
	})
}

// ApplyPurchase atomically adds a student and the creator earning, then
// rederives the point score from the updated row.
func (r *leaderboardRepository) ApplyPurchase(ctx context.Context, creatorID uuid.UUID, creatorEarningUsd decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stats := &entities.CreatorStats{
			UserID:           creatorID,
			StudentsCount:    1,
			TotalEarningsUsd: creatorEarningUsd,
			Points:           domain.ComputePoints(0, 1, creatorEarningUsd),
			UpdatedAt:        time.Now(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"students_count":     gorm.Expr("students_count + 1"),
				"total_earnings_usd": gorm.Expr("total_earnings_usd + ?", creatorEarningUsd),
				"updated_at":         time.Now(),
			}),
		}).Create(stats).Error; err != nil {
			return err
		}

		return r.rederivePoints(ctx, tx, creatorID)
	})
}

// rederivePoints recomputes the point score from the counters of the current
// row. Runs inside the same transaction as the additive upsert, which already
// holds the row lock, so the read-then-write is serialized per creator.
func (r *leaderboardRepository) rederivePoints(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) error {
	var stats entities.CreatorStats
	if err := tx.WithContext(ctx).
		Where("user_id = ?", creatorID).
		First(&stats).Error; err != nil {
		return err
	}

	points := domain.ComputePoints(stats.CoursesCount, stats.StudentsCount, stats.TotalEarningsUsd)
	if points == stats.Points {
		return nil
	}

	return tx.WithContext(ctx).
		Model(&entities.CreatorStats{}).
		Where("user_id = ?", creatorID).
		Update("points", points).Error
}

func (r *leaderboardRepository) GetTopCreators(ctx context.Context, limit, offset int) ([]*entities.CreatorStats, int64, error) {
	var stats []*entities.CreatorStats
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&entities.CreatorStats{}).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	// Tie-break on user_id keeps ordering stable across page boundaries.
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("points DESC").
		Order("user_id ASC").
		Offset(offset).
		Limit(limit).
		Find(&stats).Error; err != nil {
		return nil, 0, err
	}

	return stats, count, nil
}

func (r *leaderboardRepository) GetCreatorStats(ctx context.Context, creatorID uuid.UUID) (*entities.CreatorStats, error) {
	var stats entities.CreatorStats
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", creatorID).
		First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *leaderboardRepository) GetCreatorIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Course{}).
		Distinct("creator_id").
		Pluck("creator_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *leaderboardRepository) GetCreatorCourses(ctx context.Context, creatorID uuid.UUID) ([]*entities.Course, error) {
	var courses []*entities.Course
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *leaderboardRepository) GetPurchasesByCourseIDs(ctx context.Context, courseIDs []uuid.UUID) ([]*entities.Purchase, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	var purchases []*entities.Purchase
	if err := r.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// SaveStats overwrites the derived row, used by the batch recomputation.
func (r *leaderboardRepository) SaveStats(ctx context.Context, stats *entities.CreatorStats) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(stats).Error
}
