package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetLeaderboard     = "leaderboard retrieved successfully"
	MessageSuccessRefreshLeaderboard = "leaderboard refreshed successfully"

	MessageFailedGetLeaderboard     = "failed to retrieve leaderboard"
	MessageFailedRefreshLeaderboard = "failed to refresh leaderboard"
)

// Points weights for the creator score.
const (
	PointsPerCourse       = 10
	PointsPerStudent      = 1
	PointsPerEarningsStep = 5
)

// EarningsStepUsd is the earnings bucket granting PointsPerEarningsStep.
var EarningsStepUsd = decimal.NewFromInt(100)

// ComputePoints is the single source of the creator score formula. Both the
// incremental event path and the batch recomputation must derive points from it.
func ComputePoints(coursesCount, studentsCount int64, totalEarningsUsd decimal.Decimal) int64 {
	earningsSteps := totalEarningsUsd.Div(EarningsStepUsd).Floor().IntPart()
	return coursesCount*PointsPerCourse +
		studentsCount*PointsPerStudent +
		earningsSteps*PointsPerEarningsStep
}

type (
	LeaderboardEntry struct {
		Rank             int64           `json:"rank"`
		UserID           string          `json:"user_id"`
		Name             string          `json:"name,omitempty"`
		CoursesCount     int64           `json:"courses_count"`
		StudentsCount    int64           `json:"students_count"`
		TotalEarningsUsd decimal.Decimal `json:"total_earnings_usd"`
		Points           int64           `json:"points"`
		UpdatedAt        time.Time       `json:"updated_at"`
	}

	LeaderboardResponse struct {
		Entries []LeaderboardEntry `json:"entries"`
		Total   int64              `json:"total"`
	}

	RefreshLeaderboardResponse struct {
		RefreshedCount int `json:"refreshed_count"`
	}
)
