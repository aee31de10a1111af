package course

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/entities"
	"Go-Course-Market/internal/utils/storage"
	"Go-Course-Market/pkg/chain"
	"Go-Course-Market/pkg/leaderboard"
	"Go-Course-Market/pkg/user"
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CourseService interface {
		CreateCourse(ctx context.Context, req domain.CreateCourseRequest, creatorID string) (*domain.CourseResponse, error)
		GetCourse(ctx context.Context, courseID string) (*domain.CourseResponse, error)
		GetCourses(ctx context.Context, page, limit int) ([]*domain.CourseResponse, int64, error)
		UploadCover(ctx context.Context, req domain.UploadCourseCoverRequest, creatorID string) (string, error)
	}

	courseService struct {
		courseRepository   CourseRepository
		userRepository     user.UserRepository
		leaderboardService leaderboard.LeaderboardService
		oracle             chain.Oracle
		s3                 storage.AwsS3
	}
)

func NewCourseService(
	courseRepository CourseRepository,
	userRepository user.UserRepository,
	leaderboardService leaderboard.LeaderboardService,
	oracle chain.Oracle,
	s3 storage.AwsS3,
) CourseService {
	return &courseService{
		courseRepository:   courseRepository,
		userRepository:     userRepository,
		leaderboardService: leaderboardService,
		oracle:             oracle,
		s3:                 s3,
	}
}

func (s *courseService) CreateCourse(ctx context.Context, req domain.CreateCourseRequest, creatorID string) (*domain.CourseResponse, error) {
	if req.PriceUsd.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}

	creator, err := s.userRepository.GetUserByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	course := &entities.Course{
		ID:          uuid.New(),
		CreatorID:   creator.ID,
		Title:       req.Title,
		Description: req.Description,
		PriceUsd:    req.PriceUsd,
		IsFree:      req.IsFree,
		ExternalID:  req.ExternalID,
		IsPublished: req.IsPublished,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.courseRepository.CreateCourse(ctx, course); err != nil {
		return nil, err
	}

	// Counter update failures do not undo the course; the batch refresh
	// reconciles the derived stats.
	if err := s.leaderboardService.ApplyCourseCreated(ctx, creator.ID); err != nil {
		log.Printf("failed to apply course-created event for creator %s: %v", creator.ID, err)
	}

	onChain := false
	if creator.WalletAddress != "" {
		onChain = s.oracle.IsRegisteredCreator(ctx, creator.WalletAddress)
	}

	return toCourseResponse(course, onChain), nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID string) (*domain.CourseResponse, error) {
	course, err := s.courseRepository.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return toCourseResponse(course, false), nil
}

func (s *courseService) GetCourses(ctx context.Context, page, limit int) ([]*domain.CourseResponse, int64, error) {
	courses, count, err := s.courseRepository.GetPublishedCourses(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.CourseResponse, 0, len(courses))
	for _, c := range courses {
		result = append(result, toCourseResponse(c, false))
	}

	return result, count, nil
}

func (s *courseService) UploadCover(ctx context.Context, req domain.UploadCourseCoverRequest, creatorID string) (string, error) {
	course, err := s.courseRepository.GetCourseByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrCourseNotFound
		}
		return "", err
	}

	if course.CreatorID.String() != creatorID {
		return "", domain.ErrUserNotAllowed
	}

	coverURL, err := s.s3.UploadFile(ctx, "course-covers", req.Cover)
	if err != nil {
		return "", err
	}

	if err := s.courseRepository.UpdateCoverURL(ctx, req.CourseID, coverURL); err != nil {
		return "", err
	}

	return coverURL, nil
}

func toCourseResponse(course *entities.Course, onChain bool) *domain.CourseResponse {
	return &domain.CourseResponse{
		ID:                course.ID.String(),
		CreatorID:         course.CreatorID.String(),
		Title:             course.Title,
		Description:       course.Description,
		PriceUsd:          course.EffectivePriceUsd(),
		IsFree:            course.IsFree,
		ExternalID:        course.ExternalID,
		CoverURL:          course.CoverURL,
		IsPublished:       course.IsPublished,
		OnChainRegistered: onChain,
		CreatedAt:         course.CreatedAt,
	}
}
